package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/kart"
)

// RegisterKartInput carries the kart form.
type RegisterKartInput struct {
	Code   string
	Status string
	Origin Origin
}

// RegisterKartDeps holds dependencies for RegisterKart.
type RegisterKartDeps struct {
	Karts KartWriter
	Audit RecordAuditDeps
}

// ExecuteRegisterKart validates and creates a kart.
// PRE: none
// POST: Returns the stored kart, validation.Errors, or an upstream error
func ExecuteRegisterKart(ctx context.Context, input RegisterKartInput, deps RegisterKartDeps) (kart.Kart, error) {
	k := kart.Kart{Code: strings.TrimSpace(input.Code), Status: input.Status}
	if err := k.Validate(); err != nil {
		return kart.Kart{}, err
	}
	created, err := deps.Karts.CreateKart(ctx, k)
	if err != nil {
		return kart.Kart{}, fmt.Errorf("create kart: %w", err)
	}

	slog.Info("kart_created", "kart_id", created.ID, "code", created.Code)
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:      domainAudit.ActionCreate,
		Resource:    domainAudit.ResourceKart,
		ResourceID:  strconv.FormatInt(created.ID, 10),
		Description: "Kart " + created.Code,
		Origin:      input.Origin,
	}, deps.Audit)
	return created, nil
}
