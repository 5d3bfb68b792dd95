package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/customer"
)

// CustomerInput carries the customer form.
type CustomerInput struct {
	ID       int64 // zero for create
	Customer customer.Customer
	Origin   Origin
}

// CustomerDeps holds dependencies for the customer orchestrators.
type CustomerDeps struct {
	Customers CustomerWriter
	Audit     RecordAuditDeps
}

// ExecuteRegisterCustomer validates and creates a customer.
// PRE: none
// POST: Returns the stored customer, validation.Errors, or an upstream error
// INVARIANT: The collaborator is not called with invalid input
func ExecuteRegisterCustomer(ctx context.Context, input CustomerInput, deps CustomerDeps) (customer.Customer, error) {
	c := input.Customer
	c.Normalize()
	if err := c.Validate(); err != nil {
		return customer.Customer{}, err
	}
	c.ID = 0
	created, err := deps.Customers.CreateCustomer(ctx, c)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	slog.Info("customer_created", "customer_id", created.ID)
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:      domainAudit.ActionCreate,
		Resource:    domainAudit.ResourceCustomer,
		ResourceID:  strconv.FormatInt(created.ID, 10),
		Description: "Cliente " + created.Name,
		Origin:      input.Origin,
	}, deps.Audit)
	return created, nil
}

// ExecuteUpdateCustomer validates and replaces a customer.
// PRE: input.ID > 0
// POST: Returns the updated customer, validation.Errors, or an upstream error
func ExecuteUpdateCustomer(ctx context.Context, input CustomerInput, deps CustomerDeps) (customer.Customer, error) {
	c := input.Customer
	c.Normalize()
	if err := c.Validate(); err != nil {
		return customer.Customer{}, err
	}
	c.ID = input.ID
	updated, err := deps.Customers.UpdateCustomer(ctx, input.ID, c)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("update customer %d: %w", input.ID, err)
	}

	slog.Info("customer_updated", "customer_id", input.ID)
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:      domainAudit.ActionUpdate,
		Resource:    domainAudit.ResourceCustomer,
		ResourceID:  strconv.FormatInt(input.ID, 10),
		Description: "Cliente " + c.Name,
		Origin:      input.Origin,
	}, deps.Audit)
	return updated, nil
}

// ExecuteDeleteCustomer removes a customer.
// PRE: input.ID > 0 and the user confirmed
// POST: Customer deleted upstream, or an upstream error
func ExecuteDeleteCustomer(ctx context.Context, input CustomerInput, deps CustomerDeps) error {
	if err := deps.Customers.DeleteCustomer(ctx, input.ID); err != nil {
		return fmt.Errorf("delete customer %d: %w", input.ID, err)
	}
	slog.Info("customer_deleted", "customer_id", input.ID)
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:     domainAudit.ActionDelete,
		Resource:   domainAudit.ResourceCustomer,
		ResourceID: strconv.FormatInt(input.ID, 10),
		Origin:     input.Origin,
	}, deps.Audit)
	return nil
}
