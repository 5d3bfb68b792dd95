package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/rack"
	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

// DefaultTimeout bounds every collaborator call when none is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// Observer receives the latency and outcome of every collaborator call.
type Observer interface {
	ObserveUpstream(endpoint, outcome string, d time.Duration)
}

// Client is a typed client for the venue's REST API. It never retries.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	observer Observer
}

// New creates a client for baseURL (e.g. "http://localhost:8090").
// PRE: baseURL is an absolute URL; observer may be nil
// POST: Returns a Client with the given timeout
func New(baseURL string, timeout time.Duration, observer Observer) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		observer: observer,
	}
}

// --- Customers ---

// ListCustomers returns every customer.
func (c *Client) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	var out []customer.Customer
	err := c.do(ctx, http.MethodGet, "/api/clientes", "clientes.list", nil, &out)
	return out, err
}

// GetCustomer returns one customer.
func (c *Client) GetCustomer(ctx context.Context, id int64) (customer.Customer, error) {
	var out customer.Customer
	err := c.do(ctx, http.MethodGet, "/api/clientes/"+formatID(id), "clientes.get", nil, &out)
	return out, err
}

// CreateCustomer creates a customer and returns it with its new id.
func (c *Client) CreateCustomer(ctx context.Context, in customer.Customer) (customer.Customer, error) {
	var out customer.Customer
	err := c.do(ctx, http.MethodPost, "/api/clientes", "clientes.create", in, &out)
	return out, err
}

// UpdateCustomer replaces a customer.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, in customer.Customer) (customer.Customer, error) {
	var out customer.Customer
	err := c.do(ctx, http.MethodPut, "/api/clientes/"+formatID(id), "clientes.update", in, &out)
	return out, err
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/clientes/"+formatID(id), "clientes.delete", nil, nil)
}

// --- Karts ---

// ListKarts returns every kart.
func (c *Client) ListKarts(ctx context.Context) ([]kart.Kart, error) {
	var out []kart.Kart
	err := c.do(ctx, http.MethodGet, "/api/karts", "karts.list", nil, &out)
	return out, err
}

// CreateKart creates a kart.
func (c *Client) CreateKart(ctx context.Context, in kart.Kart) (kart.Kart, error) {
	var out kart.Kart
	err := c.do(ctx, http.MethodPost, "/api/karts", "karts.create", in, &out)
	return out, err
}

// --- Reservations ---

// ListReservations returns every reservation.
func (c *Client) ListReservations(ctx context.Context) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	err := c.do(ctx, http.MethodGet, "/api/reservas", "reservas.list", nil, &out)
	return out, err
}

// CreateReservation books a reservation; prices and discounts come back computed.
func (c *Client) CreateReservation(ctx context.Context, in reservation.CreateRequest) (reservation.Reservation, error) {
	var out reservation.Reservation
	err := c.do(ctx, http.MethodPost, "/api/reservas", "reservas.create", in, &out)
	return out, err
}

// DeleteReservation removes a reservation.
func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/reservas/"+formatID(id), "reservas.delete", nil, nil)
}

// WeeklyGrid fetches the day/slot projection for [start, end].
func (c *Client) WeeklyGrid(ctx context.Context, start, end time.Time) (rack.Grid, error) {
	q := url.Values{}
	q.Set("fechaInicio", start.Format(time.DateOnly))
	q.Set("fechaFin", end.Format(time.DateOnly))
	out := rack.Grid{}
	err := c.do(ctx, http.MethodGet, "/api/reservas/rack-semanal?"+q.Encode(), "reservas.rack", nil, &out)
	return out, err
}

// SendReceipt asks the collaborator to email the receipt and returns the
// addresses it reports as sent.
func (c *Client) SendReceipt(ctx context.Context, id int64) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodPost, "/api/reservas/"+formatID(id)+"/enviar-comprobante", "reservas.receipt", nil, &out)
	return out, err
}

// RevenueReport fetches one of the revenue reports for the range.
func (c *Client) RevenueReport(ctx context.Context, kind report.Kind, r report.Range) (report.Data, error) {
	q := url.Values{}
	q.Set("inicio", r.Start.Format(time.DateOnly))
	q.Set("fin", r.End.Format(time.DateOnly))
	out := report.Data{}
	err := c.do(ctx, http.MethodGet, "/api/reservas/"+kind.Endpoint()+"?"+q.Encode(), "reservas."+string(kind), nil, &out)
	return out, err
}

// do performs one JSON round trip. out may be nil; an empty body leaves out untouched.
func (c *Client) do(ctx context.Context, method, path, endpoint string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		c.observe(endpoint, err, time.Since(start))
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Op: endpoint, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Op: endpoint, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := truncateBody(strings.TrimSpace(string(data)), maxErrorBody)
		return &ServerError{Op: endpoint, Status: res.StatusCode, Body: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ServerError{Op: endpoint, Status: res.StatusCode, Body: "respuesta inválida: " + err.Error()}
	}
	return nil
}

func (c *Client) observe(endpoint string, err error, d time.Duration) {
	if c.observer == nil {
		return
	}
	outcome := "ok"
	var ne *NetworkError
	var se *ServerError
	switch {
	case errors.As(err, &ne):
		outcome = "network"
	case errors.As(err, &se):
		outcome = "server"
	case err != nil:
		outcome = "client"
	}
	c.observer.ObserveUpstream(endpoint, outcome, d)
}

// truncateBody cuts s to at most n bytes without splitting a UTF-8 rune.
func truncateBody(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
