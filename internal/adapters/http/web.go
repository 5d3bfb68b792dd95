package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"karting/internal/adapters/email"
	"karting/internal/adapters/http/middleware"
	"karting/internal/adapters/metrics"
	auditStore "karting/internal/adapters/storage/audit"
	"karting/internal/application/orchestrators"
	"karting/internal/application/projections"
)

//go:embed static
var staticFS embed.FS

// Collaborator is the venue REST API the console sits in front of.
type Collaborator interface {
	projections.CustomerReader
	projections.KartReader
	projections.ReservationReader
	projections.GridFetcher
	projections.ReportFetcher
	orchestrators.CustomerWriter
	orchestrators.KartWriter
	orchestrators.ReservationWriter
	orchestrators.ReceiptSender
}

// Pinger checks the local database.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services holds every dependency the handlers use.
type Services struct {
	API              Collaborator
	AuditStore       auditStore.Store
	DB               Pinger
	Email            email.Sender
	EmailFrom        string
	ReplyTo          string
	ReportRecipients []string
	Metrics          *metrics.Metrics
	Location         *time.Location // venue time zone
}

// Options configures the HTTP stack around the handlers.
type Options struct {
	CSRFKey        []byte // 32 bytes
	Secure         bool   // HTTPS deployment
	TrustedOrigins []string
	RateLimit      float64 // requests per second per IP; 0 disables
	SlowRequest    time.Duration
	CORSOrigins    []string
}

// Global services instance (set by NewMux)
var svc *Services

// Global session store instance; each browser gets its own grid loader.
var sessions *middleware.SessionStore[*projections.WeekLoader]

// timeNow is a variable for testability.
var timeNow = time.Now

// venueNow returns the current time in the venue's time zone.
func venueNow() time.Time {
	return timeNow().In(svc.Location)
}

// NewMux wires HTTP handlers for the console.
// PRE: s.API is set; opts.CSRFKey is 32 bytes
// POST: Returns the fully wrapped handler
func NewMux(s *Services, opts Options) http.Handler {
	if s.Location == nil {
		s.Location = time.UTC
	}
	if s.Email == nil {
		s.Email = email.NewNoopSender()
	}
	svc = s
	sessions = middleware.NewSessionStore(func() *projections.WeekLoader {
		return projections.NewWeekLoader(s.API, s.Metrics)
	})
	middleware.SecureCookies = opts.Secure

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	router.Use(middleware.Timing(s.Metrics, opts.SlowRequest))
	registerRoutes(router)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	chain := []func(http.Handler) http.Handler{
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, opts.Secure, opts.TrustedOrigins),
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit * 2)
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(opts.RateLimit, burst)))
	}
	if len(opts.CORSOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet},
			AllowedHeaders: []string{"Accept"},
		})
		chain = append(chain, c.Handler)
	}
	chain = append(chain,
		handlers.CompressHandler,
		handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}), handlers.PrintRecoveryStack(false)),
	)

	// Apply middleware: Recovery -> Compress -> CORS -> RateLimit -> CSRF -> SecurityHeaders -> Router
	return middleware.Chain(router, chain...)
}

// StartSessionSweeper drops idle console sessions until ctx ends.
func StartSessionSweeper(ctx context.Context) {
	sessions.StartSweeper(ctx, time.Hour)
}

// registerRoutes maps console paths to handlers.
func registerRoutes(r *mux.Router) {
	r.Handle("/", http.RedirectHandler("/home", http.StatusFound)).Methods(http.MethodGet)
	r.HandleFunc("/home", handleHome).Methods(http.MethodGet)
	r.HandleFunc("/buscar", handleSearch).Methods(http.MethodGet)

	r.HandleFunc("/clientes/list", handleCustomerList).Methods(http.MethodGet)
	r.HandleFunc("/clientes/add", handleCustomerAdd).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/clientes/edit/{id:[0-9]+}", handleCustomerEdit).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/clientes/{id:[0-9]+}/delete", handleCustomerDelete).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/karts/list", handleKartList).Methods(http.MethodGet)
	r.HandleFunc("/karts/add", handleKartAdd).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/reservas/list", handleReservationList).Methods(http.MethodGet)
	r.HandleFunc("/reservas/add", handleReservationAdd).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/reservas/{id:[0-9]+}/delete", handleReservationDelete).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/reservas/{id:[0-9]+}/comprobante", handleReservationReceipt).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/reservas/{id:[0-9]+}/ficha.pdf", handleReservationSlip).Methods(http.MethodGet)

	r.Handle("/rack-semanal", sessions.Middleware(http.HandlerFunc(handleRack))).Methods(http.MethodGet)

	r.HandleFunc("/reporte-ingresos-{kind:vueltas|personas}", handleReport).Methods(http.MethodGet)
	r.HandleFunc("/reporte-ingresos-{kind:vueltas|personas}/export.{format:pdf|xlsx}", handleReportExport).Methods(http.MethodGet)
	r.HandleFunc("/reporte-ingresos-{kind:vueltas|personas}/email", handleReportEmail).Methods(http.MethodPost)

	r.HandleFunc("/auditoria", handleAuditLog).Methods(http.MethodGet)

	r.Handle("/metrics", svc.Metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
}

// recoveryLogger reports recovered panics through slog.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...any) {
	slog.Error("panic_recovered", "error", fmt.Sprint(v...))
}
