package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centralises the console's environment settings.
type Config struct {
	Env  string // "development", "production"
	Addr string

	APIURL     string
	APITimeout time.Duration

	DBPath      string
	CSRFKey     string
	Timezone    *time.Location
	RateLimit   float64 // requests per second per IP
	SlowRequest time.Duration
	CORSOrigins []string

	ResendKey        string
	SendGridKey      string
	EmailFrom        string
	ReplyTo          string
	ReportRecipients []string
	ReportCron       string

	LogLevel string
}

// IsProduction reports whether the console runs in production.
func (c Config) IsProduction() bool { return c.Env == "production" }

// LoadDotEnv loads variables from path into the environment when the file
// exists. Already-set variables win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads the environment and applies defaults.
// PRE: none
// POST: Returns a complete Config or an error naming the bad variable
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("KARTING_ENV", "development"),
		Addr:             getEnv("KARTING_ADDR", ":8080"),
		APIURL:           strings.TrimRight(getEnv("KARTING_API_URL", "http://localhost:8090"), "/"),
		DBPath:           getEnv("KARTING_DB_PATH", "karting-audit.db"),
		CSRFKey:          getEnv("KARTING_CSRF_KEY", ""),
		ResendKey:        getEnv("KARTING_RESEND_KEY", ""),
		SendGridKey:      getEnv("KARTING_SENDGRID_KEY", ""),
		EmailFrom:        getEnv("KARTING_EMAIL_FROM", "Karting RM <reportes@kartingrm.cl>"),
		ReplyTo:          getEnv("KARTING_REPLY_TO", ""),
		ReportRecipients: splitList(getEnv("KARTING_REPORT_RECIPIENTS", "")),
		ReportCron:       getEnv("KARTING_REPORT_CRON", ""),
		CORSOrigins:      splitList(getEnv("KARTING_CORS_ORIGINS", "")),
		LogLevel:         getEnv("KARTING_LOG_LEVEL", "info"),
	}

	var err error
	if cfg.APITimeout, err = durationEnv("KARTING_API_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SlowRequest, err = durationEnv("KARTING_SLOW_REQUEST_MS", 500*time.Millisecond); err != nil {
		return Config{}, err
	}

	rate := getEnv("KARTING_RATE_LIMIT", "20")
	if cfg.RateLimit, err = strconv.ParseFloat(rate, 64); err != nil || cfg.RateLimit <= 0 {
		return Config{}, fmt.Errorf("KARTING_RATE_LIMIT: invalid value %q", rate)
	}

	tz := getEnv("KARTING_TIMEZONE", "America/Santiago")
	if cfg.Timezone, err = time.LoadLocation(tz); err != nil {
		return Config{}, fmt.Errorf("KARTING_TIMEZONE: %w", err)
	}

	if cfg.IsProduction() && len(cfg.CSRFKey) != 32 {
		return Config{}, errors.New("KARTING_CSRF_KEY must be 32 bytes in production")
	}

	return cfg, nil
}

// getEnv returns the variable's value or def when unset.
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// durationEnv accepts Go durations ("5s") or plain milliseconds ("500").
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
