package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=funds_transfer_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultRateAPIURL = "https://v6.exchangerate-api.com/v6"
const defaultRateCacheTTL = 2 * time.Hour
const defaultRateCacheMaxEntries = 100

type Config struct {
	DatabaseDSN         string
	MigrationsDir       string
	HTTPAddr            string
	AccountStore        string
	RateAPIURL          string
	RateAPIKey          string
	RateCacheTTL        time.Duration
	RateCacheMaxEntries int
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	accountStore := strings.ToLower(strings.TrimSpace(os.Getenv("ACCOUNT_STORE")))
	if accountStore == "" {
		accountStore = "postgres"
	}
	if accountStore != "postgres" && accountStore != "memory" {
		return Config{}, fmt.Errorf("unsupported ACCOUNT_STORE %q", accountStore)
	}

	rateAPIURL := strings.TrimSpace(os.Getenv("RATE_API_URL"))
	if rateAPIURL == "" {
		rateAPIURL = defaultRateAPIURL
	}

	rateCacheTTL := defaultRateCacheTTL
	if raw := strings.TrimSpace(os.Getenv("RATE_CACHE_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse RATE_CACHE_TTL: %w", err)
		}
		rateCacheTTL = parsed
	}

	rateCacheMaxEntries := defaultRateCacheMaxEntries
	if raw := strings.TrimSpace(os.Getenv("RATE_CACHE_MAX_ENTRIES")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("RATE_CACHE_MAX_ENTRIES must be a positive integer, got %q", raw)
		}
		rateCacheMaxEntries = parsed
	}

	return Config{
		DatabaseDSN:         normalizeConnectionString(conn),
		MigrationsDir:       "migrations",
		HTTPAddr:            httpAddr,
		AccountStore:        accountStore,
		RateAPIURL:          rateAPIURL,
		RateAPIKey:          strings.TrimSpace(os.Getenv("RATE_API_KEY")),
		RateCacheTTL:        rateCacheTTL,
		RateCacheMaxEntries: rateCacheMaxEntries,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
