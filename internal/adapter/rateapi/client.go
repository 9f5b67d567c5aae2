package rateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/logger"
	"github.com/api-sage/funds-transfer-engine/internal/telemetry"
	"github.com/shopspring/decimal"
)

const maxResponseBytes = 1 << 20

// Verify that Client implements the domain.RateProvider interface
var _ domain.RateProvider = (*Client)(nil)

// Client fetches conversion rates from the external exchange-rate API over
// GET {base}/{apiKey}/pair/{FROM}/{TO}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL string, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

type pairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	BaseCode       string          `json:"base_code"`
	TargetCode     string          `json:"target_code"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

func (c *Client) GetRate(ctx context.Context, fromCurrency string, toCurrency string) (domain.ExchangeRate, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, fromCurrency, toCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: build rate request: %w", domain.ErrMalformedRateRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.RateProviderCalls.WithLabelValues("error").Inc()
		return domain.ExchangeRate{}, fmt.Errorf("%w: call rate provider: %w", domain.ErrConversionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		telemetry.RateProviderCalls.WithLabelValues("error").Inc()
		return domain.ExchangeRate{}, fmt.Errorf("%w: read rate provider response: %w", domain.ErrConversionFailed, err)
	}

	var payload pairResponse
	if err := json.Unmarshal(body, &payload); err != nil && resp.StatusCode < 400 {
		telemetry.RateProviderCalls.WithLabelValues("error").Inc()
		return domain.ExchangeRate{}, fmt.Errorf("%w: decode rate provider response: %w", domain.ErrConversionUnknown, err)
	}

	if resp.StatusCode >= 400 || payload.Result != "success" {
		return domain.ExchangeRate{}, c.classifyFault(resp.StatusCode, payload.ErrorType, fromCurrency, toCurrency)
	}

	if payload.ConversionRate.LessThanOrEqual(decimal.Zero) {
		telemetry.RateProviderCalls.WithLabelValues("error").Inc()
		return domain.ExchangeRate{}, fmt.Errorf("%w: provider returned rate %s for %s/%s",
			domain.ErrConversionUnknown, payload.ConversionRate, fromCurrency, toCurrency)
	}

	telemetry.RateProviderCalls.WithLabelValues("success").Inc()
	return domain.ExchangeRate{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Rate:         payload.ConversionRate,
		FetchedAt:    time.Now().UTC(),
	}, nil
}

// classifyFault maps the provider's error signal onto the fault taxonomy:
// unsupported-code is a business fault, malformed-request a technical one,
// anything else an unknown technical fault.
func (c *Client) classifyFault(statusCode int, errorType string, fromCurrency string, toCurrency string) error {
	logger.Error("rate provider returned error", nil, logger.Fields{
		"status":       statusCode,
		"errorType":    errorType,
		"fromCurrency": fromCurrency,
		"toCurrency":   toCurrency,
	})

	switch errorType {
	case "unsupported-code":
		telemetry.RateProviderCalls.WithLabelValues("unsupported_code").Inc()
		return fmt.Errorf("%w: %s/%s", domain.ErrCurrencyNotSupported, fromCurrency, toCurrency)
	case "malformed-request":
		telemetry.RateProviderCalls.WithLabelValues("malformed_request").Inc()
		return fmt.Errorf("%w: pair %s/%s", domain.ErrMalformedRateRequest, fromCurrency, toCurrency)
	default:
		telemetry.RateProviderCalls.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: provider status %d, error-type %q", domain.ErrConversionUnknown, statusCode, errorType)
	}
}
