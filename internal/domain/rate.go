package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ExchangeRate struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	FetchedAt    time.Time
}

// RateProvider is the outbound boundary to the external exchange-rate API.
// Implementations classify provider failures into the domain error taxonomy.
type RateProvider interface {
	GetRate(ctx context.Context, fromCurrency string, toCurrency string) (ExchangeRate, error)
}
