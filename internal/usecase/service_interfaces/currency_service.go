package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

type CurrencyService interface {
	// Convert returns the amount expressed in toCurrency together with the
	// rate that was applied.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string, toCurrency string) (decimal.Decimal, decimal.Decimal, error)
}
