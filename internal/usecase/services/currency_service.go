package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

// Scale applied to every converted amount. Round is half away from zero,
// which matches half-up for the non-negative amounts this contract admits.
const conversionScale = 4

// Verify that CurrencyService implements the service_interfaces.CurrencyService interface
var _ service_interfaces.CurrencyService = (*CurrencyService)(nil)

type CurrencyService struct {
	rates domain.RateProvider
}

func NewCurrencyService(rates domain.RateProvider) *CurrencyService {
	return &CurrencyService{rates: rates}
}

func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string, toCurrency string) (decimal.Decimal, decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	to := strings.ToUpper(strings.TrimSpace(toCurrency))

	if len(from) != 3 {
		return decimal.Decimal{}, decimal.Decimal{}, domain.InvalidParameter("fromCurrency", fromCurrency, "must be a 3-letter currency code")
	}
	if len(to) != 3 {
		return decimal.Decimal{}, decimal.Decimal{}, domain.InvalidParameter("toCurrency", toCurrency, "must be a 3-letter currency code")
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, decimal.Decimal{}, domain.InvalidParameter("amount", amount, "must not be negative")
	}

	// Zero converts to zero without consulting the provider.
	if amount.IsZero() {
		return decimal.Zero, decimal.NewFromInt(1), nil
	}
	if from == to {
		return amount, decimal.NewFromInt(1), nil
	}

	rate, err := s.rates.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	if rate.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: provider returned non-positive rate %s for %s/%s", domain.ErrConversionUnknown, rate.Rate, from, to)
	}

	converted := amount.Mul(rate.Rate).Round(conversionScale)
	return converted, rate.Rate, nil
}
