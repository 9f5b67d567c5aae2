package domain

import (
	"errors"
	"fmt"
)

// Business faults. The caller can correct them; messages are user safe and
// surfaced verbatim.
var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrInsufficientBalance  = errors.New("insufficient balance in debit account")
	ErrCurrencyNotSupported = errors.New("unsupported currency code")
	ErrInvalidParameter     = errors.New("invalid parameter")
)

// Technical faults. The cause is logged internally; callers get a generic
// message.
var (
	ErrMalformedRateRequest = errors.New("malformed request to rate provider")
	ErrConversionFailed     = errors.New("error fetching currency conversion rate")
	ErrConversionUnknown    = errors.New("unknown error during currency conversion")
	ErrPersistenceFailure   = errors.New("failed to persist account")
)

// IsBusiness reports whether err is a client-correctable fault.
func IsBusiness(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrCurrencyNotSupported) ||
		errors.Is(err, ErrInvalidParameter)
}

// IsTechnical reports whether err is an infrastructure fault.
func IsTechnical(err error) bool {
	return errors.Is(err, ErrMalformedRateRequest) ||
		errors.Is(err, ErrConversionFailed) ||
		errors.Is(err, ErrConversionUnknown) ||
		errors.Is(err, ErrPersistenceFailure)
}

// InvalidParameter builds a validation fault naming the offending parameter
// and its value.
func InvalidParameter(name string, value any, reason string) error {
	return fmt.Errorf("%w: the %s (%v) %s", ErrInvalidParameter, name, value, reason)
}
