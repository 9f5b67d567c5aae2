package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the engine's working copy of a stored account. The store owns it
// between transfers; a balance is never persisted negative.
type Account struct {
	ID        int64
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
