package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transfer struct {
	TransactionID        int64
	TransactionReference string
	DebitAccountID       int64
	CreditAccountID      int64
	DebitCurrency        string
	CreditCurrency       string
	DebitAmount          decimal.Decimal
	CreditAmount         decimal.Decimal
	RateUsed             decimal.Decimal
	ProcessedAt          time.Time
}
