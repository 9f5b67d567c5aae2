package models

import (
	"fmt"
	"strings"

	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	DebitAccountID  int64           `json:"debitAccountId"`
	CreditAccountID int64           `json:"creditAccountId"`
	Amount          decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.DebitAccountID <= 0 {
		errs = append(errs, fmt.Sprintf("the debitAccountId (%d) must be positive", r.DebitAccountID))
	}
	if r.CreditAccountID <= 0 {
		errs = append(errs, fmt.Sprintf("the creditAccountId (%d) must be positive", r.CreditAccountID))
	}
	if r.DebitAccountID > 0 && r.DebitAccountID == r.CreditAccountID {
		errs = append(errs, fmt.Sprintf("the creditAccountId (%d) must differ from debitAccountId", r.CreditAccountID))
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, fmt.Sprintf("the amount (%s) must be greater than zero", r.Amount))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidParameter, strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	TransactionID        int64           `json:"transactionId"`
	TransactionReference string          `json:"transactionReference"`
	DebitAccountID       int64           `json:"debitAccountId"`
	CreditAccountID      int64           `json:"creditAccountId"`
	DebitCurrency        string          `json:"debitCurrency"`
	CreditCurrency       string          `json:"creditCurrency"`
	DebitAmount          decimal.Decimal `json:"debitAmount"`
	CreditAmount         decimal.Decimal `json:"creditAmount"`
	RateUsed             decimal.Decimal `json:"rateUsed"`
	ProcessedAt          string          `json:"processedAt"`
}
