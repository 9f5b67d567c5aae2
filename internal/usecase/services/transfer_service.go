package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/adapter/http/models"
	"github.com/api-sage/funds-transfer-engine/internal/commons"
	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/logger"
	"github.com/api-sage/funds-transfer-engine/internal/telemetry"
	"github.com/api-sage/funds-transfer-engine/internal/usecase/service_interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Verify that TransferService implements the service_interfaces.TransferService interface
var _ service_interfaces.TransferService = (*TransferService)(nil)

// TransferService serializes every balance mutation behind one process-wide
// mutex. The coarse lock is deliberate: correctness over throughput, including
// the cost of holding it across the rate-provider call. Per-account locking or
// compare-and-swap on stored balances would raise throughput but change
// observable ordering; do not relax it casually.
type TransferService struct {
	accountService  service_interfaces.AccountService
	currencyService service_interfaces.CurrencyService
	clock           Clock

	mu     sync.Mutex
	txnSeq atomic.Int64
}

func NewTransferService(
	accountService service_interfaces.AccountService,
	currencyService service_interfaces.CurrencyService,
	clock Clock,
) *TransferService {
	if clock == nil {
		clock = SystemClock{}
	}

	s := &TransferService{
		accountService:  accountService,
		currencyService: currencyService,
		clock:           clock,
	}
	// Seed the transaction sequence from the wall clock once, then count
	// monotonically. Ids stay unique per process even if serialization is
	// ever relaxed; clients must treat them as opaque tokens.
	s.txnSeq.Store(clock.Now().UnixMilli())

	return s
}

func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	// Malformed requests fail before the serialization point and may run
	// arbitrarily concurrently.
	if err := req.Validate(); err != nil {
		logger.Error("transfer service validation failed", err, nil)
		telemetry.TransfersTotal.WithLabelValues("business_fault").Inc()
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	lockWait := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	telemetry.TransferLockWaitDuration.Observe(time.Since(lockWait).Seconds())

	start := time.Now()
	transfer, err := s.executeTransfer(ctx, req)
	telemetry.TransferProcessingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error("transfer service transfer failed", err, logger.Fields{
			"debitAccountId":  req.DebitAccountID,
			"creditAccountId": req.CreditAccountID,
		})
		if domain.IsBusiness(err) {
			telemetry.TransfersTotal.WithLabelValues("business_fault").Inc()
		} else {
			telemetry.TransfersTotal.WithLabelValues("technical_fault").Inc()
		}
		return faultResponse(err), err
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"transactionId":        transfer.TransactionID,
		"transactionReference": transfer.TransactionReference,
	})
	telemetry.TransfersTotal.WithLabelValues("success").Inc()

	return commons.SuccessResponse("transfer completed successfully", mapTransferToResponse(transfer)), nil
}

// executeTransfer runs the debit/credit/convert sequence. The caller holds the
// engine lock for the whole call.
func (s *TransferService) executeTransfer(ctx context.Context, req models.TransferRequest) (domain.Transfer, error) {
	debitAccount, err := s.accountService.GetAccount(ctx, req.DebitAccountID)
	if err != nil {
		return domain.Transfer{}, err
	}

	// The withdrawn amount is denominated in the debit account's currency.
	if debitAccount.Balance.LessThan(req.Amount) {
		return domain.Transfer{}, fmt.Errorf("%w: balance %s is less than transfer amount %s",
			domain.ErrInsufficientBalance, debitAccount.Balance, req.Amount)
	}

	creditAccount, err := s.accountService.GetAccount(ctx, req.CreditAccountID)
	if err != nil {
		return domain.Transfer{}, err
	}

	creditAmount := req.Amount
	rateUsed := decimal.NewFromInt(1)
	if debitAccount.Currency != creditAccount.Currency {
		creditAmount, rateUsed, err = s.currencyService.Convert(ctx, req.Amount, debitAccount.Currency, creditAccount.Currency)
		if err != nil {
			return domain.Transfer{}, err
		}
	}

	debitBefore := debitAccount
	debitAccount.Balance = debitAccount.Balance.Sub(req.Amount)
	creditAccount.Balance = creditAccount.Balance.Add(creditAmount)

	if err := s.accountService.SaveAccount(ctx, debitAccount); err != nil {
		return domain.Transfer{}, err
	}
	if err := s.accountService.SaveAccount(ctx, creditAccount); err != nil {
		// The debit row is already written; put the original back so the
		// store keeps its pre-transfer state. The store offers no
		// multi-row transaction, so a failed compensation leaves the
		// debit row inconsistent and needs manual repair.
		if restoreErr := s.accountService.SaveAccount(ctx, debitBefore); restoreErr != nil {
			logger.Error("transfer service debit compensation failed, manual repair required", restoreErr, logger.Fields{
				"debitAccountId": debitBefore.ID,
				"balance":        debitBefore.Balance,
			})
		}
		return domain.Transfer{}, err
	}

	return domain.Transfer{
		TransactionID:        s.txnSeq.Add(1),
		TransactionReference: uuid.NewString(),
		DebitAccountID:       debitAccount.ID,
		CreditAccountID:      creditAccount.ID,
		DebitCurrency:        debitAccount.Currency,
		CreditCurrency:       creditAccount.Currency,
		DebitAmount:          req.Amount,
		CreditAmount:         creditAmount,
		RateUsed:             rateUsed,
		ProcessedAt:          s.clock.Now(),
	}, nil
}

// faultResponse shapes the failure envelope. Business faults surface their
// message verbatim; technical faults stay generic.
func faultResponse(err error) commons.Response[models.TransferResponse] {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return commons.ErrorResponse[models.TransferResponse]("account not found", err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		return commons.ErrorResponse[models.TransferResponse]("insufficient balance", err.Error())
	case errors.Is(err, domain.ErrCurrencyNotSupported):
		return commons.ErrorResponse[models.TransferResponse]("unsupported currency", err.Error())
	case domain.IsBusiness(err):
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error())
	default:
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "A technical error occurred. Please contact support.")
	}
}

func mapTransferToResponse(transfer domain.Transfer) models.TransferResponse {
	return models.TransferResponse{
		TransactionID:        transfer.TransactionID,
		TransactionReference: transfer.TransactionReference,
		DebitAccountID:       transfer.DebitAccountID,
		CreditAccountID:      transfer.CreditAccountID,
		DebitCurrency:        transfer.DebitCurrency,
		CreditCurrency:       transfer.CreditCurrency,
		DebitAmount:          transfer.DebitAmount,
		CreditAmount:         transfer.CreditAmount,
		RateUsed:             transfer.RateUsed,
		ProcessedAt:          transfer.ProcessedAt.Format(time.RFC3339),
	}
}
