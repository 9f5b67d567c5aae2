package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/adapter/http/models"
	"github.com/api-sage/funds-transfer-engine/internal/commons"
	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/logger"
	"github.com/api-sage/funds-transfer-engine/internal/usecase/service_interfaces"
)

// Verify that AccountService implements the service_interfaces.AccountService interface
var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo domain.AccountRepository
}

func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (domain.Account, error) {
	if accountID <= 0 {
		return domain.Account{}, domain.InvalidParameter("accountId", accountID, "must be positive")
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: account not found for id %d", domain.ErrRecordNotFound, accountID)
		}
		return domain.Account{}, fmt.Errorf("%w: get account %d: %w", domain.ErrPersistenceFailure, accountID, err)
	}

	return account, nil
}

func (s *AccountService) SaveAccount(ctx context.Context, account domain.Account) error {
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return fmt.Errorf("%w: save account %d: %w", domain.ErrPersistenceFailure, account.ID, err)
	}
	return nil
}

func (s *AccountService) GetAccountDetails(ctx context.Context, accountID int64) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service get account request", logger.Fields{
		"accountId": accountID,
	})

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountId": accountID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found", err.Error()), err
		}
		if errors.Is(err, domain.ErrInvalidParameter) {
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:        account.ID,
		Currency:  account.Currency,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.Format(time.RFC3339),
	}
}
