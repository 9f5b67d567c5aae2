package service_interfaces

import (
	"context"

	"github.com/api-sage/funds-transfer-engine/internal/adapter/http/models"
	"github.com/api-sage/funds-transfer-engine/internal/commons"
	"github.com/api-sage/funds-transfer-engine/internal/domain"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountID int64) (domain.Account, error)
	SaveAccount(ctx context.Context, account domain.Account) error
	GetAccountDetails(ctx context.Context, accountID int64) (commons.Response[models.AccountResponse], error)
}
