package service_interfaces

import (
	"context"

	"github.com/api-sage/funds-transfer-engine/internal/adapter/http/models"
	"github.com/api-sage/funds-transfer-engine/internal/commons"
)

type TransferService interface {
	TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}
