package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/adapter/http/models"
	"github.com/api-sage/funds-transfer-engine/internal/commons"
	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/logger"
	"github.com/api-sage/funds-transfer-engine/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/v1/accounts/", http.HandlerFunc(c.getAccount))
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.AccountResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/api/v1/accounts/")
	accountID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response := commons.ErrorResponse[models.AccountResponse]("validation failed", "account id must be an integer")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetAccountDetails(r.Context(), accountID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		if errors.Is(err, domain.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
