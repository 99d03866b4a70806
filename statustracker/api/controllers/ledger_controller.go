package controllers

import (
	"errors"
	"net/http"

	apiCore "github.com/Ethernal-Tech/bridge-status-tracker/api/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/api/model/request"
	apiUtils "github.com/Ethernal-Tech/bridge-status-tracker/api/utils"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

type LedgerControllerImpl struct {
	ledger core.TransactionLedgerWriter
	logger hclog.Logger
}

var _ apiCore.APIController = (*LedgerControllerImpl)(nil)

func NewLedgerController(
	ledger core.TransactionLedgerWriter,
	logger hclog.Logger,
) *LedgerControllerImpl {
	return &LedgerControllerImpl{
		ledger: ledger,
		logger: logger,
	}
}

func (*LedgerControllerImpl) GetPathPrefix() string {
	return "ledger"
}

func (c *LedgerControllerImpl) GetEndpoints() []*apiCore.APIEndpoint {
	return []*apiCore.APIEndpoint{
		{Path: "transaction", Method: http.MethodPost, Handler: c.setTransaction, APIKeyAuth: true},
	}
}

// @Summary Record the source transaction of an item
// @Description Stores the submitted source transaction hash so pending items can be reconciled.
// @Tags Ledger
// @Accept json
// @Param body body request.LedgerTransactionRequest true "Submitted transaction"
// @Success 204 "No Content - Transaction stored."
// @Failure 400 {object} response.ErrorResponse "Bad Request – invalid transaction."
// @Failure 401 {object} response.ErrorResponse "Unauthorized – API key missing or invalid."
// @Security ApiKeyAuth
// @Router /ledger/transaction [post]
func (c *LedgerControllerImpl) setTransaction(w http.ResponseWriter, r *http.Request) {
	requestBody, ok := apiUtils.DecodeModel[request.LedgerTransactionRequest](w, r, c.logger)
	if !ok {
		return
	}

	c.logger.Debug("setTransaction request", "body", requestBody, "url", r.URL)

	if requestBody.TxHash == "" {
		apiUtils.WriteErrorResponse(w, r, http.StatusBadRequest, errors.New("txHash missing from body"), c.logger)

		return
	}

	err := c.ledger.SetTransactionHash(requestBody.ItemID, requestBody.ChainID, requestBody.TxHash)
	if err != nil {
		apiUtils.WriteErrorResponse(w, r, http.StatusBadRequest, err, c.logger)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
