package controllers

import (
	"fmt"
	"net/http"

	apiCore "github.com/Ethernal-Tech/bridge-status-tracker/api/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/api/model/response"
	apiUtils "github.com/Ethernal-Tech/bridge-status-tracker/api/utils"
	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

type HistoryControllerImpl struct {
	tracker core.StatusTracker
	logger  hclog.Logger
}

var _ apiCore.APIController = (*HistoryControllerImpl)(nil)

func NewHistoryController(
	tracker core.StatusTracker,
	logger hclog.Logger,
) *HistoryControllerImpl {
	return &HistoryControllerImpl{
		tracker: tracker,
		logger:  logger,
	}
}

func (*HistoryControllerImpl) GetPathPrefix() string {
	return "history"
}

func (c *HistoryControllerImpl) GetEndpoints() []*apiCore.APIEndpoint {
	return []*apiCore.APIEndpoint{
		{Path: "account", Method: http.MethodGet, Handler: c.getAccountHistory, APIKeyAuth: false},
		{Path: "item", Method: http.MethodGet, Handler: c.getHistoryItem, APIKeyAuth: false},
	}
}

// @Summary Get tracked history of an account
// @Description Returns every bridge and swap record tracked for the account, newest first.
// @Tags History
// @Produce json
// @Param account query string true "Account address"
// @Success 200 {object} response.AccountHistoryResponse "OK - Returns account history."
// @Failure 400 {object} response.ErrorResponse "Bad Request – account missing from query."
// @Router /history/account [get]
func (c *HistoryControllerImpl) getAccountHistory(w http.ResponseWriter, r *http.Request) {
	queryValues := r.URL.Query()
	c.logger.Debug("getAccountHistory request", "query values", queryValues, "url", r.URL)

	account, ok := apiUtils.GetQueryParam(w, r, "account", c.logger)
	if !ok {
		return
	}

	records := c.tracker.GetHistoryForAccount(account)

	apiUtils.WriteResponse(
		w, r, http.StatusOK, response.NewAccountHistoryResponse(common.NormalizeAccount(account), records), c.logger)
}

// @Summary Get a single tracked item
// @Tags History
// @Produce json
// @Param itemId query string true "Bridge or swap item id"
// @Success 200 {object} response.HistoryRecordResponse "OK - Returns the tracked record."
// @Failure 400 {object} response.ErrorResponse "Bad Request – itemId missing from query."
// @Failure 404 {object} response.ErrorResponse "Not Found – item is not tracked."
// @Router /history/item [get]
func (c *HistoryControllerImpl) getHistoryItem(w http.ResponseWriter, r *http.Request) {
	queryValues := r.URL.Query()
	c.logger.Debug("getHistoryItem request", "query values", queryValues, "url", r.URL)

	itemID, ok := apiUtils.GetQueryParam(w, r, "itemId", c.logger)
	if !ok {
		return
	}

	record, exists := c.tracker.GetHistoryItem(itemID)
	if !exists {
		apiUtils.WriteErrorResponse(
			w, r, http.StatusNotFound, fmt.Errorf("item %s is not tracked", itemID), c.logger)

		return
	}

	apiUtils.WriteResponse(w, r, http.StatusOK, response.NewHistoryRecordResponse(record), c.logger)
}
