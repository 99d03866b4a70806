package controllers

import (
	"errors"
	"net/http"
	"time"

	apiCore "github.com/Ethernal-Tech/bridge-status-tracker/api/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/api/model/request"
	"github.com/Ethernal-Tech/bridge-status-tracker/api/model/response"
	apiUtils "github.com/Ethernal-Tech/bridge-status-tracker/api/utils"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/tracker"
	"github.com/hashicorp/go-hclog"
)

type TrackingControllerImpl struct {
	tracker core.StatusTracker
	timeNow func() time.Time
	logger  hclog.Logger
}

var _ apiCore.APIController = (*TrackingControllerImpl)(nil)

func NewTrackingController(
	tracker core.StatusTracker,
	logger hclog.Logger,
) *TrackingControllerImpl {
	return &TrackingControllerImpl{
		tracker: tracker,
		timeNow: time.Now,
		logger:  logger,
	}
}

func (*TrackingControllerImpl) GetPathPrefix() string {
	return "tracking"
}

func (c *TrackingControllerImpl) GetEndpoints() []*apiCore.APIEndpoint {
	return []*apiCore.APIEndpoint{
		{Path: "start", Method: http.MethodPost, Handler: c.startTracking, APIKeyAuth: true},
		{Path: "wipe", Method: http.MethodPost, Handler: c.wipe, APIKeyAuth: true},
	}
}

// @Summary Start tracking a bridge or swap
// @Description Stores the item and begins polling its status until it completes or fails.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param body body request.StartTrackingRequest true "Item to track"
// @Success 200 {object} response.TrackingResponse "OK - Item is tracked."
// @Failure 400 {object} response.ErrorResponse "Bad Request – invalid item."
// @Failure 409 {object} response.ErrorResponse "Conflict – item is already tracked."
// @Failure 401 {object} response.ErrorResponse "Unauthorized – API key missing or invalid."
// @Security ApiKeyAuth
// @Router /tracking/start [post]
func (c *TrackingControllerImpl) startTracking(w http.ResponseWriter, r *http.Request) {
	requestBody, ok := apiUtils.DecodeModel[request.StartTrackingRequest](w, r, c.logger)
	if !ok {
		return
	}

	c.logger.Debug("startTracking request", "body", requestBody, "url", r.URL)

	record, err := requestBody.ToHistoryRecord(c.timeNow().UTC())
	if err != nil {
		apiUtils.WriteErrorResponse(w, r, http.StatusBadRequest, err, c.logger)

		return
	}

	if err := c.tracker.StartTracking(record); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tracker.ErrAlreadyTracked) {
			status = http.StatusConflict
		}

		apiUtils.WriteErrorResponse(w, r, status, err, c.logger)

		return
	}

	apiUtils.WriteResponse(w, r, http.StatusOK, &response.TrackingResponse{
		ItemID:  record.ItemID,
		Polling: !record.IsTerminal(),
	}, c.logger)
}

// @Summary Wipe tracked history
// @Description Removes the account's records on the target chain, or every record when ignoreNetwork is set.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param body body request.WipeRequest true "Wipe options"
// @Success 200 {object} response.WipeResponse "OK - Returns the number of removed records."
// @Failure 400 {object} response.ErrorResponse "Bad Request – account or chain can not be resolved."
// @Failure 401 {object} response.ErrorResponse "Unauthorized – API key missing or invalid."
// @Failure 500 {object} response.ErrorResponse "Internal Server Error – history could not be removed."
// @Security ApiKeyAuth
// @Router /tracking/wipe [post]
func (c *TrackingControllerImpl) wipe(w http.ResponseWriter, r *http.Request) {
	requestBody, ok := apiUtils.DecodeModel[request.WipeRequest](w, r, c.logger)
	if !ok {
		return
	}

	c.logger.Debug("wipe request", "body", requestBody, "url", r.URL)

	removed, err := c.tracker.Wipe(requestBody.Account, core.WipeOptions{
		IgnoreNetwork: requestBody.IgnoreNetwork,
		TargetChainID: requestBody.ChainID,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tracker.ErrInvalidWipeRequest) {
			status = http.StatusBadRequest
		}

		apiUtils.WriteErrorResponse(w, r, status, err, c.logger)

		return
	}

	apiUtils.WriteResponse(w, r, http.StatusOK, &response.WipeResponse{Removed: removed}, c.logger)
}
