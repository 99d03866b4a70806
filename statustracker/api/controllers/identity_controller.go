package controllers

import (
	"net/http"

	apiCore "github.com/Ethernal-Tech/bridge-status-tracker/api/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/api/model/request"
	"github.com/Ethernal-Tech/bridge-status-tracker/api/model/response"
	apiUtils "github.com/Ethernal-Tech/bridge-status-tracker/api/utils"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

type IdentityControllerImpl struct {
	appConfig *core.AppConfig
	identity  core.IdentitySelector
	tracker   core.StatusTracker
	logger    hclog.Logger
}

var _ apiCore.APIController = (*IdentityControllerImpl)(nil)

func NewIdentityController(
	appConfig *core.AppConfig,
	identity core.IdentitySelector,
	tracker core.StatusTracker,
	logger hclog.Logger,
) *IdentityControllerImpl {
	return &IdentityControllerImpl{
		appConfig: appConfig,
		identity:  identity,
		tracker:   tracker,
		logger:    logger,
	}
}

func (*IdentityControllerImpl) GetPathPrefix() string {
	return "identity"
}

func (c *IdentityControllerImpl) GetEndpoints() []*apiCore.APIEndpoint {
	return []*apiCore.APIEndpoint{
		{Path: "select", Method: http.MethodPost, Handler: c.selectIdentity, APIKeyAuth: true},
		{Path: "settings", Method: http.MethodGet, Handler: c.getSettings, APIKeyAuth: true},
	}
}

// @Summary Select the active account and network client
// @Description Empty fields keep the current selection.
// @Tags Identity
// @Accept json
// @Produce json
// @Param body body request.SelectIdentityRequest true "Selection"
// @Success 200 {object} response.SettingsResponse "OK - Returns the updated settings."
// @Failure 400 {object} response.ErrorResponse "Bad Request – unknown network client."
// @Failure 401 {object} response.ErrorResponse "Unauthorized – API key missing or invalid."
// @Security ApiKeyAuth
// @Router /identity/select [post]
func (c *IdentityControllerImpl) selectIdentity(w http.ResponseWriter, r *http.Request) {
	requestBody, ok := apiUtils.DecodeModel[request.SelectIdentityRequest](w, r, c.logger)
	if !ok {
		return
	}

	c.logger.Debug("selectIdentity request", "body", requestBody, "url", r.URL)

	if requestBody.NetworkClientID != "" {
		if err := c.identity.SelectNetworkClient(requestBody.NetworkClientID); err != nil {
			apiUtils.WriteErrorResponse(w, r, http.StatusBadRequest, err, c.logger)

			return
		}
	}

	if requestBody.Account != "" {
		c.identity.SelectAccount(requestBody.Account)
	}

	c.getSettings(w, r)
}

// @Summary Get tracker settings
// @Tags Identity
// @Produce json
// @Success 200 {object} response.SettingsResponse "OK - Returns tracker settings."
// @Failure 401 {object} response.ErrorResponse "Unauthorized – API key missing or invalid."
// @Security ApiKeyAuth
// @Router /identity/settings [get]
func (c *IdentityControllerImpl) getSettings(w http.ResponseWriter, r *http.Request) {
	apiUtils.WriteResponse(w, r, http.StatusOK,
		response.NewSettingsResponse(c.appConfig, c.identity, c.tracker.ActivePolls()), c.logger)
}
