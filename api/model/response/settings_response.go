package response

import (
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
)

type SettingsResponse struct {
	PollIntervalMs          uint64 `json:"pollIntervalMs"`
	BridgeAPIURL            string `json:"bridgeApiUrl"`
	OneClickEnabled         bool   `json:"oneClickEnabled"`
	SelectedAccount         string `json:"selectedAccount"`
	SelectedNetworkClientID string `json:"selectedNetworkClientId"`
	CurrentChainID          string `json:"currentChainId"`
	ActivePolls             int    `json:"activePolls"`
} // @name SettingsResponse

func NewSettingsResponse(
	appConfig *core.AppConfig, identity core.IdentityProvider, activePolls int,
) *SettingsResponse {
	return &SettingsResponse{
		PollIntervalMs:          appConfig.Tracker.PollIntervalMs,
		BridgeAPIURL:            appConfig.Fetchers.BridgeAPI.BaseURL,
		OneClickEnabled:         appConfig.Fetchers.OneClick.Enabled,
		SelectedAccount:         identity.GetSelectedAccountAddress(),
		SelectedNetworkClientID: identity.GetSelectedNetworkClientID(),
		CurrentChainID:          identity.GetCurrentChainID(),
		ActivePolls:             activePolls,
	}
}
