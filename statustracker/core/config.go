package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	apiCore "github.com/Ethernal-Tech/bridge-status-tracker/api/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	"github.com/Ethernal-Tech/cardano-infrastructure/logger"
)

const (
	defaultPollIntervalMs        = uint64(10_000)
	defaultFetchTimeoutMs        = uint64(10_000)
	defaultWebhookNumRetries     = uint64(5)
	defaultWebhookRetryWaitMs    = uint64(500)
	defaultTelemetryWorkerTimeMs = uint64(30_000)
	defaultBridgeAPIBaseURL      = "https://bridge.api.cx.metamask.io"
	defaultAPIPathPrefix         = "api"
	defaultAPIKeyHeader          = "X-API-KEY"
)

type AppSettings struct {
	Logger  logger.LoggerConfig `json:"logger"`
	DbsPath string              `json:"dbsPath"`
}

// SecretsConfig points to a secrets manager holding credentials that should not live in the config file.
// ConfigPath selects a secrets manager config, otherwise a local store in DataDir is used.
type SecretsConfig struct {
	DataDir    string `json:"dataDir"`
	ConfigPath string `json:"configPath"`
}

func (c SecretsConfig) IsEnabled() bool {
	return c.DataDir != "" || c.ConfigPath != ""
}

type TrackerConfig struct {
	PollIntervalMs        uint64 `json:"pollIntervalMs"`
	TelemetryWorkerTimeMs uint64 `json:"telemetryWorkerTimeMs"`
}

func (c TrackerConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

func (c TrackerConfig) TelemetryWorkerTime() time.Duration {
	return time.Duration(c.TelemetryWorkerTimeMs) * time.Millisecond
}

type BridgeAPIConfig struct {
	BaseURL   string `json:"baseUrl"`
	ClientID  string `json:"clientId"`
	TimeoutMs uint64 `json:"timeoutMs"`
}

type OneClickConfig struct {
	Enabled   bool   `json:"enabled"`
	BaseURL   string `json:"baseUrl"`
	JWTToken  string `json:"jwtToken"`
	TimeoutMs uint64 `json:"timeoutMs"`
}

type FetchersConfig struct {
	BridgeAPI BridgeAPIConfig `json:"bridgeApi"`
	OneClick  OneClickConfig  `json:"oneClick"`
}

type WebhookConfig struct {
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers"`
	NumRetries  uint64            `json:"numRetries"`
	RetryWaitMs uint64            `json:"retryWaitMs"`
	TimeoutMs   uint64            `json:"timeoutMs"`
}

type IdentityConfig struct {
	SelectedAccount         string                                `json:"selectedAccount"`
	SelectedNetworkClientID string                                `json:"selectedNetworkClientId"`
	NetworkClients          map[string]NetworkClientConfiguration `json:"networkClients"`
}

type AppConfig struct {
	Settings  AppSettings               `json:"appSettings"`
	Secrets   SecretsConfig             `json:"secrets"`
	Tracker   TrackerConfig             `json:"tracker"`
	Fetchers  FetchersConfig            `json:"fetchers"`
	Identity  IdentityConfig            `json:"identity"`
	Webhooks  []WebhookConfig           `json:"webhooks"`
	APIConfig apiCore.APIConfig         `json:"api"`
	Telemetry telemetry.TelemetryConfig `json:"telemetry"`
}

func (appConfig *AppConfig) FillOut() {
	if appConfig.Tracker.PollIntervalMs == 0 {
		appConfig.Tracker.PollIntervalMs = defaultPollIntervalMs
	}

	if appConfig.Tracker.TelemetryWorkerTimeMs == 0 {
		appConfig.Tracker.TelemetryWorkerTimeMs = defaultTelemetryWorkerTimeMs
	}

	if appConfig.Fetchers.BridgeAPI.BaseURL == "" {
		appConfig.Fetchers.BridgeAPI.BaseURL = defaultBridgeAPIBaseURL
	}

	if appConfig.Fetchers.BridgeAPI.TimeoutMs == 0 {
		appConfig.Fetchers.BridgeAPI.TimeoutMs = defaultFetchTimeoutMs
	}

	if appConfig.Fetchers.OneClick.TimeoutMs == 0 {
		appConfig.Fetchers.OneClick.TimeoutMs = defaultFetchTimeoutMs
	}

	if appConfig.APIConfig.PathPrefix == "" {
		appConfig.APIConfig.PathPrefix = defaultAPIPathPrefix
	}

	if appConfig.APIConfig.APIKeyHeader == "" {
		appConfig.APIConfig.APIKeyHeader = defaultAPIKeyHeader
	}

	for i := range appConfig.Webhooks {
		if appConfig.Webhooks[i].NumRetries == 0 {
			appConfig.Webhooks[i].NumRetries = defaultWebhookNumRetries
		}

		if appConfig.Webhooks[i].RetryWaitMs == 0 {
			appConfig.Webhooks[i].RetryWaitMs = defaultWebhookRetryWaitMs
		}

		if appConfig.Webhooks[i].TimeoutMs == 0 {
			appConfig.Webhooks[i].TimeoutMs = defaultFetchTimeoutMs
		}
	}
}

func (appConfig *AppConfig) Validate() error {
	if !common.IsValidURL(appConfig.Fetchers.BridgeAPI.BaseURL) {
		return fmt.Errorf("invalid bridge api url: %s", appConfig.Fetchers.BridgeAPI.BaseURL)
	}

	if appConfig.Fetchers.OneClick.Enabled && appConfig.Fetchers.OneClick.BaseURL != "" &&
		!common.IsValidURL(appConfig.Fetchers.OneClick.BaseURL) {
		return fmt.Errorf("invalid one click api url: %s", appConfig.Fetchers.OneClick.BaseURL)
	}

	for _, webhook := range appConfig.Webhooks {
		if !common.IsValidURL(webhook.URL) {
			return fmt.Errorf("invalid webhook url: %s", webhook.URL)
		}
	}

	for id, networkClient := range appConfig.Identity.NetworkClients {
		if _, err := common.ParseChainID(networkClient.ChainID); err != nil {
			return fmt.Errorf("invalid chain id for network client %s: %w", id, err)
		}
	}

	if id := appConfig.Identity.SelectedNetworkClientID; id != "" {
		// map keys are lower cased when the config is loaded
		exists := slices.ContainsFunc(slices.Collect(maps.Keys(appConfig.Identity.NetworkClients)),
			func(key string) bool { return strings.EqualFold(key, id) })
		if !exists {
			return fmt.Errorf("selected network client %s is not configured", id)
		}
	}

	return nil
}
