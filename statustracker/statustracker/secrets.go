package statustracker

import (
	"fmt"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/cardano-infrastructure/secrets"
)

var (
	OneClickJWTSecretName = fmt.Sprintf("%soneclick_jwt_token", secrets.OtherKeyLocalPrefix)
	APIKeySecretName      = fmt.Sprintf("%sstatus_tracker_api_key", secrets.OtherKeyLocalPrefix)
)

// LoadSecrets fills credentials missing from the config from the configured secrets manager.
// Values already present in the config are kept.
func LoadSecrets(appConfig *core.AppConfig) error {
	if !appConfig.Secrets.IsEnabled() {
		return nil
	}

	secretsManager, err := common.GetSecretsManager(
		appConfig.Secrets.DataDir, appConfig.Secrets.ConfigPath, true)
	if err != nil {
		return fmt.Errorf("failed to create secrets manager: %w", err)
	}

	if appConfig.Fetchers.OneClick.Enabled && appConfig.Fetchers.OneClick.JWTToken == "" {
		jwtToken, err := common.GetSecretValue(secretsManager, OneClickJWTSecretName)
		if err != nil {
			return err
		}

		appConfig.Fetchers.OneClick.JWTToken = jwtToken
	}

	if len(appConfig.APIConfig.APIKeys) == 0 {
		apiKey, err := common.GetSecretValue(secretsManager, APIKeySecretName)
		if err != nil {
			return err
		}

		if apiKey != "" {
			appConfig.APIConfig.APIKeys = []string{apiKey}
		}
	}

	return nil
}
