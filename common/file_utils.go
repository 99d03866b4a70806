package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "BST"

func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		// If the directory doesn't exist, create it
		return os.MkdirAll(dirPath, os.ModePerm)
	}

	return nil
}

// Loads config from defined path or from root
// Prefix defined as: (prefix)_config.json
// String valued keys present in the file can be overridden with BST_<KEY_PATH> environment variables,
// for example BST_FETCHERS_ONECLICK_JWTTOKEN overrides fetchers.oneClick.jwtToken.
// Map keys are lower cased by viper.
func LoadConfig[TReturn any](configPath string, configPrefix string) (*TReturn, error) {
	if configPath == "" {
		ex, err := os.Executable()
		if err != nil {
			return nil, err
		}

		if strings.TrimSpace(configPrefix) != "" {
			configPath = path.Join(filepath.Dir(ex), strings.Join([]string{configPrefix, "config.json"}, "_"))
		} else {
			configPath = path.Join(filepath.Dir(ex), "config.json")
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %v. error: %w", configPath, err)
	}

	// viper lower cases keys, json decoding matches field names case insensitively
	bytes, err := json.Marshal(v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to encode config %v. error: %w", configPath, err)
	}

	var config TReturn
	if err := json.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config %v. error: %w", configPath, err)
	}

	return &config, nil
}
