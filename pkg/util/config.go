package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

func setConfigDefaults() {
	viper.SetDefault("TOPOLOGY_FILE", "./data/edges.csv")
	viper.SetDefault("DURATIONS_FILE", "./data/predicted_durations.csv")
	viper.SetDefault("HISTORY_FILE", "./data/routes.csv")

	viper.SetDefault("DISCOUNT_MODE", "hourly")
	viper.SetDefault("DISCOUNT_THRESHOLD", 0.0)
	viper.SetDefault("DISCOUNT_CACHE_SIZE", 64)
	viper.SetDefault("SIMILARITY_THRESHOLD", 0.75)
	viper.SetDefault("BATCH_WORKERS", 8)

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	viper.SetDefault("LOG_LEVEL", "info")
}

// ReadConfig loads config.{yaml,json,toml} from configPath. A missing file is not an error:
// defaults and environment variables still apply.
func ReadConfig(configPath string) error {
	setConfigDefaults()
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath(configPath)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
