package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the relay service.
type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// Google Sheets log store
	GoogleSheetID         string `mapstructure:"GOOGLE_SHEET_ID"`
	GoogleCredentialsJSON string `mapstructure:"GOOGLE_CREDENTIALS"`
	SheetName             string `mapstructure:"SHEET_NAME"`

	// Android push notifier (Join/AutoRemote push URL)
	AndroidSendURL         string `mapstructure:"ANDROID_SEND_URL"`
	NotifierTimeoutSeconds int    `mapstructure:"NOTIFIER_TIMEOUT_SECONDS"`

	// Shared secret for the cron trigger endpoint
	CronSecret string `mapstructure:"CRON_SECRET"`
}

// Load reads configuration from config.defaults.yaml (if present) and the
// environment. Environment variables use the APP_ prefix, e.g.
// APP_GOOGLE_SHEET_ID, APP_ANDROID_SEND_URL.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath("../../../configs") // For running from cmd/relay_service/
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	// Defaults for every known key so AutomaticEnv can bind them.
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GOOGLE_SHEET_ID", "")
	v.SetDefault("GOOGLE_CREDENTIALS", "")
	v.SetDefault("SHEET_NAME", "Sheet1")
	v.SetDefault("ANDROID_SEND_URL", "")
	v.SetDefault("NOTIFIER_TIMEOUT_SECONDS", 10)
	v.SetDefault("CRON_SECRET", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Configuration file ('config.defaults.yaml') not found for %s; using defaults and environment variables.", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
