package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Detection DetectionConfig `mapstructure:"detection"`
	Poll      PollConfig      `mapstructure:"poll"`
}

// ServerConfig holds the gateway HTTP server configuration
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	AllowedOrigins  string `mapstructure:"allowedOrigins"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
}

// DetectionConfig holds the detection backend connection configuration
type DetectionConfig struct {
	BaseURL        string        `mapstructure:"baseUrl"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
}

// PollConfig holds the refresh intervals of the background poller
type PollConfig struct {
	FeedInterval   time.Duration `mapstructure:"feedInterval"`
	StatusInterval time.Duration `mapstructure:"statusInterval"`
}

// LoadConfig loads the application configuration from file or environment variables
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	// Set default values
	viper.SetDefault("server.port", "8081")
	viper.SetDefault("server.allowedOrigins", "*")
	viper.SetDefault("server.shutdownTimeout", 10)
	viper.SetDefault("detection.baseUrl", "http://localhost:5000")
	viper.SetDefault("detection.requestTimeout", "10s")
	viper.SetDefault("poll.feedInterval", "5s")
	viper.SetDefault("poll.statusInterval", "15s")

	// Allow environment variables to override config file
	viper.SetEnvPrefix("SURV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If config file is provided, read it
	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			logrus.Warnf("Error reading config file: %v", err)
		}
	}

	// Unmarshal config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
