package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for the API.
type Config struct {
	AppPort     string
	DatabaseDSN string
	FrontendURL string
	RabbitMQURL string
}

// Load reads configuration from environment variables, falling back
// to development defaults. An empty RABBITMQ_URL disables product
// event publication.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":4000")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=products port=5432 sslmode=disable")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return &Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		FrontendURL: viper.GetString("FRONTEND_URL"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}
