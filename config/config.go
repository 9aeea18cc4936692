// Package config loads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Facebook FacebookConfig
	Server   ServerConfig
	Redis    RedisConfig
}

// FacebookConfig is the Graph API app registration this service acts as.
type FacebookConfig struct {
	AppID       string
	AppSecret   string
	RedirectURI string
}

type ServerConfig struct {
	Port        string
	FrontendURL string
}

// RedisConfig is optional; an empty Host disables redis.
type RedisConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// Addr returns host:port, or "" when redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return r.Host + ":" + port
}

// Load reads configuration from the environment. CLIENT_ID, CLIENT_SECRET
// and REDIRECT_URI are required; everything else has a default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("using platform environment variables (no .env file)")
	}

	cfg := &Config{
		Facebook: FacebookConfig{
			AppID:       os.Getenv("CLIENT_ID"),
			AppSecret:   os.Getenv("CLIENT_SECRET"),
			RedirectURI: os.Getenv("REDIRECT_URI"),
		},
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Username: os.Getenv("REDIS_USERNAME"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	for _, required := range []struct{ key, value string }{
		{"CLIENT_ID", cfg.Facebook.AppID},
		{"CLIENT_SECRET", cfg.Facebook.AppSecret},
		{"REDIRECT_URI", cfg.Facebook.RedirectURI},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("%s environment variable is not set", required.key)
		}
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
