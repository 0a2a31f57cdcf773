package onboarding

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service. Values are read once at
// startup and passed explicitly to the components that need them; nothing
// reads configuration after that.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	SMTP     SMTPConfig     `yaml:"smtp"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Namespace string `yaml:"namespace"`
	Debug     bool   `yaml:"debug"`
}

// AuthConfig holds the two basic-auth secrets gating the endpoint
type AuthConfig struct {
	APIUsername string `yaml:"api_username"`
	APIPassword string `yaml:"api_password"`
}

// DatabaseConfig holds the user directory connection settings
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SMTPConfig holds the mail relay settings. An empty host selects the
// console mailer.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// LoadConfig reads an optional YAML file, then applies environment
// overrides. A missing file is fine; missing auth secrets are not.
func LoadConfig(path string) (*Config, error) {
	// .env is a development convenience, absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			Namespace: DefaultNamespace,
		},
		Database: DatabaseConfig{
			DSN: "file::memory:?cache=shared",
		},
		SMTP: SMTPConfig{
			Port: 587,
			From: "noreply@rkycareers.com",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Auth.APIUsername == "" || cfg.Auth.APIPassword == "" {
		return nil, fmt.Errorf("missing API credentials: set RKY_API_USERNAME and RKY_API_PASSWORD")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RKY_API_USERNAME"); v != "" {
		cfg.Auth.APIUsername = v
	}
	if v := os.Getenv("RKY_API_PASSWORD"); v != "" {
		cfg.Auth.APIPassword = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_NAMESPACE"); v != "" {
		cfg.Server.Namespace = v
	}
	if v := os.Getenv("SERVER_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Server.Debug = debug
		}
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
}
