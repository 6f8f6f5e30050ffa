package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string      `toml:"addr"`
	BaseURL  string      `toml:"base_url"`
	LogLevel string      `toml:"log_level"`
	DB       DBConfig    `toml:"db"`
	Email    EmailConfig `toml:"email"`
}

type DBConfig struct {
	// Driver is "sqlite" for the embedded file-based store or "mysql" for a
	// networked server. Queries are identical apart from the DDL.
	Driver string `toml:"driver"`
	// DSN is a file path for sqlite, a go-sql-driver DSN for mysql.
	DSN string `toml:"dsn"`
}

type EmailConfig struct {
	FromEmail    string `toml:"from_email"`
	ResendAPIKey string `toml:"resend_api_key"`
	SMTPEnabled  bool   `toml:"smtp_enabled"`
	SMTPHost     string `toml:"smtp_host"`
	SMTPPort     string `toml:"smtp_port"`
	SMTPUser     string `toml:"smtp_user"`
	SMTPPass     string `toml:"smtp_pass"`
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load builds the configuration from, in order of increasing precedence:
// built-in defaults, an optional TOML file, and environment variables.
// A .env file in the working directory is read into the environment first.
func Load(path string) (Config, error) {
	godotenv.Load()

	cfg := Config{
		Addr:     ":8080",
		BaseURL:  "http://localhost:8080",
		LogLevel: "info",
		DB: DBConfig{
			Driver: "sqlite",
			DSN:    "tasklist.db",
		},
		Email: EmailConfig{
			FromEmail: "Tasklist <tasklist@localhost>",
			SMTPPort:  "587",
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.Addr = getEnv("TASKLIST_ADDR", cfg.Addr)
	cfg.BaseURL = getEnv("TASKLIST_BASE_URL", cfg.BaseURL)
	cfg.LogLevel = getEnv("TASKLIST_LOG_LEVEL", cfg.LogLevel)
	cfg.DB.Driver = strings.ToLower(getEnv("TASKLIST_DB_DRIVER", cfg.DB.Driver))
	cfg.DB.DSN = getEnv("TASKLIST_DB_DSN", cfg.DB.DSN)
	cfg.Email.FromEmail = getEnv("TASKLIST_FROM_EMAIL", cfg.Email.FromEmail)
	cfg.Email.ResendAPIKey = getEnv("RESEND_API_KEY", cfg.Email.ResendAPIKey)
	if strings.EqualFold(getEnv("SMTP_ENABLED", ""), "true") {
		cfg.Email.SMTPEnabled = true
	}
	cfg.Email.SMTPHost = getEnv("SMTP_HOST", cfg.Email.SMTPHost)
	cfg.Email.SMTPPort = getEnv("SMTP_PORT", cfg.Email.SMTPPort)
	cfg.Email.SMTPUser = getEnv("SMTP_USER", cfg.Email.SMTPUser)
	cfg.Email.SMTPPass = getEnv("SMTP_PASS", cfg.Email.SMTPPass)

	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "mysql" {
		return cfg, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	return cfg, nil
}
