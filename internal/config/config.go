/*
Package config loads process configuration from an env file and the process
environment, failing fast when required keys are absent.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
)

const (
	envDirName  = ".clawdbot"
	envFileName = ".env"

	defaultSMTPServer = "smtp.gmail.com"
	defaultSMTPPort   = 587
)

var requiredKeys = []string{
	"GEMINI_API_KEY",
	"SUPABASE_URL",
	"SUPABASE_SERVICE_ROLE_KEY",
}

// EmailConfig holds SMTP configuration for the optional summary email.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
	Enabled    bool
}

// Config is the process configuration for one run.
type Config struct {
	GeminiAPIKey           string
	SupabaseURL            string
	SupabaseServiceRoleKey string
	Email                  EmailConfig
}

// DefaultEnvPath returns the conventional env file location (~/.clawdbot/.env).
func DefaultEnvPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, envDirName, envFileName)
}

// Load reads key/value pairs from the env file at path into the process
// environment, then builds a Config from it. A missing file is not fatal; the
// process environment alone may already carry the required keys. Missing
// required keys are fatal and the returned error names every one of them.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			if os.IsNotExist(err) {
				log.Warn().Str("path", path).Msg("env file not found, using process environment only")
			} else {
				return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		SupabaseURL:            os.Getenv("SUPABASE_URL"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
	}

	var missing []string
	for _, key := range requiredKeys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg.Email = loadEmailConfig()

	return cfg, nil
}

// loadEmailConfig reads the optional SMTP keys. The summary email is enabled
// only when user, password and recipient are all present.
func loadEmailConfig() EmailConfig {
	ec := EmailConfig{
		SMTPServer: os.Getenv("SMTP_SERVER"),
		SMTPPort:   defaultSMTPPort,
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		FromEmail:  os.Getenv("FROM_EMAIL"),
		ToEmail:    os.Getenv("TO_EMAIL"),
	}

	if ec.SMTPServer == "" {
		ec.SMTPServer = defaultSMTPServer
	}
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			log.Warn().Str("value", portStr).Msg("invalid SMTP_PORT, using default")
		} else {
			ec.SMTPPort = port
		}
	}
	if ec.FromEmail == "" {
		ec.FromEmail = ec.SMTPUser
	}

	ec.Enabled = ec.SMTPUser != "" && ec.SMTPPass != "" && ec.ToEmail != ""

	return ec
}
