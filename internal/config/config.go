package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/ocr"
	"github.com/anoushkasinn/Spend.Sense/internal/plaid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadDotEnv reads KEY=value pairs from the given files, or .env when none
// are named, without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(ExpandPath(f)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// DatabasePath returns the expanded database.path setting.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// LoadOCRConfig returns the tesseract settings under ocr.*.
func LoadOCRConfig() ocr.Config {
	cfg := ocr.DefaultConfig()
	if v := viper.GetString("ocr.binary"); v != "" {
		cfg.Binary = ExpandPath(v)
	}
	if v := viper.GetString("ocr.language"); v != "" {
		cfg.Language = v
	}
	if v := viper.GetDuration("ocr.timeout"); v > 0 {
		cfg.Timeout = v
	}
	return cfg
}

// LoadPlaidConfig returns the Plaid credentials under plaid.*, falling back
// to PLAID_* variables.
func LoadPlaidConfig() (*plaid.Config, error) {
	cfg := &plaid.Config{
		ClientID:    firstSet(viper.GetString("plaid.client_id"), "PLAID_CLIENT_ID"),
		Secret:      firstSet(viper.GetString("plaid.secret"), "PLAID_SECRET"),
		Environment: firstSet(viper.GetString("plaid.environment"), "PLAID_ENV"),
		AccessToken: firstSet(viper.GetString("plaid.access_token"), "PLAID_ACCESS_TOKEN"),
	}
	if cfg.Environment == "" {
		cfg.Environment = "sandbox"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ImportWindow returns the default look-back for bank imports.
func ImportWindow() time.Duration {
	if days := viper.GetInt("import.days"); days > 0 {
		return time.Duration(days) * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

func firstSet(value, env string) string {
	if value != "" {
		return value
	}
	return os.Getenv(env)
}
