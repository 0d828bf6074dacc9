package config

import (
	"os"
	"path/filepath"
	"testing"
)

var managedKeys = []string{
	"APP_PORT", "LOG_LEVEL", "SEED_RECORDS", "SEED_VALUE", "REPORT_CRON_SCHEDULE", "TIMEZONE",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "META_VERIFY_TOKEN", "WHATSAPP_BASE_URL",
	"WHATSAPP_API_VERSION", "WHATSAPP_REPORT_RECIPIENT", "GOOGLE_SHEETS_CREDENTIALS_PATH",
	"GOOGLE_SHEET_DATABASE_ID", "MONGODB_URI", "MONGODB_DB_NAME", "ANTHROPIC_API_KEY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" || cfg.Server.LogLevel != "info" {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Seed.Records != 50 || cfg.Seed.Value != 0 {
		t.Errorf("unexpected seed config %+v", cfg.Seed)
	}
	if cfg.Reporting.CronSchedule != "0 20 * * 5" || cfg.Reporting.Timezone != "UTC" {
		t.Errorf("unexpected reporting config %+v", cfg.Reporting)
	}
	if cfg.WhatsApp.Enabled() || cfg.Sheets.Enabled() || cfg.MongoDB.Enabled() {
		t.Error("optional integrations must be disabled by default")
	}
	if cfg.MongoDB.DBName != "nutriwatch" {
		t.Errorf("unexpected db name %q", cfg.MongoDB.DBName)
	}
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range managedKeys {
		// godotenv does not override variables that are already set.
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nSEED_RECORDS=10\nSEED_VALUE=7\nWHATSAPP_TOKEN=tok\nWHATSAPP_PHONE_NUMBER_ID=123\nMETA_VERIFY_TOKEN=verify\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Seed.Records != 10 || cfg.Seed.Value != 7 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !cfg.WhatsApp.Enabled() {
		t.Error("expected whatsapp to be enabled")
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEED_RECORDS", "many")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric SEED_RECORDS")
	}

	t.Setenv("SEED_RECORDS", "")
	t.Setenv("SEED_VALUE", "-1")
	if _, err := Load(""); err == nil {
		t.Error("expected error for negative SEED_VALUE")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: "8080"},
			Seed:      SeedConfig{Records: 50},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC"},
			WhatsApp:  WhatsAppConfig{BaseURL: "https://graph.facebook.com", APIVersion: "v20.0"},
			MongoDB:   MongoDBConfig{DBName: "nutriwatch"},
		}
	}

	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(c *Config){
		"missing port":       func(c *Config) { c.Server.Port = "" },
		"negative seed":      func(c *Config) { c.Seed.Records = -1 },
		"missing cron":       func(c *Config) { c.Reporting.CronSchedule = "" },
		"bad timezone":       func(c *Config) { c.Reporting.Timezone = "Nowhere/Land" },
		"half whatsapp":      func(c *Config) { c.WhatsApp.AccessToken = "tok" },
		"whatsapp no verify": func(c *Config) { c.WhatsApp.AccessToken, c.WhatsApp.PhoneNumberID = "tok", "1" },
		"half sheets":        func(c *Config) { c.Sheets.SpreadsheetID = "sheet" },
		"mongo without db":   func(c *Config) { c.MongoDB.URI, c.MongoDB.DBName = "mongodb://localhost", "" },
		"whatsapp no version": func(c *Config) {
			c.WhatsApp = WhatsAppConfig{AccessToken: "t", PhoneNumberID: "1", VerifyToken: "v", BaseURL: "x"}
		},
	}

	for name, mutate := range cases {
		c := valid()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}

	var nilCfg *Config
	if err := nilCfg.Validate(); err == nil {
		t.Error("expected error for nil config")
	}
}
