package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.NotifyDriver != "log" {
		t.Errorf("NotifyDriver = %q, want log", cfg.NotifyDriver)
	}
	if cfg.RestaurantName != "Delicious Bites" {
		t.Errorf("RestaurantName = %q", cfg.RestaurantName)
	}
	if cfg.SeedData {
		t.Error("SeedData must default to off")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("NOTIFY_DRIVER", "smtp")
	t.Setenv("SMTP_ADDR", "mail.internal:587")
	t.Setenv("SEED_DATA", "true")

	cfg := Load()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.NotifyDriver != "smtp" {
		t.Errorf("NotifyDriver = %q, want smtp", cfg.NotifyDriver)
	}
	if cfg.SMTPAddr != "mail.internal:587" {
		t.Errorf("SMTPAddr = %q", cfg.SMTPAddr)
	}
	if !cfg.SeedData {
		t.Error("SeedData = false, want true")
	}
}
