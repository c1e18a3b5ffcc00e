package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("IMAGE_DIR", "")
	t.Setenv("APP_ENV", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.DatabaseDSN != "" {
		t.Fatalf("expected empty DSN, got %s", cfg.DatabaseDSN)
	}
	if cfg.SQLitePath != "jucygo.db" {
		t.Fatalf("default sqlite path: %s", cfg.SQLitePath)
	}
	if cfg.ImageDir != "images" {
		t.Fatalf("default image dir: %s", cfg.ImageDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/jucygo")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("port override: %s", cfg.Port)
	}
	if cfg.DatabaseDSN == "" {
		t.Fatal("dsn override lost")
	}
}

func TestParseBool(t *testing.T) {
	t.Setenv("FLAG_X", "notabool")
	if ParseBool("FLAG_X", true) != true {
		t.Fatal("invalid value should fall back to default")
	}
	t.Setenv("FLAG_X", "true")
	if !ParseBool("FLAG_X", false) {
		t.Fatal("expected true")
	}
}
