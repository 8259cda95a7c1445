package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.Env != "development" {
		t.Errorf("expected development, got %s", cfg.Env)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("expected UTC, got %s", cfg.Timezone)
	}
	if cfg.DBMaxOpenConns != 10 || cfg.DBMaxIdleConns != 5 {
		t.Errorf("unexpected pool defaults: %d/%d", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if err := cfg.RequireDatabase(); err != nil {
		t.Errorf("unexpected database error: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("EXPORT_S3_BUCKET", "exports")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != "9090" || cfg.DBMaxOpenConns != 25 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if got := cfg.Origins(); len(got) != 2 || got[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", got)
	}
	if !cfg.ExportArchiveEnabled() {
		t.Error("expected export archive enabled")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default secret in production")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireDatabase(t *testing.T) {
	if err := (&Config{}).RequireDatabase(); err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
}
