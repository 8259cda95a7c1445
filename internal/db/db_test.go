package db

import (
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/config"
	"github.com/BruksfildServices01/appointease/internal/models"
)

func TestNewDB_RequiresURL(t *testing.T) {
	if _, err := NewDB(&config.Config{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestMigrate_BackfillsStatus(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(gdb, zerolog.Nop()); err != nil {
		t.Fatalf("first migrate: %v", err)
	}

	if err := gdb.Exec(
		`INSERT INTO appointments (id, user_id, title, date, start_time, end_time, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"a", "u", "t", "2030-01-01", "09:00", "10:00", "",
	).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := Migrate(gdb, zerolog.Nop()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var ap models.Appointment
	if err := gdb.First(&ap, "id = ?", "a").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if ap.Status != "pending" {
		t.Fatalf("expected backfilled pending, got %q", ap.Status)
	}
}
