// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"riskreport/internal/models"
	"riskreport/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// SetupTestDB creates a private in-memory SQLite database with every table
// migrated and the lookup tables seeded.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:riskdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(store.AllRows...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	SeedReferenceData(t, db)

	return db
}

// SeedReferenceData inserts the InstrumentType, KeyFigure and
// KeyFigureRefType lookup rows with the ids the application expects.
func SeedReferenceData(t *testing.T, db *gorm.DB) {
	t.Helper()

	instrumentTypes := []store.InstrumentTypeRow{
		{ID: int64(models.InstrumentTypeEquity), Name: "Equity"},
		{ID: int64(models.InstrumentTypeBond), Name: "Bond"},
	}
	keyFigures := []store.KeyFigureRow{
		{ID: 1, Name: models.KeyFigureMarketValue},
		{ID: 2, Name: models.KeyFigureReturn1D},
		{ID: 3, Name: models.KeyFigureVolatility3M},
	}
	refTypes := make([]store.KeyFigureRefTypeRow, 0, len(models.RefTypes))
	for _, r := range models.RefTypes {
		refTypes = append(refTypes, store.KeyFigureRefTypeRow{ID: int64(r), Name: r.String()})
	}

	for _, rows := range []any{&instrumentTypes, &keyFigures, &refTypes} {
		if err := db.Create(rows).Error; err != nil {
			t.Fatalf("failed to seed reference data: %v", err)
		}
	}
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
