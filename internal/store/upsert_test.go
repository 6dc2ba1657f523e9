package store

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"riskreport/internal/date"
)

func TestNaturalKeyHash(t *testing.T) {
	base := KeyFigureValueRow{
		KeyFigureDate:      date.MustParse("2024-05-31"),
		Value:              19096,
		KeyFigureRefTypeID: 3,
		ReferenceEntityID:  1,
		KeyFigureID:        1,
	}

	same := base
	same.ID = 42
	same.Value = 1
	if naturalKeyHash(same) != naturalKeyHash(base) {
		t.Error("expected id and value to be ignored")
	}

	tests := []struct {
		name   string
		mutate func(*KeyFigureValueRow)
	}{
		{"date", func(r *KeyFigureValueRow) { r.KeyFigureDate = r.KeyFigureDate.Add(1) }},
		{"ref_type", func(r *KeyFigureValueRow) { r.KeyFigureRefTypeID = 1 }},
		{"reference", func(r *KeyFigureValueRow) { r.ReferenceEntityID = 2 }},
		{"key_figure", func(r *KeyFigureValueRow) { r.KeyFigureID = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			if naturalKeyHash(other) == naturalKeyHash(base) {
				t.Errorf("expected a different key when %s changes", tt.name)
			}
		})
	}
}

func TestLockNaturalKeySQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return lockNaturalKey(tx, KeyFigureValueRow{KeyFigureDate: date.MustParse("2024-05-31")})
	})
	if err != nil {
		t.Errorf("expected no lock statement on sqlite, got %v", err)
	}
}
