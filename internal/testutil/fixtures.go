package testutil

import (
	"math"
	"testing"

	"riskreport/internal/date"
	"riskreport/internal/models"
	"riskreport/internal/store"

	"gorm.io/gorm"
)

// CreateTestPortfolio inserts a portfolio row and returns the entity.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, name string) *models.Portfolio {
	t.Helper()

	row := store.PortfolioRow{Name: name}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	p, err := models.NewPortfolio(row.ID, row.Name)
	AssertNoError(t, err)
	return p
}

// CreateTestInstrument inserts an instrument row of the given type and
// returns the entity.
func CreateTestInstrument(t *testing.T, db *gorm.DB, name string, typeID models.InstrumentTypeID) models.Instrument {
	t.Helper()

	row := store.InstrumentRow{Name: name, InstrumentTypeID: int64(typeID)}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create test instrument: %v", err)
	}
	inst, err := models.NewInstrument(row.ID, row.Name, typeID)
	AssertNoError(t, err)
	return inst
}

// CreateTestPosition inserts a position row and returns the entity.
func CreateTestPosition(t *testing.T, db *gorm.DB, portfolio *models.Portfolio, instrument models.Instrument, from, to date.Date, quantity float64) *models.Position {
	t.Helper()

	row := store.PositionRow{
		DateFrom:     from,
		DateTo:       to,
		PortfolioID:  portfolio.ID(),
		InstrumentID: instrument.ID(),
		Quantity:     quantity,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create test position: %v", err)
	}
	pos, err := models.CreatePosition(row.ID, portfolio, instrument, from, to, quantity)
	AssertNoError(t, err)
	return pos
}

// CreateTestPrice inserts a single price row.
func CreateTestPrice(t *testing.T, db *gorm.DB, instrument models.Instrument, on date.Date, price float64) {
	t.Helper()

	row := store.PriceRow{InstrumentID: instrument.ID(), PriceDate: on, Price: price}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create test price: %v", err)
	}
}

// CreateTestPriceSeries inserts one price per calendar day in [from, to],
// taking each value from priceAt. It returns the number of rows inserted.
func CreateTestPriceSeries(t *testing.T, db *gorm.DB, instrument models.Instrument, from, to date.Date, priceAt func(date.Date) float64) int {
	t.Helper()

	var rows []store.PriceRow
	for d := range date.Range(from, to) {
		rows = append(rows, store.PriceRow{InstrumentID: instrument.ID(), PriceDate: d, Price: priceAt(d)})
	}
	if len(rows) == 0 {
		return 0
	}
	if err := db.CreateInBatches(rows, 200).Error; err != nil {
		t.Fatalf("failed to create test price series: %v", err)
	}
	return len(rows)
}

// Oscillating returns a strictly positive price function that moves around
// base by up to amplitude percent with the given period in days.
func Oscillating(base, amplitude float64, period int) func(date.Date) float64 {
	origin := date.New(2000, 1, 1)
	return func(d date.Date) float64 {
		x := float64(origin.DaysUntil(d)) * 2 * math.Pi / float64(period)
		return base * (1 + amplitude/100*math.Sin(x))
	}
}

// SamplePortfolio describes the data inserted by SeedSamplePortfolio.
type SamplePortfolio struct {
	Portfolio *models.Portfolio
	Apple     models.Instrument
	Microsoft models.Instrument
	Treasury  models.Instrument
	Positions []*models.Position
}

// SeedSamplePortfolio inserts a portfolio holding two equities and a bond,
// with positions covering [from, to] and a daily price for every day of that
// interval.
func SeedSamplePortfolio(t *testing.T, db *gorm.DB, name string, from, to date.Date) *SamplePortfolio {
	t.Helper()

	s := &SamplePortfolio{Portfolio: CreateTestPortfolio(t, db, name)}
	s.Apple = CreateTestInstrument(t, db, name+" AAPL", models.InstrumentTypeEquity)
	s.Microsoft = CreateTestInstrument(t, db, name+" MSFT", models.InstrumentTypeEquity)
	s.Treasury = CreateTestInstrument(t, db, name+" UST 4.25% 2030", models.InstrumentTypeBond)

	s.Positions = []*models.Position{
		CreateTestPosition(t, db, s.Portfolio, s.Apple, from, to, 55),
		CreateTestPosition(t, db, s.Portfolio, s.Microsoft, from, to, 12),
		CreateTestPosition(t, db, s.Portfolio, s.Treasury, from, to, 10000),
	}

	CreateTestPriceSeries(t, db, s.Apple, from, to, Oscillating(312, 4, 11))
	CreateTestPriceSeries(t, db, s.Microsoft, from, to, Oscillating(78, 6, 17))
	CreateTestPriceSeries(t, db, s.Treasury, from, to, Oscillating(99.5, 0.5, 29))
	return s
}
