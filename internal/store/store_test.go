package store_test

import (
	"context"
	"testing"

	"riskreport/internal/date"
	"riskreport/internal/models"
	"riskreport/internal/store"
	"riskreport/internal/testutil"

	"gorm.io/gorm"
)

func withGateway(t *testing.T, db *gorm.DB, fn func(g store.Gateway)) {
	t.Helper()
	err := store.New(db).WithConnection(context.Background(), func(g store.Gateway) error {
		fn(g)
		return nil
	})
	testutil.AssertNoError(t, err)
}

func TestInstruments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	aapl := testutil.CreateTestInstrument(t, db, "AAPL", models.InstrumentTypeEquity)
	ust := testutil.CreateTestInstrument(t, db, "UST 2030", models.InstrumentTypeBond)

	withGateway(t, db, func(g store.Gateway) {
		t.Run("list", func(t *testing.T) {
			list, err := g.ListInstruments(context.Background())
			testutil.AssertNoError(t, err)
			if len(list) != 2 {
				t.Fatalf("expected 2 instruments, got %d", len(list))
			}
			if _, ok := list[1].(*models.Bond); !ok {
				t.Errorf("expected second instrument to be a bond, got %T", list[1])
			}
		})

		t.Run("get_by_id", func(t *testing.T) {
			inst, ok, err := g.GetInstrument(context.Background(), ust.ID())
			testutil.AssertNoError(t, err)
			if !ok || !models.Same(inst, ust) {
				t.Errorf("expected %v, got %v (ok=%v)", ust, inst, ok)
			}
		})

		t.Run("get_by_name", func(t *testing.T) {
			inst, ok, err := g.GetInstrumentByName(context.Background(), "AAPL")
			testutil.AssertNoError(t, err)
			if !ok || !models.Same(inst, aapl) {
				t.Errorf("expected AAPL, got %v (ok=%v)", inst, ok)
			}
		})

		t.Run("not_found", func(t *testing.T) {
			inst, ok, err := g.GetInstrument(context.Background(), 999)
			testutil.AssertNoError(t, err)
			if ok || inst != nil {
				t.Errorf("expected no instrument, got %v", inst)
			}
		})

		t.Run("instrument_types", func(t *testing.T) {
			types, err := g.ListInstrumentTypes(context.Background())
			testutil.AssertNoError(t, err)
			if len(types) != 2 || types[0].Name() != "Equity" || types[1].Name() != "Bond" {
				t.Errorf("unexpected instrument types %v", types)
			}
		})
	})
}

func TestUnknownInstrumentType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	portfolio := testutil.CreateTestPortfolio(t, db, "EQ_US")
	if err := db.Create(&store.InstrumentRow{ID: 50, Name: "Swap", InstrumentTypeID: 9}).Error; err != nil {
		t.Fatalf("create instrument: %v", err)
	}
	if err := db.Create(&store.PositionRow{
		DateFrom:     date.MustParse("2024-01-01"),
		DateTo:       date.MustParse("2024-12-31"),
		PortfolioID:  portfolio.ID(),
		InstrumentID: 50,
		Quantity:     1,
	}).Error; err != nil {
		t.Fatalf("create position: %v", err)
	}

	withGateway(t, db, func(g store.Gateway) {
		_, err := g.ListInstruments(context.Background())
		testutil.AssertAppError(t, err, "UNKNOWN_INSTRUMENT_TYPE")

		_, err = g.ListPositions(context.Background(), store.PositionFilter{Portfolio: portfolio})
		testutil.AssertAppError(t, err, "UNKNOWN_INSTRUMENT_TYPE")
	})
}

func TestPortfolios(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	eq := testutil.CreateTestPortfolio(t, db, "EQ_US")
	testutil.CreateTestPortfolio(t, db, "FI_EU")

	withGateway(t, db, func(g store.Gateway) {
		p, ok, err := g.GetPortfolioByName(context.Background(), "EQ_US")
		testutil.AssertNoError(t, err)
		if !ok || p.ID() != eq.ID() {
			t.Errorf("expected EQ_US with id %d, got %v (ok=%v)", eq.ID(), p, ok)
		}

		_, ok, err = g.GetPortfolioByName(context.Background(), "missing")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected missing portfolio not to be found")
		}

		p, ok, err = g.GetPortfolio(context.Background(), eq.ID())
		testutil.AssertNoError(t, err)
		if !ok || p.Name() != "EQ_US" {
			t.Errorf("expected EQ_US, got %v (ok=%v)", p, ok)
		}
	})
}

func TestListPositions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	eq := testutil.CreateTestPortfolio(t, db, "EQ_US")
	fi := testutil.CreateTestPortfolio(t, db, "FI_EU")
	aapl := testutil.CreateTestInstrument(t, db, "AAPL", models.InstrumentTypeEquity)
	bund := testutil.CreateTestInstrument(t, db, "Bund 2031", models.InstrumentTypeBond)

	jan := date.MustParse("2024-01-01")
	jun := date.MustParse("2024-06-30")
	dec := date.MustParse("2024-12-31")
	testutil.CreateTestPosition(t, db, eq, aapl, jan, jun, 55)
	testutil.CreateTestPosition(t, db, eq, aapl, jun.Add(1), dec, 60)
	testutil.CreateTestPosition(t, db, fi, bund, jan, dec, 1000)

	withGateway(t, db, func(g store.Gateway) {
		tests := []struct {
			name   string
			filter store.PositionFilter
			want   int
		}{
			{"no_filter", store.PositionFilter{}, 3},
			{"by_portfolio", store.PositionFilter{Portfolio: eq}, 2},
			{"by_date", store.PositionFilter{Date: date.MustParse("2024-03-15")}, 2},
			{"by_portfolio_and_date", store.PositionFilter{Portfolio: eq, Date: date.MustParse("2024-07-01")}, 1},
			{"date_from_inclusive", store.PositionFilter{Portfolio: eq, Date: jan}, 1},
			{"date_to_inclusive", store.PositionFilter{Portfolio: eq, Date: jun}, 1},
			{"before_all", store.PositionFilter{Date: jan.Add(-1)}, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := g.ListPositions(context.Background(), tt.filter)
				testutil.AssertNoError(t, err)
				if len(got) != tt.want {
					t.Errorf("expected %d positions, got %d", tt.want, len(got))
				}
			})
		}

		t.Run("resolves_references", func(t *testing.T) {
			got, err := g.ListPositions(context.Background(), store.PositionFilter{Portfolio: fi})
			testutil.AssertNoError(t, err)
			if len(got) != 1 {
				t.Fatalf("expected 1 position, got %d", len(got))
			}
			if _, ok := got[0].Instrument().(*models.Bond); !ok {
				t.Errorf("expected bond instrument, got %T", got[0].Instrument())
			}
			if got[0].Portfolio().Name() != "FI_EU" {
				t.Errorf("expected portfolio FI_EU, got %s", got[0].Portfolio().Name())
			}
		})
	})
}

func TestListPrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	aapl := testutil.CreateTestInstrument(t, db, "AAPL", models.InstrumentTypeEquity)
	msft := testutil.CreateTestInstrument(t, db, "MSFT", models.InstrumentTypeEquity)
	from := date.MustParse("2024-01-01")
	to := date.MustParse("2024-01-10")
	testutil.CreateTestPriceSeries(t, db, aapl, from, to, func(date.Date) float64 { return 312 })
	testutil.CreateTestPriceSeries(t, db, msft, from, to, func(date.Date) float64 { return 78 })

	withGateway(t, db, func(g store.Gateway) {
		tests := []struct {
			name   string
			filter store.PriceFilter
			want   int
		}{
			{"all", store.PriceFilter{}, 20},
			{"by_instrument", store.PriceFilter{Instrument: aapl}, 10},
			{"from_only", store.PriceFilter{From: date.MustParse("2024-01-09")}, 4},
			{"to_only", store.PriceFilter{To: date.MustParse("2024-01-02")}, 4},
			{"exact_day", store.PriceFilter{Instrument: msft, From: from.Add(4), To: from.Add(4)}, 1},
			{"outside", store.PriceFilter{From: date.MustParse("2025-01-01")}, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := g.ListPrices(context.Background(), tt.filter)
				testutil.AssertNoError(t, err)
				if len(got) != tt.want {
					t.Errorf("expected %d prices, got %d", tt.want, len(got))
				}
			})
		}

		t.Run("value", func(t *testing.T) {
			got, err := g.ListPrices(context.Background(), store.PriceFilter{Instrument: msft, From: from, To: from})
			testutil.AssertNoError(t, err)
			if len(got) != 1 || got[0].Value() != 78 || !got[0].Date().Equal(from) {
				t.Errorf("unexpected prices %v", got)
			}
		})
	})
}

func TestKeyFigures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	withGateway(t, db, func(g store.Gateway) {
		figures, err := g.ListKeyFigures(context.Background())
		testutil.AssertNoError(t, err)
		if len(figures) != 3 {
			t.Fatalf("expected 3 key figures, got %d", len(figures))
		}

		kf, ok, err := g.GetKeyFigureByName(context.Background(), models.KeyFigureVolatility3M)
		testutil.AssertNoError(t, err)
		if !ok || kf.ID() != 3 {
			t.Errorf("expected volatility key figure with id 3, got %v (ok=%v)", kf, ok)
		}

		kf, ok, err = g.GetKeyFigure(context.Background(), 1)
		testutil.AssertNoError(t, err)
		if !ok || kf.Name() != models.KeyFigureMarketValue {
			t.Errorf("expected market value key figure, got %v (ok=%v)", kf, ok)
		}

		refTypes, err := g.ListKeyFigureRefTypes(context.Background())
		testutil.AssertNoError(t, err)
		if len(refTypes) != 3 || refTypes[2] != models.RefTypePortfolio {
			t.Errorf("unexpected ref types %v", refTypes)
		}
	})
}

func TestKeyFigureRefTypeMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	if err := db.Model(&store.KeyFigureRefTypeRow{}).Where("id = ?", 3).Update("name", "Account").Error; err != nil {
		t.Fatalf("update ref type: %v", err)
	}

	withGateway(t, db, func(g store.Gateway) {
		_, err := g.ListKeyFigureRefTypes(context.Background())
		testutil.AssertAppError(t, err, "DATA_INTEGRITY")
	})
}

func TestKeyFigureValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	portfolio := testutil.CreateTestPortfolio(t, db, "EQ_US")
	aapl := testutil.CreateTestInstrument(t, db, "AAPL", models.InstrumentTypeEquity)
	ctx := context.Background()
	day := date.MustParse("2024-05-31")

	withGateway(t, db, func(g store.Gateway) {
		mv, _, err := g.GetKeyFigureByName(ctx, models.KeyFigureMarketValue)
		testutil.AssertNoError(t, err)
		ret, _, err := g.GetKeyFigureByName(ctx, models.KeyFigureReturn1D)
		testutil.AssertNoError(t, err)

		t.Run("insert_assigns_id", func(t *testing.T) {
			v, err := models.NewKeyFigureValue(0, day, 18096, models.RefTypePortfolio, portfolio, mv)
			testutil.AssertNoError(t, err)
			testutil.AssertNoError(t, g.InsertKeyFigureValue(ctx, v))
			if v.ID() == 0 {
				t.Fatal("expected insert to assign an id")
			}
		})

		t.Run("insert_duplicates", func(t *testing.T) {
			v, _ := models.NewKeyFigureValue(0, day, 18100, models.RefTypePortfolio, portfolio, mv)
			testutil.AssertNoError(t, g.InsertKeyFigureValue(ctx, v))

			got, err := g.ListKeyFigureValues(ctx, store.KeyFigureValueFilter{KeyFigure: mv, ReferenceID: portfolio.ID()})
			testutil.AssertNoError(t, err)
			if len(got) != 2 {
				t.Errorf("expected 2 rows after repeated insert, got %d", len(got))
			}
		})

		t.Run("upsert_updates_existing", func(t *testing.T) {
			v, _ := models.NewKeyFigureValue(0, day, 0.0125, models.RefTypePortfolio, portfolio, ret)
			testutil.AssertNoError(t, g.UpsertKeyFigureValue(ctx, v))
			firstID := v.ID()

			again, _ := models.NewKeyFigureValue(0, day, 0.0130, models.RefTypePortfolio, portfolio, ret)
			testutil.AssertNoError(t, g.UpsertKeyFigureValue(ctx, again))
			if again.ID() != firstID {
				t.Errorf("expected upsert to reuse id %d, got %d", firstID, again.ID())
			}

			got, err := g.ListKeyFigureValues(ctx, store.KeyFigureValueFilter{KeyFigure: ret})
			testutil.AssertNoError(t, err)
			if len(got) != 1 || got[0].Value() != 0.0130 {
				t.Errorf("expected a single updated value, got %v", got)
			}
		})

		t.Run("instrument_reference", func(t *testing.T) {
			v, _ := models.NewKeyFigureValue(0, day.Add(-1), 17160, models.RefTypeInstrument, aapl, mv)
			testutil.AssertNoError(t, g.InsertKeyFigureValue(ctx, v))

			got, err := g.ListKeyFigureValues(ctx, store.KeyFigureValueFilter{RefType: models.RefTypeInstrument})
			testutil.AssertNoError(t, err)
			if len(got) != 1 || !models.Same(got[0].Reference(), aapl) {
				t.Errorf("expected one value referencing AAPL, got %v", got)
			}
		})

		t.Run("date_filter", func(t *testing.T) {
			got, err := g.ListKeyFigureValues(ctx, store.KeyFigureValueFilter{From: day, To: day})
			testutil.AssertNoError(t, err)
			if len(got) != 3 {
				t.Errorf("expected 3 values on %s, got %d", day, len(got))
			}
		})

		t.Run("unpersisted_reference", func(t *testing.T) {
			draft, _ := models.NewPortfolio(0, "draft")
			v, _ := models.NewKeyFigureValue(0, day, 1, models.RefTypePortfolio, draft, mv)
			testutil.AssertAppError(t, g.InsertKeyFigureValue(ctx, v), "INVALID_INPUT")
		})

		t.Run("delete_all", func(t *testing.T) {
			n, err := g.DeleteKeyFigureValues(ctx)
			testutil.AssertNoError(t, err)
			if n != 4 {
				t.Errorf("expected 4 deleted rows, got %d", n)
			}
			got, err := g.ListKeyFigureValues(ctx, store.KeyFigureValueFilter{})
			testutil.AssertNoError(t, err)
			if len(got) != 0 {
				t.Errorf("expected no values after delete, got %d", len(got))
			}
		})
	})
}

func TestKeyFigureValueDanglingReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	if err := db.Create(&store.KeyFigureValueRow{
		KeyFigureDate:      date.MustParse("2024-05-31"),
		Value:              1,
		KeyFigureRefTypeID: int64(models.RefTypePortfolio),
		ReferenceEntityID:  42,
		KeyFigureID:        1,
	}).Error; err != nil {
		t.Fatalf("create key figure value: %v", err)
	}

	withGateway(t, db, func(g store.Gateway) {
		_, err := g.ListKeyFigureValues(context.Background(), store.KeyFigureValueFilter{})
		testutil.AssertAppError(t, err, "DATA_INTEGRITY")
	})
}
