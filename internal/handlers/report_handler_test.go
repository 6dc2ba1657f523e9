package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"riskreport/internal/date"
	apperrors "riskreport/internal/errors"
	"riskreport/internal/models"
	"riskreport/internal/report"
	"riskreport/internal/risk"
)

// --- mock report service ---

type mockReportService struct {
	generateFn func(settings report.Settings) (*report.Report, error)
	got        *report.Settings
}

var _ report.Servicer = (*mockReportService)(nil)

func (m *mockReportService) Generate(_ context.Context, settings report.Settings) (*report.Report, error) {
	m.got = &settings
	if m.generateFn != nil {
		return m.generateFn(settings)
	}
	return &report.Report{
		Portfolio:  settings.PortfolioName,
		DateFrom:   settings.DateFrom,
		DateTo:     settings.DateTo,
		KeyFigures: map[string]float64{models.KeyFigureMarketValue: 19096},
		CumulativeReturns: []risk.CumulativeReturn{
			{Date: settings.DateFrom, Value: 0.01},
		},
	}, nil
}

// --- router setup ---

// wednesday is 2024-06-05; the last business day before it is 2024-06-04.
var wednesday = time.Date(2024, time.June, 5, 9, 30, 0, 0, time.UTC)

func setupReportRouter(svc report.Servicer) *gin.Engine {
	h := NewReportHandler(svc)
	h.now = func() time.Time { return wednesday }
	r := gin.New()
	r.POST("/risk-reports", h.CreateRiskReport)
	return r
}

// --- tests ---

func TestReportHandler_CreateRiskReport(t *testing.T) {
	t.Run("returns_200_with_report", func(t *testing.T) {
		svc := &mockReportService{}
		r := setupReportRouter(svc)

		rec := doRequest(r, http.MethodPost, "/risk-reports",
			`{"portfolio":"EQ_US","date_from":"2024-01-01","date_to":"2024-05-31","key_figures":["Market value"]}`)
		assertStatus(t, rec, http.StatusOK)

		s := svc.got
		if s.PortfolioName != "EQ_US" || !s.DateFrom.Equal(date.MustParse("2024-01-01")) || !s.DateTo.Equal(date.MustParse("2024-05-31")) {
			t.Errorf("unexpected settings %+v", s)
		}
		if len(s.KeyFigures) != 1 || s.KeyFigures[0] != models.KeyFigureMarketValue {
			t.Errorf("unexpected key figures %v", s.KeyFigures)
		}

		body := parseJSON(t, rec)
		if body["portfolio"] != "EQ_US" || body["date_to"] != "2024-05-31" {
			t.Errorf("unexpected body %v", body)
		}
		if body["key_figures"].(map[string]any)[models.KeyFigureMarketValue] != 19096.0 {
			t.Errorf("unexpected key figures %v", body["key_figures"])
		}
		first := body["cumulative_returns"].([]any)[0].([]any)
		if first[0] != "2024-01-01" || first[1] != 0.01 {
			t.Errorf("expected [date, value] pairs, got %v", first)
		}
	})

	t.Run("defaults_dates_and_figures", func(t *testing.T) {
		svc := &mockReportService{}
		r := setupReportRouter(svc)

		rec := doRequest(r, http.MethodPost, "/risk-reports", `{"portfolio":"EQ_US"}`)
		assertStatus(t, rec, http.StatusOK)

		s := svc.got
		if !s.DateTo.Equal(date.MustParse("2024-06-04")) {
			t.Errorf("expected date_to 2024-06-04, got %s", s.DateTo)
		}
		if !s.DateFrom.Equal(date.MustParse("2024-01-01")) {
			t.Errorf("expected date_from 2024-01-01, got %s", s.DateFrom)
		}
		if len(s.KeyFigures) != len(models.SupportedKeyFigures) {
			t.Fatalf("expected all key figures, got %v", s.KeyFigures)
		}
		s.KeyFigures[0] = "changed"
		if models.SupportedKeyFigures[0] != models.KeyFigureMarketValue {
			t.Errorf("defaulted key figures share storage with the supported list")
		}
	})

	t.Run("empty_key_figures_kept_empty", func(t *testing.T) {
		svc := &mockReportService{}
		r := setupReportRouter(svc)

		rec := doRequest(r, http.MethodPost, "/risk-reports", `{"portfolio":"EQ_US","key_figures":[]}`)
		assertStatus(t, rec, http.StatusOK)
		if len(svc.got.KeyFigures) != 0 {
			t.Errorf("expected no key figures, got %v", svc.got.KeyFigures)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing_portfolio", `{"date_to":"2024-05-31"}`},
		{"bad_date", `{"portfolio":"EQ_US","date_to":"05/31/2024"}`},
		{"malformed_json", `{"portfolio":`},
	}
	for _, tt := range tests {
		t.Run("returns_400_"+tt.name, func(t *testing.T) {
			svc := &mockReportService{}
			rec := doRequest(setupReportRouter(svc), http.MethodPost, "/risk-reports", tt.body)
			assertStatus(t, rec, http.StatusBadRequest)
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
			if svc.got != nil {
				t.Error("expected service not to be called")
			}
		})
	}

	errTests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unsupported_key_figure", apperrors.WithMessage(apperrors.ErrUnsupportedKeyFigure, "Key figure Sharpe ratio is not supported."), http.StatusBadRequest, "UNSUPPORTED_KEY_FIGURE"},
		{"portfolio_not_found", apperrors.ErrPortfolioNotFound, http.StatusNotFound, "PORTFOLIO_NOT_FOUND"},
		{"missing_price", apperrors.ErrMissingPrice, http.StatusUnprocessableEntity, "MISSING_PRICE"},
		{"zero_market_value", apperrors.ErrZeroMarketValue, http.StatusUnprocessableEntity, "ZERO_MARKET_VALUE"},
	}
	for _, tt := range errTests {
		t.Run("maps_"+tt.name, func(t *testing.T) {
			svc := &mockReportService{generateFn: func(report.Settings) (*report.Report, error) { return nil, tt.err }}
			rec := doRequest(setupReportRouter(svc), http.MethodPost, "/risk-reports", `{"portfolio":"EQ_US"}`)
			assertStatus(t, rec, tt.status)
			assertErrorCode(t, parseJSON(t, rec), tt.code)
		})
	}
}
