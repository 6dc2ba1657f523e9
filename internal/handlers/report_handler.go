package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"riskreport/internal/date"
	apperrors "riskreport/internal/errors"
	"riskreport/internal/models"
	"riskreport/internal/report"
)

// ReportHandler runs risk reports.
type ReportHandler struct {
	reports report.Servicer
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports report.Servicer) *ReportHandler {
	return &ReportHandler{reports: reports, now: time.Now}
}

// RiskReportRequest represents the request payload for running a risk report.
// A missing date_to means the last business day before today, a missing
// date_from means January 1 of the year of date_to, and missing key_figures
// means every supported key figure.
type RiskReportRequest struct {
	Portfolio  string   `json:"portfolio" binding:"required,min=1,max=200" example:"EQ_US"`
	DateFrom   string   `json:"date_from" binding:"omitempty,iso_date" example:"2024-01-01"`
	DateTo     string   `json:"date_to" binding:"omitempty,iso_date" example:"2024-05-31"`
	KeyFigures []string `json:"key_figures"`
}

func (r RiskReportRequest) settings(today date.Date) (report.Settings, error) {
	s := report.Settings{PortfolioName: r.Portfolio, KeyFigures: r.KeyFigures}

	s.DateTo = date.LastBusinessDay(today)
	if r.DateTo != "" {
		d, err := date.Parse(r.DateTo)
		if err != nil {
			return s, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		s.DateTo = d
	}

	s.DateFrom = s.DateTo.StartOfYear()
	if r.DateFrom != "" {
		d, err := date.Parse(r.DateFrom)
		if err != nil {
			return s, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		s.DateFrom = d
	}

	if s.KeyFigures == nil {
		s.KeyFigures = slices.Clone(models.SupportedKeyFigures)
	}
	return s, nil
}

// CreateRiskReport handles running a risk report. Every computed key figure
// value is stored as a side effect.
// @Summary     Run risk report
// @Description Compute the requested key figures of a portfolio on date_to and its cumulative returns over the window
// @Tags        risk-reports
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body RiskReportRequest true "Report settings"
// @Success     200 {object} report.Report "Risk report"
// @Failure     400 {object} ErrorResponse "Invalid input or unsupported key figure"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     422 {object} ErrorResponse "Missing price or inconsistent data"
// @Failure     503 {object} ErrorResponse "API key not configured"
// @Router      /risk-reports [post]
func (h *ReportHandler) CreateRiskReport(c *gin.Context) {
	var req RiskReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := req.settings(date.FromTime(h.now()))
	if err != nil {
		respondWithError(c, err)
		return
	}

	rep, err := h.reports.Generate(c.Request.Context(), settings)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rep)
}
