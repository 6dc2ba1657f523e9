package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"riskreport/internal/date"
	apperrors "riskreport/internal/errors"
	"riskreport/internal/models"
	"riskreport/internal/pagination"
	"riskreport/internal/services"
)

// CatalogHandler serves the stored portfolios, instruments, prices and key
// figure values.
type CatalogHandler struct {
	catalog services.CatalogServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog services.CatalogServicer) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// DateRangeQuery holds optional inclusive date bounds.
type DateRangeQuery struct {
	From string `form:"from" binding:"omitempty,iso_date"`
	To   string `form:"to" binding:"omitempty,iso_date"`
}

// KeyFigureValueListQuery holds the filters for listing key figure values.
type KeyFigureValueListQuery struct {
	DateRangeQuery
	pagination.PageRequest
	KeyFigure   string `form:"key_figure"`
	PortfolioID int64  `form:"portfolio_id" binding:"omitempty,min=1"`
	RefType     string `form:"ref_type" binding:"omitempty,ref_type"`
	ReferenceID int64  `form:"reference_id" binding:"omitempty,min=1"`
}

// bounds parses the range; binding has already checked the format.
func (q DateRangeQuery) bounds() (from, to date.Date, err error) {
	if q.From != "" {
		if from, err = date.Parse(q.From); err != nil {
			return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
	}
	if q.To != "" {
		if to, err = date.Parse(q.To); err != nil {
			return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must not be after to")
	}
	return from, to, nil
}

// ListPortfolios handles listing all portfolios.
// @Summary     List portfolios
// @Description Get all portfolios
// @Tags        portfolios
// @Produce     json
// @Success     200 {object} map[string][]services.PortfolioView "Portfolios"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios [get]
func (h *CatalogHandler) ListPortfolios(c *gin.Context) {
	portfolios, err := h.catalog.ListPortfolios(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}

// ListPositions handles listing the positions of a portfolio.
// @Summary     List positions
// @Description Get the positions of a portfolio, optionally only those held on a date
// @Tags        portfolios
// @Produce     json
// @Param       id   path  int    true  "Portfolio ID"
// @Param       date query string false "Holding date (YYYY-MM-DD)"
// @Success     200 {object} map[string][]services.PositionView "Positions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     422 {object} ErrorResponse "Inconsistent stored data"
// @Router      /portfolios/{id}/positions [get]
func (h *CatalogHandler) ListPositions(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	on, err := parseQueryDate(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	positions, err := h.catalog.ListPositions(c.Request.Context(), id, on)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

// ListInstruments handles listing all instruments.
// @Summary     List instruments
// @Description Get all instruments with their type
// @Tags        instruments
// @Produce     json
// @Success     200 {object} map[string][]services.InstrumentView "Instruments"
// @Failure     422 {object} ErrorResponse "Unknown instrument type"
// @Router      /instruments [get]
func (h *CatalogHandler) ListInstruments(c *gin.Context) {
	instruments, err := h.catalog.ListInstruments(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"instruments": instruments})
}

// ListPrices handles retrieving the price history of an instrument.
// @Summary     Get price history
// @Description Get prices of an instrument within an optional date window (paginated)
// @Tags        instruments
// @Produce     json
// @Param       id        path  int    true  "Instrument ID"
// @Param       from      query string false "First date (YYYY-MM-DD)"
// @Param       to        query string false "Last date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.PriceView] "Paginated prices"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Instrument not found"
// @Router      /instruments/{id}/prices [get]
func (h *CatalogHandler) ListPrices(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var window DateRangeQuery
	if err := c.ShouldBindQuery(&window); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	from, to, err := window.bounds()
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.catalog.ListPrices(c.Request.Context(), id, from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListKeyFigures handles listing all key figures.
// @Summary     List key figures
// @Description Get all key figures and whether each can be computed
// @Tags        key-figures
// @Produce     json
// @Success     200 {object} map[string][]services.KeyFigureView "Key figures"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /key-figures [get]
func (h *CatalogHandler) ListKeyFigures(c *gin.Context) {
	figures, err := h.catalog.ListKeyFigures(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key_figures": figures})
}

// ListKeyFigureRefTypes handles listing the key figure reference types.
// @Summary     List key figure ref types
// @Description Get the entity kinds a key figure value can be computed against
// @Tags        key-figures
// @Produce     json
// @Success     200 {object} map[string][]services.RefTypeView "Ref types"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /key-figure-ref-types [get]
func (h *CatalogHandler) ListKeyFigureRefTypes(c *gin.Context) {
	refTypes, err := h.catalog.ListKeyFigureRefTypes(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref_types": refTypes})
}

// ListKeyFigureValues handles listing stored key figure values.
// @Summary     List key figure values
// @Description Get stored key figure values, filtered by key figure, reference and date (paginated)
// @Tags        key-figures
// @Produce     json
// @Param       key_figure   query string false "Key figure name"
// @Param       portfolio_id query int    false "Portfolio ID"
// @Param       ref_type     query string false "Reference type (Instrument, Position, Portfolio)"
// @Param       reference_id query int    false "Referenced entity ID"
// @Param       from         query string false "First date (YYYY-MM-DD)"
// @Param       to           query string false "Last date (YYYY-MM-DD)"
// @Param       page         query int    false "Page number (default 1)"
// @Param       page_size    query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.KeyFigureValueView] "Paginated key figure values"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Key figure not found"
// @Router      /key-figure-values [get]
func (h *CatalogHandler) ListKeyFigureValues(c *gin.Context) {
	var q KeyFigureValueListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	from, to, err := q.bounds()
	if err != nil {
		respondWithError(c, err)
		return
	}

	query := services.KeyFigureValueQuery{
		KeyFigure:   q.KeyFigure,
		PortfolioID: q.PortfolioID,
		ReferenceID: q.ReferenceID,
		From:        from,
		To:          to,
	}
	if q.RefType != "" {
		query.RefType, _ = models.ParseRefType(q.RefType)
	}

	result, err := h.catalog.ListKeyFigureValues(c.Request.Context(), query, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PurgeKeyFigureValues handles deleting every stored key figure value.
// @Summary     Purge key figure values
// @Description Delete all stored key figure values
// @Tags        key-figures
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]int64 "Deleted count"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Failure     503 {object} ErrorResponse "API key not configured"
// @Router      /key-figure-values [delete]
func (h *CatalogHandler) PurgeKeyFigureValues(c *gin.Context) {
	deleted, err := h.catalog.PurgeKeyFigureValues(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
