package handlers

import (
	"github.com/gin-gonic/gin"

	"riskreport/internal/middleware"
)

// RegisterRoutes mounts the API on v1. Routes that compute or delete key
// figure values require apiKey in the X-API-Key header.
func RegisterRoutes(v1 *gin.RouterGroup, catalog *CatalogHandler, reports *ReportHandler, apiKey string) {
	v1.GET("/portfolios", catalog.ListPortfolios)
	v1.GET("/portfolios/:id/positions", catalog.ListPositions)
	v1.GET("/instruments", catalog.ListInstruments)
	v1.GET("/instruments/:id/prices", catalog.ListPrices)
	v1.GET("/key-figures", catalog.ListKeyFigures)
	v1.GET("/key-figure-ref-types", catalog.ListKeyFigureRefTypes)
	v1.GET("/key-figure-values", catalog.ListKeyFigureValues)

	writes := v1.Group("", middleware.APIKeyAuth(apiKey))
	writes.POST("/risk-reports", reports.CreateRiskReport)
	writes.DELETE("/key-figure-values", catalog.PurgeKeyFigureValues)
}
