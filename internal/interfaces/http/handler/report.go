package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/packsource/backend/internal/application/report"
	domainidentity "github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/interfaces/http/middleware"
)

// ReportHandler serves read-only aggregate reports
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns order, product and user aggregates
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	readers := middleware.RequireRoles(
		string(domainidentity.RoleGeneralManager),
		string(domainidentity.RolePlatform),
	)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", readers, h.Summary)
	}
}
