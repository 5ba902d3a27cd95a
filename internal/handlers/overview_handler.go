package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/services"
)

type OverviewHandler struct {
	overviewService *services.OverviewService
	exportService   *services.ExportService
}

func NewOverviewHandler(overviewService *services.OverviewService, exportService *services.ExportService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService, exportService: exportService}
}

// @Summary Client Overview
// @Description Every client with records, per-client summary and totals (admin only)
// @Tags Overview
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Overview
// @Failure 403 {object} map[string]string
// @Router /client-overview [get]
func (h *OverviewHandler) Index(c *gin.Context) {
	overview, err := h.overviewService.Get(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// @Summary Export Client Overview
// @Tags Overview
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /client-overview/export [get]
func (h *OverviewHandler) Export(c *gin.Context) {
	data, filename, contentType, err := h.exportService.Overview(c.Request.Context(), middleware.Actor(c), c.DefaultQuery("format", services.FormatCSV))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
