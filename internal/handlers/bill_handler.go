package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/services"
)

type BillHandler struct {
	billService   *services.BillService
	exportService *services.ExportService
}

func NewBillHandler(billService *services.BillService, exportService *services.ExportService) *BillHandler {
	return &BillHandler{billService: billService, exportService: exportService}
}

// @Summary List Bills
// @Description Lists visible bills, newest first, with client, project and payments
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Bill
// @Router /bills [get]
func (h *BillHandler) Index(c *gin.Context) {
	bills, err := h.billService.List(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// @Summary Get Bill
// @Tags Bills
// @Produce json
// @Param bill_id path int true "Bill ID"
// @Security BearerAuth
// @Success 200 {object} models.Bill
// @Failure 404 {object} map[string]string
// @Router /bills/{bill_id} [get]
func (h *BillHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "bill_id")
	if !ok {
		return
	}
	bill, err := h.billService.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// @Summary Create Bill
// @Description Issues a PENDING bill; outstanding defaults to the total
// @Tags Bills
// @Accept json
// @Produce json
// @Param request body services.CreateBillInput true "Bill"
// @Security BearerAuth
// @Success 201 {object} models.Bill
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req services.CreateBillInput
	if !bindBody(c, "bill", &req) {
		return
	}
	bill, err := h.billService.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// @Summary Override Bill Status
// @Description Sets a bill's status or paid amount directly (admin only). No payment is recorded.
// @Tags Bills
// @Accept json
// @Produce json
// @Param bill_id path int true "Bill ID"
// @Param request body services.OverrideInput true "Override"
// @Security BearerAuth
// @Success 200 {object} models.Bill
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bills/{bill_id}/status [put]
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "bill_id")
	if !ok {
		return
	}
	var req services.OverrideInput
	if !bindBody(c, "bill", &req) {
		return
	}
	bill, err := h.billService.OverrideStatus(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// @Summary Bill Invoice PDF
// @Tags Bills
// @Produce application/pdf
// @Param bill_id path int true "Bill ID"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /bills/{bill_id}/pdf [get]
func (h *BillHandler) PDF(c *gin.Context) {
	id, ok := paramID(c, "bill_id")
	if !ok {
		return
	}
	data, filename, err := h.exportService.BillPDF(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
