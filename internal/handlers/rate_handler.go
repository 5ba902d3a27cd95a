package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/services"
)

type RateHandler struct {
	rateService *services.RateService
}

func NewRateHandler(rateService *services.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// @Summary List Rates
// @Tags Rates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /rates [get]
func (h *RateHandler) Index(c *gin.Context) {
	rates, err := h.rateService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// @Summary Create Rate
// @Description Adds the rate for CHINE or STAR (admin only)
// @Tags Rates
// @Accept json
// @Produce json
// @Param request body services.RateInput true "Rate"
// @Security BearerAuth
// @Success 201 {object} models.Rate
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rates [post]
func (h *RateHandler) Create(c *gin.Context) {
	var req services.RateInput
	if !bindBody(c, "rate", &req) {
		return
	}
	rate, err := h.rateService.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

// @Summary Update Rate
// @Description Changes a rate; the body carries its id (admin only)
// @Tags Rates
// @Accept json
// @Produce json
// @Param request body services.RateInput true "Rate"
// @Security BearerAuth
// @Success 200 {object} models.Rate
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rates [put]
func (h *RateHandler) Update(c *gin.Context) {
	var req services.RateInput
	if !bindBody(c, "rate", &req) {
		return
	}
	rate, err := h.rateService.Update(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// @Summary Delete Rate
// @Description Deletes a rate by path id or ?id= (admin only)
// @Tags Rates
// @Produce json
// @Param rate_id path int true "Rate ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /rates/{rate_id} [delete]
func (h *RateHandler) Delete(c *gin.Context) {
	raw := c.Param("rate_id")
	if raw == "" {
		raw = c.Query("id")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rate ID is required"})
		return
	}

	if err := h.rateService.Delete(c.Request.Context(), middleware.Actor(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary Print Rate History
// @Tags Print Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /print-settings [get]
func (h *RateHandler) PrintRates(c *gin.Context) {
	rates, err := h.rateService.PrintRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// @Summary Add Print Rate
// @Description Records a print rate effective from a date, today by default (admin only)
// @Tags Print Settings
// @Accept json
// @Produce json
// @Param request body services.PrintRateInput true "Rate"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /print-settings [post]
func (h *RateHandler) AddPrintRate(c *gin.Context) {
	var req services.PrintRateInput
	if !bindBody(c, "setting", &req) {
		return
	}
	setting, err := h.rateService.AddPrintRate(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rate": setting})
}

// @Summary Today's Print Rate
// @Tags Print Settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /print-settings/rate [get]
func (h *RateHandler) TodaysRate(c *gin.Context) {
	rate, err := h.rateService.TodaysRate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}
