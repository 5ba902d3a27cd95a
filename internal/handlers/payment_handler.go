package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// @Summary List Payments
// @Description Lists visible payments by payment date, newest first
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Payment
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// @Summary Record Payment
// @Description Records a payment and settles the bill in one transaction
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body services.RecordPaymentInput true "Payment"
// @Security BearerAuth
// @Success 201 {object} services.SettlementResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req services.RecordPaymentInput
	if !bindBody(c, "payment", &req) {
		return
	}
	result, err := h.paymentService.Record(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
