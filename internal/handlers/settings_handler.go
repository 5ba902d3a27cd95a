package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// @Summary Get Settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Settings
// @Router /settings [get]
func (h *SettingsHandler) Show(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Update Settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body services.SettingsInput true "Settings"
// @Security BearerAuth
// @Success 200 {object} models.Settings
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req services.SettingsInput
	if !bindBody(c, "settings", &req) {
		return
	}
	settings, err := h.settingsService.Update(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
