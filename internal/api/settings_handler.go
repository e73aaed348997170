package api

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
	log             *logger.Logger
}

func NewSettingsHandler(settingsService service.SettingsService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, log: log}
}

// SettingsResponse adds the resolved theme for the caller's device scheme.
type SettingsResponse struct {
	domain.Settings
	IsDark   bool `json:"isDark"`
	IsMetric bool `json:"isMetric"`
}

// GetSettings godoc
// @Summary Get display settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Param systemDark query bool false "Whether the device is in dark mode"
// @Success 200 {object} SettingsResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	h.respond(c, func(ownerID string) (domain.Settings, error) {
		return h.settingsService.Get(c.Request.Context(), ownerID)
	})
}

// UpdateSettings godoc
// @Summary Replace display settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body domain.Settings true "Settings"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} gin.H "Invalid settings"
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req domain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.respond(c, func(ownerID string) (domain.Settings, error) {
		return h.settingsService.Update(c.Request.Context(), ownerID, req)
	})
}

// ToggleTheme godoc
// @Summary Flip between light and dark
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Param systemDark query bool false "Whether the device is in dark mode"
// @Success 200 {object} SettingsResponse
// @Router /settings/theme/toggle [post]
func (h *SettingsHandler) ToggleTheme(c *gin.Context) {
	systemDark, err := systemDarkFromQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(c, func(ownerID string) (domain.Settings, error) {
		return h.settingsService.ToggleTheme(c.Request.Context(), ownerID, systemDark)
	})
}

// ToggleMeasurementSystem godoc
// @Summary Flip between metric and imperial
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SettingsResponse
// @Router /settings/measurement/toggle [post]
func (h *SettingsHandler) ToggleMeasurementSystem(c *gin.Context) {
	h.respond(c, func(ownerID string) (domain.Settings, error) {
		return h.settingsService.ToggleMeasurementSystem(c.Request.Context(), ownerID)
	})
}

func (h *SettingsHandler) respond(c *gin.Context, op func(ownerID string) (domain.Settings, error)) {
	systemDark, err := systemDarkFromQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	settings, err := op(ownerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("Settings operation failed", "user_id", ownerID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Could not update settings")
		return
	}
	c.JSON(http.StatusOK, SettingsResponse{
		Settings: settings,
		IsDark:   settings.IsDark(systemDark),
		IsMetric: settings.IsMetric(),
	})
}

func systemDarkFromQuery(c *gin.Context) (bool, error) {
	raw := c.Query("systemDark")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("invalid systemDark value")
	}
	return v, nil
}
