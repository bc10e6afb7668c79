package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/services"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ImportConfigHandlers struct {
	service *services.ImportConfigService
	logger  *logging.SafeLogger
}

func NewImportConfigHandlers(service *services.ImportConfigService, logger *logging.SafeLogger) *ImportConfigHandlers {
	return &ImportConfigHandlers{service: service, logger: logger}
}

// ListConfigs godoc
// @Summary List import configs
// @Description Lists the caller's saved import configs and the built-in presets
// @Tags import-configs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ImportConfigListResponse "Saved configs and presets"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import-configs [get]
func (h *ImportConfigHandlers) ListConfigs(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListImportConfigs")
	defer span.End()

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	resp, err := h.service.List(ctx, userID)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.operation": "list"})
		h.logger.Error("failed to list import configs", zap.String("owner_id", userID), zap.Error(err))
		writeError(c, err)
		return
	}
	span.SetAttributes(attribute.Int("configs.count", len(resp.Configs)))
	c.JSON(http.StatusOK, resp)
}

// ListPresets godoc
// @Summary List import config presets
// @Description Lists the read-only built-in import configs
// @Tags import-configs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ImportConfig "Presets"
// @Router /import-configs/presets [get]
func (h *ImportConfigHandlers) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, services.Presets())
}

// GetDefaultConfig godoc
// @Summary Get the default import config
// @Description Returns the caller's default config, or the smart import preset when none is set
// @Tags import-configs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ImportConfig "Default config"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import-configs/default [get]
func (h *ImportConfigHandlers) GetDefaultConfig(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetDefaultImportConfig")
	defer span.End()

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	cfg, err := h.service.GetDefault(ctx, userID)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.operation": "get_default"})
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetConfig godoc
// @Summary Get an import config
// @Tags import-configs
// @Produce json
// @Param config_id path string true "Config ID or preset ID"
// @Security BearerAuth
// @Success 200 {object} models.ImportConfig "Config"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Config not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import-configs/{config_id} [get]
func (h *ImportConfigHandlers) GetConfig(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetImportConfig")
	defer span.End()

	configID := c.Param("config_id")
	span.SetAttributes(attribute.String("config_id", configID))

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	cfg, err := h.service.Get(ctx, userID, configID)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.operation": "get"})
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// CreateConfig godoc
// @Summary Create an import config
// @Tags import-configs
// @Accept json
// @Produce json
// @Param data body models.ImportConfigRequest true "Config"
// @Security BearerAuth
// @Success 201 {object} models.ImportConfig "Config created"
// @Failure 400 {object} ErrorResponse "Invalid config"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Search scope not permitted"
// @Failure 409 {object} ErrorResponse "Name already in use"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import-configs [post]
func (h *ImportConfigHandlers) CreateConfig(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateImportConfig")
	defer span.End()

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ImportConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"error.type": "input_parsing"})
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if req.SearchScope.Has(models.SearchScopeAllUsers) && !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: models.ErrScopeNotPermitted.Error()})
		return
	}

	cfg, err := h.service.Create(ctx, userID, &req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.operation": "create"})
		h.logger.Warn("failed to create import config", zap.String("owner_id", userID), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cfg)
}

// UpdateConfig godoc
// @Summary Update an import config
// @Tags import-configs
// @Accept json
// @Produce json
// @Param config_id path string true "Config ID"
// @Param data body models.ImportConfigRequest true "Config"
// @Security BearerAuth
// @Success 200 {object} models.ImportConfig "Config updated"
// @Failure 400 {object} ErrorResponse "Invalid config"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Preset or scope not permitted"
// @Failure 404 {object} ErrorResponse "Config not found"
// @Failure 409 {object} ErrorResponse "Name already in use"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import-configs/{config_id} [put]
func (h *ImportConfigHandlers) UpdateConfig(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateImportConfig")
	defer span.End()

	configID := c.Param("config_id")
	span.SetAttributes(attribute.String("config_id", configID))

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ImportConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"error.type": "input_parsing"})
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if req.SearchScope.Has(models.SearchScopeAllUsers) && !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: models.ErrScopeNotPermitted.Error()})
		return
	}

	cfg, err := h.service.Update(ctx, userID, configID, &req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.operation": "update"})
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// DeleteConfig godoc
// @Summary Delete an import config
// @Tags import-configs
// @Param config_id path string true "Config ID"
// @Security BearerAuth
// @Success 204 "Config deleted"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Presets are read-only"
// @Failure 404 {object} ErrorResponse "Config not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import-configs/{config_id} [delete]
func (h *ImportConfigHandlers) DeleteConfig(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteImportConfig")
	defer span.End()

	configID := c.Param("config_id")
	span.SetAttributes(attribute.String("config_id", configID))

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, userID, configID); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.operation": "delete"})
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDefaultConfig godoc
// @Summary Set the default import config
// @Tags import-configs
// @Produce json
// @Param config_id path string true "Config ID"
// @Security BearerAuth
// @Success 200 {object} models.ImportConfig "New default config"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Presets are read-only"
// @Failure 404 {object} ErrorResponse "Config not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import-configs/{config_id}/default [post]
func (h *ImportConfigHandlers) SetDefaultConfig(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SetDefaultImportConfig")
	defer span.End()

	configID := c.Param("config_id")
	span.SetAttributes(attribute.String("config_id", configID))

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	cfg, err := h.service.SetDefault(ctx, userID, configID)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.operation": "set_default"})
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
