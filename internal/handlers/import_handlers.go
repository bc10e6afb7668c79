package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/services"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ImportHandlers struct {
	imports     *services.ImportService
	configs     *services.ImportConfigService
	limiter     *services.RateLimiter
	maxFileSize int64
	logger      *logging.SafeLogger
}

func NewImportHandlers(imports *services.ImportService, configs *services.ImportConfigService, limiter *services.RateLimiter, maxFileSize int64, logger *logging.SafeLogger) *ImportHandlers {
	return &ImportHandlers{
		imports:     imports,
		configs:     configs,
		limiter:     limiter,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// importInput is the decoded body of an import request
type importInput struct {
	configID string
	inline   *models.ImportConfig
	rows     []models.ParsedRow
}

// ImportContacts godoc
// @Summary Import contacts into a group
// @Description Imports a spreadsheet (.xlsx or .csv) or a JSON row list into the group, deduplicating
// @Description against existing contacts according to the import config. Row failures are reported in
// @Description the result; only pre-batch rejections produce an error status.
// @Tags import
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param group_id path string true "Target group ID"
// @Param file formData file false "Spreadsheet with name, phone, region and optional status columns"
// @Param config_id formData string false "Saved config or preset ID"
// @Param config formData string false "Inline config as JSON"
// @Param data body models.ImportRequest false "Inline rows"
// @Security BearerAuth
// @Success 200 {object} models.ImportResult "Import finished"
// @Failure 400 {object} ErrorResponse "Invalid config or input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Search scope not permitted"
// @Failure 404 {object} ErrorResponse "Group or config not found"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 429 {object} ErrorResponse "Too many imports"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /groups/{group_id}/import [post]
func (h *ImportHandlers) ImportContacts(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ImportContacts")
	defer span.End()

	groupID := c.Param("group_id")
	span.SetAttributes(
		attribute.String("operation", "import_contacts"),
		attribute.String("group_id", groupID),
	)

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	if !h.limiter.Allow(ctx, userID) {
		span.SetAttributes(attribute.Bool("rate_limited", true))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many imports, try again later"})
		return
	}

	input, err := h.readImportInput(c)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"error.type": "input_parsing"})
		h.logger.Warn("invalid import request", zap.String("group_id", groupID), zap.Error(err))
		if errorStatus(err) == http.StatusInternalServerError {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	cfg, err := h.configs.Resolve(ctx, userID, input.configID, input.inline)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"error.type": "config_resolution"})
		writeError(c, err)
		return
	}
	span.SetAttributes(attribute.String("config.name", cfg.Name))

	// The run finishes even if the client disconnects
	result, err := h.imports.Import(context.WithoutCancel(ctx), services.ImportParams{
		GroupID: groupID,
		OwnerID: userID,
		IsAdmin: isAdmin,
		Config:  cfg,
		Rows:    input.rows,
	})
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"error.type": "import_rejected"})
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)

	h.logger.Debug("ImportContacts completed",
		zap.String("group_id", groupID),
		zap.Int("rows", len(input.rows)),
		zap.Bool("success", result.Success),
		zap.Duration("total_duration", time.Since(startTime)))
}

// PreviewImport godoc
// @Summary Preview an import file
// @Description Parses a spreadsheet and normalizes names and phones without touching any contact
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet (.xlsx or .csv)"
// @Security BearerAuth
// @Success 200 {object} models.PreviewResponse "Parsed rows"
// @Failure 400 {object} ErrorResponse "Invalid file"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 413 {object} ErrorResponse "File too large"
// @Router /import/preview [post]
func (h *ImportHandlers) PreviewImport(c *gin.Context) {
	_, span := otel.Tracer("").Start(c.Request.Context(), "PreviewImport")
	defer span.End()

	if _, _, ok := currentUser(c); !ok {
		return
	}

	rows, err := h.readFileRows(c)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"error.type": "input_parsing"})
		if errorStatus(err) == http.StatusInternalServerError {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("rows.count", len(rows)))
	c.JSON(http.StatusOK, h.imports.Preview(rows))
}

func (h *ImportHandlers) readImportInput(c *gin.Context) (*importInput, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		rows, err := h.readFileRows(c)
		if err != nil {
			return nil, err
		}
		input := &importInput{configID: c.PostForm("config_id"), rows: rows}
		if raw := c.PostForm("config"); raw != "" {
			var cfg models.ImportConfig
			if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
				return nil, fmt.Errorf("%w: %v", models.ErrInvalidImportConfig, err)
			}
			input.inline = &cfg
		}
		return input, nil
	}

	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	for i := range req.Rows {
		if req.Rows[i].RowNumber == 0 {
			req.Rows[i].RowNumber = i + 1
		}
	}
	return &importInput{configID: req.ConfigID, inline: req.Config, rows: req.Rows}, nil
}

func (h *ImportHandlers) readFileRows(c *gin.Context) ([]models.ParsedRow, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required: %w", err)
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", models.ErrFileTooLarge, fileHeader.Size)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	return h.imports.ReadRows(file, fileHeader.Filename)
}
