package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/observability"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Run outcomes reported in contact_import_runs_total
const (
	importRunSuccess  = "success"
	importRunAborted  = "aborted"
	importRunRejected = "rejected"
)

// ImportParams describes one import invocation
type ImportParams struct {
	GroupID string
	OwnerID string
	IsAdmin bool
	Config  *models.ImportConfig
	Rows    []models.ParsedRow
}

// ImportService runs batches of rows through normalization, matching and merging
type ImportService struct {
	store   ContactStore
	matcher *DuplicateMatcher
	engine  *MergeDecisionEngine
	phones  *utils.PhoneNormalizer
	logger  *logging.SafeLogger
	maxRows int
}

// NewImportService creates an import service over store.
// maxRows caps the batch size, zero means unbounded.
func NewImportService(store ContactStore, phones *utils.PhoneNormalizer, logger *logging.SafeLogger, maxRows int) *ImportService {
	if phones == nil {
		phones = utils.DefaultPhoneNormalizer
	}
	return &ImportService{
		store:   store,
		matcher: NewDuplicateMatcher(store, logger),
		engine:  NewMergeDecisionEngine(),
		phones:  phones,
		logger:  logger,
		maxRows: maxRows,
	}
}

// importRun is the mutable state of a single batch
type importRun struct {
	params  ImportParams
	cfg     *models.ImportConfig
	scope   MatchScope
	regions map[string]string
	result  *models.ImportResult
}

// ReadRows decodes an uploaded spreadsheet into rows
func (s *ImportService) ReadRows(r io.Reader, filename string) ([]models.ParsedRow, error) {
	table, err := utils.ReadSpreadsheet(r, filename)
	if err != nil {
		return nil, err
	}
	rows := utils.ParseRows(table)
	if len(rows) == 0 {
		return nil, models.ErrNoRows
	}
	return rows, nil
}

// Preview normalizes rows without touching the store
func (s *ImportService) Preview(rows []models.ParsedRow) *models.PreviewResponse {
	preview := &models.PreviewResponse{
		TotalRows: len(rows),
		Rows:      make([]models.PreviewRow, 0, len(rows)),
	}
	for _, row := range rows {
		preview.Rows = append(preview.Rows, models.PreviewRow{
			Row:    row,
			Name:   utils.ParseFullName(row.Name),
			Phones: s.phones.Parse(row.Phone),
		})
	}
	return preview
}

// Import processes the rows sequentially into the target group.
// Errors are returned only for rejections before the first row; row failures
// are reported inside the result.
func (s *ImportService) Import(ctx context.Context, params ImportParams) (*models.ImportResult, error) {
	start := time.Now()
	ctx, span, done := utils.TraceOperation(ctx, "import.run", map[string]interface{}{
		"import.group_id":  params.GroupID,
		"import.row_count": len(params.Rows),
	})
	defer done()

	run, err := s.prepare(ctx, params)
	if err != nil {
		observability.ImportRuns.WithLabelValues(importRunRejected).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("import rejected",
			zap.String("group_id", params.GroupID),
			zap.String("owner_id", params.OwnerID),
			zap.Error(err),
		)
		return nil, err
	}

	for _, row := range params.Rows {
		if aborted := s.processRow(ctx, run, row); aborted {
			break
		}
	}

	result := run.result
	outcome := importRunSuccess
	if !result.Success {
		outcome = importRunAborted
	}
	observability.ImportRuns.WithLabelValues(outcome).Inc()
	observability.ImportDuration.Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Bool("import.success", result.Success),
		attribute.Int("import.created", result.Statistics.Created),
		attribute.Int("import.updated", result.Statistics.Updated),
		attribute.Int("import.skipped", result.Statistics.Skipped),
		attribute.Int("import.errors", result.Statistics.Errors),
	)

	s.logger.Info("import finished",
		zap.String("group_id", result.GroupID),
		zap.String("owner_id", params.OwnerID),
		zap.String("config", run.cfg.Name),
		zap.Bool("success", result.Success),
		zap.Int("total", result.Statistics.Total),
		zap.Int("created", result.Statistics.Created),
		zap.Int("updated", result.Statistics.Updated),
		zap.Int("skipped", result.Statistics.Skipped),
		zap.Int("errors", result.Statistics.Errors),
		zap.Int("regions_created", result.Statistics.RegionsCreated),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// prepare runs every check that must reject the batch before any row is touched
func (s *ImportService) prepare(ctx context.Context, params ImportParams) (*importRun, error) {
	if params.Config == nil {
		return nil, fmt.Errorf("%w: config is required", models.ErrInvalidImportConfig)
	}
	cfg := *params.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.RequiresAdmin() && !params.IsAdmin {
		return nil, models.ErrScopeNotPermitted
	}

	if len(params.Rows) == 0 {
		return nil, models.ErrNoRows
	}
	if s.maxRows > 0 && len(params.Rows) > s.maxRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", models.ErrTooManyRows, len(params.Rows), s.maxRows)
	}

	group, err := s.store.GetGroup(ctx, params.GroupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != params.OwnerID && !params.IsAdmin {
		return nil, fmt.Errorf("%w: %s", models.ErrGroupNotFound, params.GroupID)
	}

	scope, err := s.matcher.ResolveScope(ctx, cfg.SearchScope, group.ID, params.OwnerID)
	if err != nil {
		return nil, err
	}

	return &importRun{
		params:  params,
		cfg:     &cfg,
		scope:   scope,
		regions: make(map[string]string),
		result: &models.ImportResult{
			Success:       true,
			ProcessedRows: []models.ProcessedRow{},
			Errors:        []models.ImportError{},
			GroupID:       group.ID,
			GroupName:     group.Name,
		},
	}, nil
}

// processRow runs one row to completion and applies the error policy.
// It reports whether the batch must stop.
func (s *ImportService) processRow(ctx context.Context, run *importRun, row models.ParsedRow) bool {
	ctx, span := utils.TraceImportStep(ctx, "row", row.RowNumber)
	defer span.End()

	processed, err := s.applyRow(ctx, run, row)
	result := run.result

	if err == nil {
		result.Statistics.Total++
		switch processed.Status {
		case models.RowStatusNew:
			result.Statistics.Created++
		case models.RowStatusUpdated:
			result.Statistics.Updated++
		default:
			result.Statistics.Skipped++
		}
		result.ProcessedRows = append(result.ProcessedRows, processed)
		observability.ImportRows.WithLabelValues(processed.Status).Inc()

		s.logger.Debug("import row processed",
			zap.Int("row", row.RowNumber),
			zap.String("status", processed.Status),
			zap.String("reason", processed.Reason),
			zap.String("name", utils.MaskName(models.StringValue(row.Name))),
			zap.String("phone", utils.MaskPhone(row.Phone)),
		)
		return false
	}

	span.RecordError(err)
	processed.Error = err.Error()
	rowErr := models.ImportError{
		RowNumber: row.RowNumber,
		Message:   err.Error(),
		Data: &models.ImportErrorData{
			Name:   models.StringValue(row.Name),
			Phone:  row.Phone,
			Region: row.Region,
		},
	}

	s.logger.Debug("import row failed",
		zap.Int("row", row.RowNumber),
		zap.String("policy", string(run.cfg.Validation.ErrorHandling)),
		zap.String("name", utils.MaskName(models.StringValue(row.Name))),
		zap.String("phone", utils.MaskPhone(row.Phone)),
		zap.Error(err),
	)

	switch run.cfg.Validation.ErrorHandling {
	case models.ErrorHandlingStop:
		span.SetStatus(codes.Error, "import stopped")
		result.Success = false
		result.Errors = append(result.Errors, rowErr)
		observability.ImportRows.WithLabelValues(models.RowStatusError).Inc()
		return true
	case models.ErrorHandlingWarn:
		processed.Status = models.RowStatusError
		result.Statistics.Total++
		result.Statistics.Errors++
		result.ProcessedRows = append(result.ProcessedRows, processed)
		result.Errors = append(result.Errors, rowErr)
		observability.ImportRows.WithLabelValues(models.RowStatusError).Inc()
		return false
	default:
		processed.Status = models.RowStatusSkipped
		result.Statistics.Total++
		result.Statistics.Skipped++
		result.ProcessedRows = append(result.ProcessedRows, processed)
		observability.ImportRows.WithLabelValues(models.RowStatusSkipped).Inc()
		return false
	}
}

// applyRow validates, matches, decides and mutates the store for one row
func (s *ImportService) applyRow(ctx context.Context, run *importRun, row models.ParsedRow) (models.ProcessedRow, error) {
	processed := models.ProcessedRow{Row: row}
	cfg := run.cfg

	if validation := utils.ValidateRow(row, cfg.Validation); !validation.IsValid {
		return processed, errors.New(validation.Message())
	}

	processed.Name = utils.ParseFullName(row.Name)
	processed.Phones = s.phones.Parse(row.Phone)

	if region := utils.SanitizeString(row.Region); region != "" {
		regionID, err := s.resolveRegion(ctx, run, region)
		if err != nil {
			return processed, err
		}
		processed.RegionID = regionID
	}

	storePhones := storedPhones(processed.Phones, cfg.Additional.SkipInvalidPhones)

	match, err := s.matcher.Match(ctx, run.scope, cfg.SearchScope.MatchCriteria, storePhones, processed.Name)
	if err != nil {
		return processed, err
	}

	decision := s.engine.Decide(cfg, MergeInput{
		Match:    match,
		Name:     processed.Name,
		Phones:   storePhones,
		RegionID: processed.RegionID,
		Status:   resolveStatus(cfg.Additional.NewClientStatus, row.Status),
		GroupID:  run.result.GroupID,
	})
	processed.Reason = decision.Strategy.Reason

	switch decision.Strategy.Action {
	case models.StrategyCreate:
		contact := &models.Contact{
			OwnerID:    run.params.OwnerID,
			LastName:   processed.Name.LastName,
			FirstName:  processed.Name.FirstName,
			MiddleName: processed.Name.MiddleName,
			Phones:     storePhones,
			RegionID:   processed.RegionID,
			GroupIDs:   []string{run.result.GroupID},
			Status:     resolveStatus(cfg.Additional.NewClientStatus, row.Status),
		}
		if err := s.store.CreateContact(ctx, contact); err != nil {
			return processed, err
		}
		processed.Status = models.RowStatusNew
		processed.ClientID = contact.ID
	case models.StrategyUpdate:
		updated, err := s.store.UpdateContact(ctx, decision.Strategy.ExistingClientID, decision.Changes)
		if err != nil {
			return processed, err
		}
		processed.Status = models.RowStatusUpdated
		processed.ClientID = updated.ID
	case models.StrategySkip:
		processed.Status = models.RowStatusSkipped
		processed.ClientID = decision.Strategy.ExistingClientID
	}

	return processed, nil
}

// resolveRegion finds a region by name or creates it, caching ids per batch
func (s *ImportService) resolveRegion(ctx context.Context, run *importRun, name string) (string, error) {
	key := utils.RegionNameKey(name)
	if id, ok := run.regions[key]; ok {
		return id, nil
	}

	region, err := s.store.FindRegionByName(ctx, name)
	if errors.Is(err, models.ErrRegionNotFound) {
		var inserted bool
		region, inserted, err = s.store.CreateRegion(ctx, name)
		if err != nil {
			return "", err
		}
		if inserted {
			run.result.Statistics.RegionsCreated++
			observability.RegionsCreated.Inc()
			s.logger.Info("region created by import", zap.String("region", region.Name), zap.String("region_id", region.ID))
		}
	} else if err != nil {
		return "", err
	}

	run.regions[key] = region.ID
	return region.ID, nil
}

// storedPhones returns the distinct normalized phones kept on the contact; the
// same set is used for matching so a repeated number is never created twice
func storedPhones(phones []models.ParsedPhone, skipInvalid bool) []string {
	stored := []string{}
	for _, p := range phones {
		if p.Normalized == "" || (skipInvalid && !p.IsValid) {
			continue
		}
		if !containsString(stored, p.Normalized) {
			stored = append(stored, p.Normalized)
		}
	}
	return stored
}

// resolveStatus picks the status of a new contact
func resolveStatus(policy models.NewClientStatus, fromFile string) string {
	switch policy {
	case models.NewClientStatusOld:
		return models.ContactStatusOld
	case models.NewClientStatusFromFile:
		if strings.EqualFold(strings.TrimSpace(fromFile), models.ContactStatusOld) {
			return models.ContactStatusOld
		}
		return models.ContactStatusNew
	default:
		return models.ContactStatusNew
	}
}
