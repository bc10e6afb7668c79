package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/observability"
	"github.com/prefeitura-rio/app-contacts/internal/redisclient"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const importConfigCachePrefix = "import_config:"

// ImportConfigService manages saved import configs and the built-in presets
type ImportConfigService struct {
	repo     ImportConfigRepository
	cache    *redisclient.Client
	cacheTTL time.Duration
	logger   *logging.SafeLogger
}

// NewImportConfigService creates the service. cache may be nil.
func NewImportConfigService(repo ImportConfigRepository, cache *redisclient.Client, cacheTTL time.Duration, logger *logging.SafeLogger) *ImportConfigService {
	return &ImportConfigService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// List returns the owner's saved configs along with the presets
func (s *ImportConfigService) List(ctx context.Context, ownerID string) (*models.ImportConfigListResponse, error) {
	configs, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &models.ImportConfigListResponse{
		Configs: configs,
		Presets: Presets(),
	}, nil
}

// Get returns a preset or one of the owner's saved configs
func (s *ImportConfigService) Get(ctx context.Context, ownerID, id string) (*models.ImportConfig, error) {
	if IsPresetID(id) {
		preset, ok := GetPreset(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
		}
		return preset, nil
	}

	cfg := s.getCached(ctx, id)
	if cfg == nil {
		var err error
		cfg, err = s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		s.setCached(ctx, cfg)
	}

	if cfg.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
	}
	return cfg, nil
}

// Create saves a new config for the owner
func (s *ImportConfigService) Create(ctx context.Context, ownerID string, req *models.ImportConfigRequest) (*models.ImportConfig, error) {
	cfg := req.ToConfig(ownerID)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	makeDefault := cfg.IsDefault
	cfg.IsDefault = false
	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, err
	}

	if makeDefault {
		if err := s.repo.SetDefault(ctx, ownerID, cfg.ID); err != nil {
			return nil, err
		}
		cfg.IsDefault = true
		s.invalidateOwner(ctx, ownerID)
	}

	s.logger.Info("import config created",
		zap.String("config_id", cfg.ID),
		zap.String("owner_id", ownerID),
		zap.String("name", cfg.Name),
	)
	return cfg, nil
}

// Update replaces the settings of a saved config
func (s *ImportConfigService) Update(ctx context.Context, ownerID, id string, req *models.ImportConfigRequest) (*models.ImportConfig, error) {
	if IsPresetID(id) {
		return nil, models.ErrPresetReadOnly
	}

	existing, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	cfg := req.ToConfig(ownerID)
	cfg.ID = existing.ID
	cfg.CreatedAt = existing.CreatedAt
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	makeDefault := cfg.IsDefault && !existing.IsDefault
	cfg.IsDefault = cfg.IsDefault && existing.IsDefault

	if err := s.repo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	if makeDefault {
		if err := s.repo.SetDefault(ctx, ownerID, id); err != nil {
			return nil, err
		}
		cfg.IsDefault = true
		s.invalidateOwner(ctx, ownerID)
	}

	s.logger.Info("import config updated", zap.String("config_id", id), zap.String("owner_id", ownerID))
	return cfg, nil
}

// Delete removes a saved config
func (s *ImportConfigService) Delete(ctx context.Context, ownerID, id string) error {
	if IsPresetID(id) {
		return models.ErrPresetReadOnly
	}
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.logger.Info("import config deleted", zap.String("config_id", id), zap.String("owner_id", ownerID))
	return nil
}

// SetDefault marks a saved config as the owner's default
func (s *ImportConfigService) SetDefault(ctx context.Context, ownerID, id string) (*models.ImportConfig, error) {
	if IsPresetID(id) {
		return nil, models.ErrPresetReadOnly
	}
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}
	if err := s.repo.SetDefault(ctx, ownerID, id); err != nil {
		return nil, err
	}
	s.invalidateOwner(ctx, ownerID)

	return s.Get(ctx, ownerID, id)
}

// GetDefault returns the owner's default config, falling back to the smart import preset
func (s *ImportConfigService) GetDefault(ctx context.Context, ownerID string) (*models.ImportConfig, error) {
	cfg, err := s.repo.GetDefault(ctx, ownerID)
	if errors.Is(err, models.ErrConfigNotFound) {
		preset, _ := GetPreset(DefaultPresetID)
		return preset, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve picks the config of an import: inline first, then by id, then the default
func (s *ImportConfigService) Resolve(ctx context.Context, ownerID, configID string, inline *models.ImportConfig) (*models.ImportConfig, error) {
	if inline != nil {
		cfg := *inline
		if cfg.Name == "" {
			cfg.Name = "inline"
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if configID != "" {
		return s.Get(ctx, ownerID, configID)
	}
	return s.GetDefault(ctx, ownerID)
}

func (s *ImportConfigService) getCached(ctx context.Context, id string) *models.ImportConfig {
	if s.cache == nil {
		return nil
	}

	ctx, _, done := utils.TraceCacheOperation(ctx, "get", importConfigCachePrefix+id)
	defer done()

	data, err := s.cache.Get(ctx, importConfigCachePrefix+id).Result()
	if err != nil || data == "" {
		observability.CacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	var cfg models.ImportConfig
	if err := bson.UnmarshalExtJSON([]byte(data), false, &cfg); err != nil {
		s.logger.Warn("failed to unmarshal cached import config", zap.Error(err), zap.String("config_id", id))
		observability.CacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	observability.CacheHits.WithLabelValues("hit").Inc()
	return &cfg
}

func (s *ImportConfigService) setCached(ctx context.Context, cfg *models.ImportConfig) {
	if s.cache == nil {
		return
	}

	data, err := bson.MarshalExtJSON(cfg, false, false)
	if err != nil {
		s.logger.Warn("failed to marshal import config for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, importConfigCachePrefix+cfg.ID, string(data), s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache import config", zap.Error(err), zap.String("config_id", cfg.ID))
	}
}

func (s *ImportConfigService) invalidate(ctx context.Context, ids ...string) {
	if s.cache == nil || len(ids) == 0 {
		return
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, importConfigCachePrefix+id)
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("failed to invalidate import config cache", zap.Error(err), zap.Strings("keys", keys))
	}
}

// invalidateOwner drops every cached config of the owner, since a default change touches several
func (s *ImportConfigService) invalidateOwner(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}

	configs, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.logger.Warn("failed to list import configs for cache invalidation", zap.Error(err))
		return
	}
	ids := make([]string, 0, len(configs))
	for _, c := range configs {
		ids = append(ids, c.ID)
	}
	s.invalidate(ctx, ids...)
}
