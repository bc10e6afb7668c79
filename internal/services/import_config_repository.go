package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ImportConfigRepository persists user-saved import configs
type ImportConfigRepository interface {
	List(ctx context.Context, ownerID string) ([]models.ImportConfig, error)
	Get(ctx context.Context, id string) (*models.ImportConfig, error)
	Create(ctx context.Context, cfg *models.ImportConfig) error
	Update(ctx context.Context, cfg *models.ImportConfig) error
	Delete(ctx context.Context, ownerID, id string) error
	SetDefault(ctx context.Context, ownerID, id string) error
	GetDefault(ctx context.Context, ownerID string) (*models.ImportConfig, error)
}

// MongoImportConfigRepository stores configs in the import config collection
type MongoImportConfigRepository struct {
	collection *mongo.Collection
	logger     *logging.SafeLogger
}

// NewMongoImportConfigRepository creates a repository over db
func NewMongoImportConfigRepository(db *mongo.Database, logger *logging.SafeLogger) *MongoImportConfigRepository {
	return &MongoImportConfigRepository{
		collection: db.Collection(config.AppConfig.ImportConfigCollection),
		logger:     logger,
	}
}

func (r *MongoImportConfigRepository) List(ctx context.Context, ownerID string) ([]models.ImportConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	configs := []models.ImportConfig{}
	if err := utils.FindAllWithTimeout(ctx, r.collection, bson.M{"owner_id": ownerID}, opts, &configs, utils.DefaultQueryTimeout); err != nil {
		r.logger.Error("failed to list import configs", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list import configs: %w", err)
	}
	return configs, nil
}

func (r *MongoImportConfigRepository) Get(ctx context.Context, id string) (*models.ImportConfig, error) {
	var cfg models.ImportConfig
	if err := utils.FindOneWithTimeout(ctx, r.collection, bson.M{"_id": id}, &cfg, utils.DefaultQueryTimeout); err != nil {
		if utils.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
		}
		return nil, fmt.Errorf("failed to get import config: %w", err)
	}
	return &cfg, nil
}

func (r *MongoImportConfigRepository) Create(ctx context.Context, cfg *models.ImportConfig) error {
	cfg.ID = primitive.NewObjectID().Hex()
	now := time.Now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	if _, err := utils.InsertOneWithTimeout(ctx, r.collection, cfg, utils.DefaultQueryTimeout); err != nil {
		if utils.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", models.ErrConfigNameExists, cfg.Name)
		}
		r.logger.Error("failed to create import config", zap.Error(err))
		return fmt.Errorf("failed to create import config: %w", err)
	}
	return nil
}

func (r *MongoImportConfigRepository) Update(ctx context.Context, cfg *models.ImportConfig) error {
	cfg.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":                cfg.Name,
		"description":         cfg.Description,
		"is_default":          cfg.IsDefault,
		"search_scope":        cfg.SearchScope,
		"duplicate_action":    cfg.DuplicateAction,
		"no_duplicate_action": cfg.NoDuplicateAction,
		"validation":          cfg.Validation,
		"additional":          cfg.Additional,
		"updated_at":          cfg.UpdatedAt,
	}}

	result, err := utils.UpdateOneWithTimeout(ctx, r.collection, bson.M{"_id": cfg.ID, "owner_id": cfg.OwnerID}, update, utils.DefaultQueryTimeout)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", models.ErrConfigNameExists, cfg.Name)
		}
		return fmt.Errorf("failed to update import config: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", models.ErrConfigNotFound, cfg.ID)
	}
	return nil
}

func (r *MongoImportConfigRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := utils.DeleteOneWithTimeout(ctx, r.collection, bson.M{"_id": id, "owner_id": ownerID}, utils.DefaultQueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to delete import config: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
	}
	return nil
}

func (r *MongoImportConfigRepository) SetDefault(ctx context.Context, ownerID, id string) error {
	result, err := utils.UpdateOneWithTimeout(ctx, r.collection,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{"is_default": true, "updated_at": time.Now()}},
		utils.DefaultQueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to set default import config: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
	}

	_, err = utils.UpdateManyWithTimeout(ctx, r.collection,
		bson.M{"owner_id": ownerID, "_id": bson.M{"$ne": id}, "is_default": true},
		bson.M{"$set": bson.M{"is_default": false, "updated_at": time.Now()}},
		utils.DefaultQueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to clear previous default import config: %w", err)
	}
	return nil
}

func (r *MongoImportConfigRepository) GetDefault(ctx context.Context, ownerID string) (*models.ImportConfig, error) {
	var cfg models.ImportConfig
	err := utils.FindOneWithTimeout(ctx, r.collection, bson.M{"owner_id": ownerID, "is_default": true}, &cfg, utils.DefaultQueryTimeout)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, models.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get default import config: %w", err)
	}
	return &cfg, nil
}

// MemoryImportConfigRepository keeps configs in process memory
type MemoryImportConfigRepository struct {
	mu      sync.RWMutex
	configs map[string]models.ImportConfig
}

// NewMemoryImportConfigRepository creates an empty repository
func NewMemoryImportConfigRepository() *MemoryImportConfigRepository {
	return &MemoryImportConfigRepository{configs: make(map[string]models.ImportConfig)}
}

func (r *MemoryImportConfigRepository) List(ctx context.Context, ownerID string) ([]models.ImportConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := []models.ImportConfig{}
	for _, c := range r.configs {
		if c.OwnerID == ownerID {
			configs = append(configs, c)
		}
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return configs, nil
}

func (r *MemoryImportConfigRepository) Get(ctx context.Context, id string) (*models.ImportConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.configs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
	}
	return &c, nil
}

func (r *MemoryImportConfigRepository) Create(ctx context.Context, cfg *models.ImportConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(cfg.OwnerID, cfg.Name, "") {
		return fmt.Errorf("%w: %s", models.ErrConfigNameExists, cfg.Name)
	}
	cfg.ID = utils.GenerateUUID()
	now := time.Now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	r.configs[cfg.ID] = *cfg
	return nil
}

func (r *MemoryImportConfigRepository) Update(ctx context.Context, cfg *models.ImportConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.configs[cfg.ID]
	if !ok || existing.OwnerID != cfg.OwnerID {
		return fmt.Errorf("%w: %s", models.ErrConfigNotFound, cfg.ID)
	}
	if r.nameTaken(cfg.OwnerID, cfg.Name, cfg.ID) {
		return fmt.Errorf("%w: %s", models.ErrConfigNameExists, cfg.Name)
	}
	cfg.CreatedAt = existing.CreatedAt
	cfg.UpdatedAt = time.Now()
	r.configs[cfg.ID] = *cfg
	return nil
}

func (r *MemoryImportConfigRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.configs[id]
	if !ok || existing.OwnerID != ownerID {
		return fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
	}
	delete(r.configs, id)
	return nil
}

func (r *MemoryImportConfigRepository) SetDefault(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.configs[id]
	if !ok || target.OwnerID != ownerID {
		return fmt.Errorf("%w: %s", models.ErrConfigNotFound, id)
	}
	for cid, c := range r.configs {
		if c.OwnerID == ownerID {
			c.IsDefault = cid == id
			r.configs[cid] = c
		}
	}
	return nil
}

func (r *MemoryImportConfigRepository) GetDefault(ctx context.Context, ownerID string) (*models.ImportConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.configs {
		if c.OwnerID == ownerID && c.IsDefault {
			return &c, nil
		}
	}
	return nil, models.ErrConfigNotFound
}

func (r *MemoryImportConfigRepository) nameTaken(ownerID, name, exceptID string) bool {
	for id, c := range r.configs {
		if id != exceptID && c.OwnerID == ownerID && c.Name == name {
			return true
		}
	}
	return false
}
