package services

import (
	"context"
	"testing"

	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupMongoForTest starts a MongoDB container with the contact indexes in place
func setupMongoForTest(t *testing.T) *mongo.Database {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration tests in short mode")
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7.0")
	require.NoError(t, err, "Failed to start MongoDB container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err, "Failed to connect to MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("contacts_test")
	require.NoError(t, config.EnsureIndexes(ctx, db))
	return db
}

func setupRedisCacheForTest(t *testing.T) *redisclient.Client {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	return redisclient.NewClient(redis.NewClient(opts))
}

func TestMongoContactStore_Import(t *testing.T) {
	db := setupMongoForTest(t)
	ctx := context.Background()

	_, err := db.Collection(config.AppConfig.GroupCollection).InsertMany(ctx, []interface{}{
		models.Group{ID: testGroup, Name: "Spring campaign", OwnerID: testOwner},
		models.Group{ID: "group-2", Name: "Winter campaign", OwnerID: testOwner},
	})
	require.NoError(t, err)

	store := NewMongoContactStore(db, logging.Logger)
	existing := seedContact(t, store, "Петров", "", []string{"+79161234567"}, "group-2")

	cfg := testConfig(func(c *models.ImportConfig) {
		c.SearchScope.Scopes = []models.SearchScope{models.SearchScopeOwnerGroups}
		c.DuplicateAction = models.DuplicateActionConfig{
			DefaultAction: models.DuplicateActionUpdate,
			UpdateName:    true,
			AddPhones:     true,
			AddToGroup:    true,
		}
	})

	result := runImport(t, store, cfg,
		row(1, "Петров Пётр", "89161234567, 89031112233", "Москва"),
		row(2, "Сидоров Сидор", "+79857654321", "москва"),
		row(3, "Сидоров Сидор", "8 985 765 43 21", "Москва"),
	)

	assert.True(t, result.Success)
	assert.Equal(t, models.ImportStatistics{Total: 3, Created: 1, Updated: 1, Skipped: 1, RegionsCreated: 1}, result.Statistics)

	updated, err := store.GetContact(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Петров", models.StringValue(updated.LastName))
	assert.Equal(t, "Пётр", models.StringValue(updated.FirstName))
	assert.ElementsMatch(t, []string{"+79161234567", "+79031112233"}, updated.Phones)
	assert.ElementsMatch(t, []string{"group-2", testGroup}, updated.GroupIDs)

	region, err := store.FindRegionByName(ctx, "МОСКВА")
	require.NoError(t, err)
	assert.Equal(t, result.ProcessedRows[1].RegionID, region.ID)

	again, inserted, err := store.CreateRegion(ctx, "Москва")
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, region.ID, again.ID)
}

func TestMongoContactStore_MoveToGroup(t *testing.T) {
	db := setupMongoForTest(t)
	ctx := context.Background()
	store := NewMongoContactStore(db, logging.Logger)

	contact := seedContact(t, store, "Иванов", "Иван", []string{"+79161234567"}, "group-2", "group-3")

	updated, err := store.UpdateContact(ctx, contact.ID, &models.ContactChanges{
		SetGroupIDs: []string{testGroup},
		AddPhones:   []string{"+79031112233"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{testGroup}, updated.GroupIDs)
	assert.Equal(t, []string{"+79161234567", "+79031112233"}, updated.Phones)

	_, err = store.UpdateContact(ctx, "missing", &models.ContactChanges{AddPhones: []string{"+79031112233"}})
	assert.ErrorIs(t, err, models.ErrContactNotFound)

	_, err = store.GetGroup(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrGroupNotFound)
}

func TestMongoImportConfigRepository_WithCache(t *testing.T) {
	db := setupMongoForTest(t)
	cache := setupRedisCacheForTest(t)
	ctx := context.Background()

	service := NewImportConfigService(NewMongoImportConfigRepository(db, logging.Logger), cache, config.AppConfig.RedisTTL, logging.Logger)

	created, err := service.Create(ctx, testOwner, configRequest("Nightly"))
	require.NoError(t, err)

	_, err = service.Create(ctx, testOwner, configRequest("Nightly"))
	assert.ErrorIs(t, err, models.ErrConfigNameExists)

	// first read fills the cache, second is served from it
	_, err = service.Get(ctx, testOwner, created.ID)
	require.NoError(t, err)
	cached, err := cache.Get(ctx, importConfigCachePrefix+created.ID).Result()
	require.NoError(t, err)
	assert.Contains(t, cached, "Nightly")

	req := configRequest("Nightly v2")
	req.IsDefault = true
	_, err = service.Update(ctx, testOwner, created.ID, req)
	require.NoError(t, err)

	_, err = cache.Get(ctx, importConfigCachePrefix+created.ID).Result()
	assert.ErrorIs(t, err, redis.Nil)

	got, err := service.Get(ctx, testOwner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nightly v2", got.Name)
	assert.True(t, got.IsDefault)

	def, err := service.GetDefault(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, def.ID)

	require.NoError(t, service.Delete(ctx, testOwner, created.ID))
	_, err = service.Get(ctx, testOwner, created.ID)
	assert.ErrorIs(t, err, models.ErrConfigNotFound)
}
