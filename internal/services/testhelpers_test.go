package services

import (
	"context"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/stretchr/testify/require"
)

const (
	testOwner      = "owner-1"
	testOtherOwner = "owner-2"
	testGroup      = "group-1"
)

func init() {
	if config.AppConfig == nil {
		config.AppConfig = &config.Config{
			ContactCollection:      "contacts",
			RegionCollection:       "regions",
			GroupCollection:        "groups",
			ImportConfigCollection: "import_configs",
			RedisTTL:               time.Minute,
			AdminGroup:             "contacts:admin",
		}
	}
}

// newTestStore returns a memory store holding testGroup plus one sibling
// group of the same owner and one group of another owner
func newTestStore() *MemoryContactStore {
	store := NewMemoryContactStore()
	store.AddGroup(models.Group{ID: testGroup, Name: "Spring campaign", OwnerID: testOwner})
	store.AddGroup(models.Group{ID: "group-2", Name: "Winter campaign", OwnerID: testOwner})
	store.AddGroup(models.Group{ID: "group-foreign", Name: "Other list", OwnerID: testOtherOwner})
	return store
}

// testConfig is a skip-duplicates config over the current group
func testConfig(mod func(*models.ImportConfig)) *models.ImportConfig {
	cfg := &models.ImportConfig{
		Name: "test",
		SearchScope: models.SearchScopeConfig{
			Scopes:        []models.SearchScope{models.SearchScopeCurrentGroup},
			MatchCriteria: models.MatchCriteriaPhone,
		},
		DuplicateAction:   models.DuplicateActionConfig{DefaultAction: models.DuplicateActionSkip},
		NoDuplicateAction: models.NoDuplicateActionCreate,
		Validation:        models.ValidationConfig{ErrorHandling: models.ErrorHandlingSkip},
		Additional:        models.AdditionalConfig{NewClientStatus: models.NewClientStatusNew},
	}
	if mod != nil {
		mod(cfg)
	}
	return cfg
}

func row(n int, name, phone, region string) models.ParsedRow {
	return models.ParsedRow{Name: models.StringPtr(name), Phone: phone, Region: region, RowNumber: n}
}

func seedContact(t *testing.T, store ContactStore, last, first string, phones []string, groups ...string) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		OwnerID:   testOwner,
		LastName:  models.StringPtr(last),
		FirstName: models.StringPtr(first),
		Phones:    phones,
		GroupIDs:  groups,
		Status:    models.ContactStatusOld,
	}
	require.NoError(t, store.CreateContact(context.Background(), contact))
	return contact
}

func newTestImportService(store ContactStore) *ImportService {
	return NewImportService(store, nil, logging.Logger, 100)
}
