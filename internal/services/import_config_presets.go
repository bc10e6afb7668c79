package services

import (
	"strings"

	"github.com/prefeitura-rio/app-contacts/internal/models"
)

// PresetIDPrefix marks built-in configs, which are never persisted
const PresetIDPrefix = "preset_"

// DefaultPresetID is used when a user has no saved default config
const DefaultPresetID = PresetIDPrefix + "smart_import"

// IsPresetID reports whether id names a built-in config
func IsPresetID(id string) bool {
	return strings.HasPrefix(id, PresetIDPrefix)
}

var presetConfigs = []models.ImportConfig{
	{
		ID:          PresetIDPrefix + "full_import",
		Name:        "Full import",
		Description: "Imports every row as a new contact without looking for duplicates",
		SearchScope: models.SearchScopeConfig{
			Scopes:        []models.SearchScope{models.SearchScopeNone},
			MatchCriteria: models.MatchCriteriaPhone,
		},
		DuplicateAction:   models.DuplicateActionConfig{DefaultAction: models.DuplicateActionSkip},
		NoDuplicateAction: models.NoDuplicateActionCreate,
		Validation:        models.ValidationConfig{RequirePhone: true, ErrorHandling: models.ErrorHandlingSkip},
		Additional:        models.AdditionalConfig{NewClientStatus: models.NewClientStatusNew},
	},
	{
		ID:          PresetIDPrefix + "group_search",
		Name:        "Group search",
		Description: "Skips rows whose phone already exists in the destination group",
		SearchScope: models.SearchScopeConfig{
			Scopes:        []models.SearchScope{models.SearchScopeCurrentGroup},
			MatchCriteria: models.MatchCriteriaPhone,
		},
		DuplicateAction:   models.DuplicateActionConfig{DefaultAction: models.DuplicateActionSkip},
		NoDuplicateAction: models.NoDuplicateActionCreate,
		Validation:        models.ValidationConfig{RequirePhone: true, ErrorHandling: models.ErrorHandlingSkip},
		Additional:        models.AdditionalConfig{NewClientStatus: models.NewClientStatusNew},
	},
	{
		ID:          PresetIDPrefix + "owner_search",
		Name:        "Owner search",
		Description: "Skips rows whose phone already exists in any of your groups",
		SearchScope: models.SearchScopeConfig{
			Scopes:        []models.SearchScope{models.SearchScopeOwnerGroups},
			MatchCriteria: models.MatchCriteriaPhone,
		},
		DuplicateAction:   models.DuplicateActionConfig{DefaultAction: models.DuplicateActionSkip},
		NoDuplicateAction: models.NoDuplicateActionCreate,
		Validation:        models.ValidationConfig{RequirePhone: true, ErrorHandling: models.ErrorHandlingSkip},
		Additional:        models.AdditionalConfig{NewClientStatus: models.NewClientStatusNew},
	},
	{
		ID:          DefaultPresetID,
		Name:        "Smart import",
		Description: "Completes existing contacts found in your groups and adds them to the destination group",
		SearchScope: models.SearchScopeConfig{
			Scopes:        []models.SearchScope{models.SearchScopeOwnerGroups},
			MatchCriteria: models.MatchCriteriaPhone,
		},
		DuplicateAction: models.DuplicateActionConfig{
			DefaultAction: models.DuplicateActionUpdate,
			UpdateName:    true,
			UpdateRegion:  true,
			AddPhones:     true,
			AddToGroup:    true,
		},
		NoDuplicateAction: models.NoDuplicateActionCreate,
		Validation:        models.ValidationConfig{RequirePhone: true, ErrorHandling: models.ErrorHandlingWarn},
		Additional:        models.AdditionalConfig{NewClientStatus: models.NewClientStatusNew},
	},
	{
		ID:          PresetIDPrefix + "update_only",
		Name:        "Update only",
		Description: "Updates contacts found in your groups and ignores unknown phones",
		SearchScope: models.SearchScopeConfig{
			Scopes:        []models.SearchScope{models.SearchScopeOwnerGroups},
			MatchCriteria: models.MatchCriteriaPhone,
		},
		DuplicateAction: models.DuplicateActionConfig{
			DefaultAction: models.DuplicateActionUpdate,
			UpdateName:    true,
			UpdateRegion:  true,
			AddPhones:     true,
			AddToGroup:    true,
		},
		NoDuplicateAction: models.NoDuplicateActionSkip,
		Validation:        models.ValidationConfig{RequirePhone: true, ErrorHandling: models.ErrorHandlingWarn},
		Additional:        models.AdditionalConfig{NewClientStatus: models.NewClientStatusNew, UpdateStatus: true},
	},
	{
		ID:          PresetIDPrefix + "create_only",
		Name:        "Create only",
		Description: "Creates contacts with a valid phone that none of your groups contain yet",
		SearchScope: models.SearchScopeConfig{
			Scopes:        []models.SearchScope{models.SearchScopeOwnerGroups},
			MatchCriteria: models.MatchCriteriaPhone,
		},
		DuplicateAction:   models.DuplicateActionConfig{DefaultAction: models.DuplicateActionSkip},
		NoDuplicateAction: models.NoDuplicateActionCreate,
		Validation:        models.ValidationConfig{RequireName: true, RequirePhone: true, ErrorHandling: models.ErrorHandlingSkip},
		Additional:        models.AdditionalConfig{NewClientStatus: models.NewClientStatusNew, SkipInvalidPhones: true},
	},
}

// Presets returns copies of the built-in configs
func Presets() []models.ImportConfig {
	presets := make([]models.ImportConfig, 0, len(presetConfigs))
	for _, p := range presetConfigs {
		presets = append(presets, copyPreset(p))
	}
	return presets
}

// GetPreset returns a copy of the built-in config with the given id
func GetPreset(id string) (*models.ImportConfig, bool) {
	for _, p := range presetConfigs {
		if p.ID == id {
			preset := copyPreset(p)
			return &preset, true
		}
	}
	return nil, false
}

func copyPreset(p models.ImportConfig) models.ImportConfig {
	p.IsPreset = true
	p.SearchScope.Scopes = append([]models.SearchScope(nil), p.SearchScope.Scopes...)
	return p
}
