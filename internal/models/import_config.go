package models

import (
	"fmt"
	"strings"
	"time"
)

// SearchScope is the breadth of the duplicate search
type SearchScope string

const (
	SearchScopeNone         SearchScope = "none"
	SearchScopeCurrentGroup SearchScope = "current_group"
	SearchScopeOwnerGroups  SearchScope = "owner_groups"
	SearchScopeAllUsers     SearchScope = "all_users"
)

// IsValid reports whether the scope is a known value
func (s SearchScope) IsValid() bool {
	switch s {
	case SearchScopeNone, SearchScopeCurrentGroup, SearchScopeOwnerGroups, SearchScopeAllUsers:
		return true
	}
	return false
}

// MatchCriteria selects which fields must agree for two contacts to be the same
type MatchCriteria string

const (
	MatchCriteriaPhone        MatchCriteria = "phone"
	MatchCriteriaPhoneAndName MatchCriteria = "phone_and_name"
	MatchCriteriaName         MatchCriteria = "name"
)

// IsValid reports whether the criteria is a known value
func (m MatchCriteria) IsValid() bool {
	switch m {
	case MatchCriteriaPhone, MatchCriteriaPhoneAndName, MatchCriteriaName:
		return true
	}
	return false
}

// DuplicateAction is the behavior when a match is found
type DuplicateAction string

const (
	DuplicateActionSkip   DuplicateAction = "skip"
	DuplicateActionUpdate DuplicateAction = "update"
	DuplicateActionCreate DuplicateAction = "create"
)

// IsValid reports whether the action is a known value
func (a DuplicateAction) IsValid() bool {
	switch a {
	case DuplicateActionSkip, DuplicateActionUpdate, DuplicateActionCreate:
		return true
	}
	return false
}

// NoDuplicateAction is the behavior when no match is found
type NoDuplicateAction string

const (
	NoDuplicateActionCreate NoDuplicateAction = "create"
	NoDuplicateActionSkip   NoDuplicateAction = "skip"
)

// IsValid reports whether the action is a known value
func (a NoDuplicateAction) IsValid() bool {
	switch a {
	case NoDuplicateActionCreate, NoDuplicateActionSkip:
		return true
	}
	return false
}

// ErrorHandling is the batch-level policy for row failures
type ErrorHandling string

const (
	ErrorHandlingStop ErrorHandling = "stop"
	ErrorHandlingSkip ErrorHandling = "skip"
	ErrorHandlingWarn ErrorHandling = "warn"
)

// IsValid reports whether the policy is a known value
func (e ErrorHandling) IsValid() bool {
	switch e {
	case ErrorHandlingStop, ErrorHandlingSkip, ErrorHandlingWarn:
		return true
	}
	return false
}

// NewClientStatus selects the status given to created contacts
type NewClientStatus string

const (
	NewClientStatusNew      NewClientStatus = "NEW"
	NewClientStatusOld      NewClientStatus = "OLD"
	NewClientStatusFromFile NewClientStatus = "from_file"
)

// IsValid reports whether the status source is a known value
func (s NewClientStatus) IsValid() bool {
	switch s {
	case NewClientStatusNew, NewClientStatusOld, NewClientStatusFromFile:
		return true
	}
	return false
}

// SearchScopeConfig controls where and how duplicates are looked up
type SearchScopeConfig struct {
	Scopes        []SearchScope `bson:"scopes" json:"scopes"`
	MatchCriteria MatchCriteria `bson:"match_criteria" json:"matchCriteria"`
}

// Has reports whether the scope list contains s
func (c SearchScopeConfig) Has(s SearchScope) bool {
	for _, scope := range c.Scopes {
		if scope == s {
			return true
		}
	}
	return false
}

// Disabled reports whether duplicate matching is switched off
func (c SearchScopeConfig) Disabled() bool {
	return len(c.Scopes) == 0 || c.Has(SearchScopeNone)
}

// DuplicateActionConfig controls what happens to a matched contact
type DuplicateActionConfig struct {
	DefaultAction DuplicateAction `bson:"default_action" json:"defaultAction"`
	UpdateName    bool            `bson:"update_name" json:"updateName"`
	UpdateRegion  bool            `bson:"update_region" json:"updateRegion"`
	AddPhones     bool            `bson:"add_phones" json:"addPhones"`
	AddToGroup    bool            `bson:"add_to_group" json:"addToGroup"`
	MoveToGroup   bool            `bson:"move_to_group" json:"moveToGroup"`
}

// ValidationConfig lists the required row fields and the failure policy
type ValidationConfig struct {
	RequireName   bool          `bson:"require_name" json:"requireName"`
	RequirePhone  bool          `bson:"require_phone" json:"requirePhone"`
	RequireRegion bool          `bson:"require_region" json:"requireRegion"`
	ErrorHandling ErrorHandling `bson:"error_handling" json:"errorHandling"`
}

// AdditionalConfig holds status handling and phone storage options
type AdditionalConfig struct {
	NewClientStatus   NewClientStatus `bson:"new_client_status" json:"newClientStatus"`
	UpdateStatus      bool            `bson:"update_status" json:"updateStatus"`
	SkipInvalidPhones bool            `bson:"skip_invalid_phones" json:"skipInvalidPhones"`
}

// ImportConfig is the policy object that parameterizes one import run
type ImportConfig struct {
	ID                string                `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID           string                `bson:"owner_id,omitempty" json:"ownerId,omitempty"`
	Name              string                `bson:"name" json:"name"`
	Description       string                `bson:"description,omitempty" json:"description,omitempty"`
	IsDefault         bool                  `bson:"is_default" json:"isDefault"`
	IsPreset          bool                  `bson:"-" json:"isPreset"`
	SearchScope       SearchScopeConfig     `bson:"search_scope" json:"searchScope"`
	DuplicateAction   DuplicateActionConfig `bson:"duplicate_action" json:"duplicateAction"`
	NoDuplicateAction NoDuplicateAction     `bson:"no_duplicate_action" json:"noDuplicateAction"`
	Validation        ValidationConfig      `bson:"validation" json:"validation"`
	Additional        AdditionalConfig      `bson:"additional" json:"additional"`
	CreatedAt         time.Time             `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time             `bson:"updated_at" json:"updatedAt"`
}

// Validate checks every enumerated value of the config
func (c *ImportConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidImportConfig)
	}
	for _, s := range c.SearchScope.Scopes {
		if !s.IsValid() {
			return fmt.Errorf("%w: unknown search scope %q", ErrInvalidImportConfig, s)
		}
	}
	if !c.SearchScope.Disabled() && !c.SearchScope.MatchCriteria.IsValid() {
		return fmt.Errorf("%w: unknown match criteria %q", ErrInvalidImportConfig, c.SearchScope.MatchCriteria)
	}
	if !c.DuplicateAction.DefaultAction.IsValid() {
		return fmt.Errorf("%w: unknown duplicate action %q", ErrInvalidImportConfig, c.DuplicateAction.DefaultAction)
	}
	if !c.NoDuplicateAction.IsValid() {
		return fmt.Errorf("%w: unknown no-duplicate action %q", ErrInvalidImportConfig, c.NoDuplicateAction)
	}
	if !c.Validation.ErrorHandling.IsValid() {
		return fmt.Errorf("%w: unknown error handling %q", ErrInvalidImportConfig, c.Validation.ErrorHandling)
	}
	if !c.Additional.NewClientStatus.IsValid() {
		return fmt.Errorf("%w: unknown new client status %q", ErrInvalidImportConfig, c.Additional.NewClientStatus)
	}
	return nil
}

// RequiresAdmin reports whether the config searches across all users
func (c *ImportConfig) RequiresAdmin() bool {
	return c.SearchScope.Has(SearchScopeAllUsers)
}

// ImportConfigRequest is the request body for creating or updating a saved config
type ImportConfigRequest struct {
	Name              string                `json:"name" binding:"required"`
	Description       string                `json:"description"`
	IsDefault         bool                  `json:"isDefault"`
	SearchScope       SearchScopeConfig     `json:"searchScope"`
	DuplicateAction   DuplicateActionConfig `json:"duplicateAction"`
	NoDuplicateAction NoDuplicateAction     `json:"noDuplicateAction"`
	Validation        ValidationConfig      `json:"validation"`
	Additional        AdditionalConfig      `json:"additional"`
}

// ToConfig converts the request into an ImportConfig owned by ownerID
func (r *ImportConfigRequest) ToConfig(ownerID string) *ImportConfig {
	return &ImportConfig{
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(r.Name),
		Description:       r.Description,
		IsDefault:         r.IsDefault,
		SearchScope:       r.SearchScope,
		DuplicateAction:   r.DuplicateAction,
		NoDuplicateAction: r.NoDuplicateAction,
		Validation:        r.Validation,
		Additional:        r.Additional,
	}
}

// ImportConfigListResponse lists the caller's saved configs and the presets
type ImportConfigListResponse struct {
	Configs []ImportConfig `json:"configs"`
	Presets []ImportConfig `json:"presets"`
}

// ApplyDefaults fills unset enumerated fields with their defaults
func (c *ImportConfig) ApplyDefaults() {
	if c.SearchScope.MatchCriteria == "" {
		c.SearchScope.MatchCriteria = MatchCriteriaPhone
	}
	if c.DuplicateAction.DefaultAction == "" {
		c.DuplicateAction.DefaultAction = DuplicateActionSkip
	}
	if c.NoDuplicateAction == "" {
		c.NoDuplicateAction = NoDuplicateActionCreate
	}
	if c.Validation.ErrorHandling == "" {
		c.Validation.ErrorHandling = ErrorHandlingSkip
	}
	if c.Additional.NewClientStatus == "" {
		c.Additional.NewClientStatus = NewClientStatusNew
	}
}
