package services

import (
	"context"
	"fmt"

	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"go.uber.org/zap"
)

// MatchScope is the search area of one import run, resolved once per batch
type MatchScope struct {
	Disabled bool
	Global   bool
	GroupIDs []string
}

// MatchResult is the outcome of a duplicate lookup for one row
type MatchResult struct {
	MatchType        models.MatchType
	ExistingClientID string
	Existing         *models.Contact
}

// Found reports whether an existing contact matched
func (r MatchResult) Found() bool {
	return r.Existing != nil
}

// DuplicateMatcher looks up existing contacts that a row duplicates
type DuplicateMatcher struct {
	store  ContactStore
	logger *logging.SafeLogger
}

// NewDuplicateMatcher creates a matcher over store
func NewDuplicateMatcher(store ContactStore, logger *logging.SafeLogger) *DuplicateMatcher {
	return &DuplicateMatcher{store: store, logger: logger}
}

// ResolveScope turns the configured scopes into a concrete search area.
// Privilege for all_users must be checked by the caller.
func (m *DuplicateMatcher) ResolveScope(ctx context.Context, cfg models.SearchScopeConfig, groupID, ownerID string) (MatchScope, error) {
	if cfg.Disabled() {
		return MatchScope{Disabled: true}, nil
	}
	if cfg.Has(models.SearchScopeAllUsers) {
		return MatchScope{Global: true}, nil
	}

	var scope MatchScope
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			scope.GroupIDs = append(scope.GroupIDs, id)
		}
	}

	if cfg.Has(models.SearchScopeCurrentGroup) {
		add(groupID)
	}
	if cfg.Has(models.SearchScopeOwnerGroups) {
		ids, err := m.store.ListGroupIDsByOwner(ctx, ownerID)
		if err != nil {
			return MatchScope{}, fmt.Errorf("failed to resolve owner groups: %w", err)
		}
		for _, id := range ids {
			add(id)
		}
	}

	m.logger.Debug("resolved duplicate search scope",
		zap.Int("group_count", len(scope.GroupIDs)),
		zap.String("group_id", groupID),
	)
	return scope, nil
}

// Match finds the oldest contact within scope that the row duplicates.
// phones are the row's normalized numbers as they are stored.
func (m *DuplicateMatcher) Match(ctx context.Context, scope MatchScope, criteria models.MatchCriteria, phones []string, name models.ParsedName) (MatchResult, error) {
	if scope.Disabled || (!scope.Global && len(scope.GroupIDs) == 0) {
		return MatchResult{}, nil
	}

	query := ContactQuery{
		Global:   scope.Global,
		GroupIDs: scope.GroupIDs,
		Limit:    1,
	}
	hasName := name.LastName != nil || name.FirstName != nil

	var matchType models.MatchType
	switch criteria {
	case models.MatchCriteriaPhone:
		if len(phones) == 0 {
			return MatchResult{}, nil
		}
		query.Phones = phones
		matchType = models.MatchTypePhone
	case models.MatchCriteriaPhoneAndName:
		if len(phones) == 0 || !hasName {
			return MatchResult{}, nil
		}
		query.Phones = phones
		query.MatchName = true
		query.LastName = name.LastName
		query.FirstName = name.FirstName
		matchType = models.MatchTypeNameAndPhone
	case models.MatchCriteriaName:
		if !hasName {
			return MatchResult{}, nil
		}
		query.MatchName = true
		query.LastName = name.LastName
		query.FirstName = name.FirstName
		matchType = models.MatchTypeName
	default:
		return MatchResult{}, fmt.Errorf("%w: unknown match criteria %q", models.ErrInvalidImportConfig, criteria)
	}

	candidates, err := m.store.FindContacts(ctx, query)
	if err != nil {
		return MatchResult{}, err
	}
	if len(candidates) == 0 {
		return MatchResult{}, nil
	}

	existing := candidates[0]
	return MatchResult{
		MatchType:        matchType,
		ExistingClientID: existing.ID,
		Existing:         &existing,
	}, nil
}
