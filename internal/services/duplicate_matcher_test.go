package services

import (
	"context"
	"testing"

	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateMatcher_ResolveScope(t *testing.T) {
	ctx := context.Background()
	matcher := NewDuplicateMatcher(newTestStore(), logging.Logger)

	tests := []struct {
		name   string
		scopes []models.SearchScope
		want   MatchScope
	}{
		{"empty disables", nil, MatchScope{Disabled: true}},
		{"none disables", []models.SearchScope{models.SearchScopeNone, models.SearchScopeCurrentGroup}, MatchScope{Disabled: true}},
		{"current group", []models.SearchScope{models.SearchScopeCurrentGroup}, MatchScope{GroupIDs: []string{testGroup}}},
		{"owner groups", []models.SearchScope{models.SearchScopeOwnerGroups}, MatchScope{GroupIDs: []string{testGroup, "group-2"}}},
		{"union without duplicates", []models.SearchScope{models.SearchScopeCurrentGroup, models.SearchScopeOwnerGroups}, MatchScope{GroupIDs: []string{testGroup, "group-2"}}},
		{"all users is global", []models.SearchScope{models.SearchScopeCurrentGroup, models.SearchScopeAllUsers}, MatchScope{Global: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := matcher.ResolveScope(ctx, models.SearchScopeConfig{Scopes: tt.scopes}, testGroup, testOwner)
			require.NoError(t, err)
			assert.Equal(t, tt.want, scope)
		})
	}
}

func TestDuplicateMatcher_Match(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	matcher := NewDuplicateMatcher(store, logging.Logger)

	oldest := seedContact(t, store, "Иванов", "Иван", []string{"+79161234567"}, testGroup)
	seedContact(t, store, "Иванов", "Иван", []string{"+79161234567"}, testGroup)
	foreign := seedContact(t, store, "Петров", "Пётр", []string{"+79031112233"}, "group-foreign")

	ivanov := models.ParsedName{LastName: models.StringPtr("Иванов"), FirstName: models.StringPtr("Иван")}
	sidorov := models.ParsedName{LastName: models.StringPtr("Сидоров"), FirstName: models.StringPtr("Иван")}
	group := MatchScope{GroupIDs: []string{testGroup}}

	tests := []struct {
		name     string
		scope    MatchScope
		criteria models.MatchCriteria
		phones   []string
		person   models.ParsedName
		wantType models.MatchType
		wantID   string
	}{
		{"phone picks oldest", group, models.MatchCriteriaPhone, []string{"+79161234567"}, models.ParsedName{}, models.MatchTypePhone, oldest.ID},
		{"phone outside scope", group, models.MatchCriteriaPhone, []string{"+79031112233"}, models.ParsedName{}, models.MatchTypeNone, ""},
		{"phone global", MatchScope{Global: true}, models.MatchCriteriaPhone, []string{"+79031112233"}, models.ParsedName{}, models.MatchTypePhone, foreign.ID},
		{"no phones", group, models.MatchCriteriaPhone, nil, ivanov, models.MatchTypeNone, ""},
		{"phone and name", group, models.MatchCriteriaPhoneAndName, []string{"+79161234567"}, ivanov, models.MatchTypeNameAndPhone, oldest.ID},
		{"phone and other name", group, models.MatchCriteriaPhoneAndName, []string{"+79161234567"}, sidorov, models.MatchTypeNone, ""},
		{"phone and no name", group, models.MatchCriteriaPhoneAndName, []string{"+79161234567"}, models.ParsedName{}, models.MatchTypeNone, ""},
		{"name only ignores phone", group, models.MatchCriteriaName, []string{"+70000000000"}, ivanov, models.MatchTypeName, oldest.ID},
		{"disabled", MatchScope{Disabled: true}, models.MatchCriteriaPhone, []string{"+79161234567"}, models.ParsedName{}, models.MatchTypeNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := matcher.Match(ctx, tt.scope, tt.criteria, tt.phones, tt.person)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, result.MatchType)
			assert.Equal(t, tt.wantID, result.ExistingClientID)
			assert.Equal(t, tt.wantID != "", result.Found())
		})
	}
}

func TestDuplicateMatcher_UnknownCriteria(t *testing.T) {
	matcher := NewDuplicateMatcher(newTestStore(), logging.Logger)

	_, err := matcher.Match(context.Background(), MatchScope{Global: true}, "fuzzy", []string{"+79161234567"}, models.ParsedName{})
	assert.ErrorIs(t, err, models.ErrInvalidImportConfig)
}
