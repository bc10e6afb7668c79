package services

import (
	"testing"

	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchOf(contact *models.Contact) MatchResult {
	return MatchResult{MatchType: models.MatchTypePhone, ExistingClientID: contact.ID, Existing: contact}
}

func TestMergeDecisionEngine_NoMatch(t *testing.T) {
	engine := NewMergeDecisionEngine()

	decision := engine.Decide(testConfig(nil), MergeInput{})
	assert.Equal(t, models.StrategyCreate, decision.Strategy.Action)
	assert.Empty(t, decision.Strategy.ExistingClientID)

	decision = engine.Decide(testConfig(func(c *models.ImportConfig) {
		c.NoDuplicateAction = models.NoDuplicateActionSkip
	}), MergeInput{})
	assert.Equal(t, models.StrategySkip, decision.Strategy.Action)
	assert.Equal(t, "no duplicate, configured to skip", decision.Strategy.Reason)
}

func TestMergeDecisionEngine_MatchActions(t *testing.T) {
	engine := NewMergeDecisionEngine()
	existing := &models.Contact{ID: "c1", Phones: []string{"+79161234567"}, GroupIDs: []string{testGroup}}

	decision := engine.Decide(testConfig(nil), MergeInput{Match: matchOf(existing), GroupID: testGroup})
	assert.Equal(t, models.StrategySkip, decision.Strategy.Action)
	assert.Equal(t, "duplicate found, configured to skip", decision.Strategy.Reason)
	assert.Equal(t, "c1", decision.Strategy.ExistingClientID)

	decision = engine.Decide(testConfig(func(c *models.ImportConfig) {
		c.DuplicateAction.DefaultAction = models.DuplicateActionCreate
	}), MergeInput{Match: matchOf(existing), GroupID: testGroup})
	assert.Equal(t, models.StrategyCreate, decision.Strategy.Action)
	assert.Equal(t, "c1", decision.Strategy.ExistingClientID)
}

func TestMergeDecisionEngine_UpdateFlags(t *testing.T) {
	engine := NewMergeDecisionEngine()

	newExisting := func() *models.Contact {
		return &models.Contact{
			ID:        "c1",
			LastName:  models.StringPtr("Петров"),
			FirstName: nil,
			Phones:    []string{"+79161234567"},
			GroupIDs:  []string{"group-2", "group-3"},
			Status:    models.ContactStatusOld,
		}
	}
	input := func(existing *models.Contact) MergeInput {
		return MergeInput{
			Match: matchOf(existing),
			Name: models.ParsedName{
				LastName:   models.StringPtr("Сидоров"),
				FirstName:  models.StringPtr("Иван"),
				MiddleName: models.StringPtr("Петрович"),
			},
			Phones:   []string{"+79161234567", "+79031112233"},
			RegionID: "r1",
			Status:   models.ContactStatusNew,
			GroupID:  testGroup,
		}
	}

	tests := []struct {
		name   string
		flags  models.DuplicateActionConfig
		status bool
		check  func(t *testing.T, c *models.ContactChanges)
		fields []string
	}{
		{
			name:  "update name fills only empty components",
			flags: models.DuplicateActionConfig{UpdateName: true},
			check: func(t *testing.T, c *models.ContactChanges) {
				assert.Nil(t, c.LastName)
				assert.Equal(t, "Иван", models.StringValue(c.FirstName))
				assert.Equal(t, "Петрович", models.StringValue(c.MiddleName))
			},
			fields: []string{"name"},
		},
		{
			name:  "update region fills empty region",
			flags: models.DuplicateActionConfig{UpdateRegion: true},
			check: func(t *testing.T, c *models.ContactChanges) {
				assert.Equal(t, "r1", models.StringValue(c.RegionID))
			},
			fields: []string{"region"},
		},
		{
			name:  "add phones appends only new ones",
			flags: models.DuplicateActionConfig{AddPhones: true},
			check: func(t *testing.T, c *models.ContactChanges) {
				assert.Equal(t, []string{"+79031112233"}, c.AddPhones)
			},
			fields: []string{"phones"},
		},
		{
			name:  "add to group",
			flags: models.DuplicateActionConfig{AddToGroup: true},
			check: func(t *testing.T, c *models.ContactChanges) {
				assert.Equal(t, []string{testGroup}, c.AddGroupIDs)
				assert.Nil(t, c.SetGroupIDs)
			},
			fields: []string{"groups"},
		},
		{
			name:  "move wins over add",
			flags: models.DuplicateActionConfig{AddToGroup: true, MoveToGroup: true},
			check: func(t *testing.T, c *models.ContactChanges) {
				assert.Equal(t, []string{testGroup}, c.SetGroupIDs)
				assert.Empty(t, c.AddGroupIDs)
			},
			fields: []string{"groups"},
		},
		{
			name:   "update status",
			status: true,
			check: func(t *testing.T, c *models.ContactChanges) {
				assert.Equal(t, models.ContactStatusNew, models.StringValue(c.Status))
			},
			fields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(func(c *models.ImportConfig) {
				c.DuplicateAction = tt.flags
				c.DuplicateAction.DefaultAction = models.DuplicateActionUpdate
				c.Additional.UpdateStatus = tt.status
			})

			decision := engine.Decide(cfg, input(newExisting()))
			require.Equal(t, models.StrategyUpdate, decision.Strategy.Action)
			require.NotNil(t, decision.Changes)
			tt.check(t, decision.Changes)
			assert.Equal(t, tt.fields, decision.Changes.Fields())
		})
	}
}

func TestMergeDecisionEngine_UpdateWithNothingToChange(t *testing.T) {
	engine := NewMergeDecisionEngine()
	existing := &models.Contact{
		ID:        "c1",
		LastName:  models.StringPtr("Петров"),
		FirstName: models.StringPtr("Пётр"),
		Phones:    []string{"+79161234567"},
		GroupIDs:  []string{testGroup},
	}
	cfg := testConfig(func(c *models.ImportConfig) {
		c.DuplicateAction = models.DuplicateActionConfig{
			DefaultAction: models.DuplicateActionUpdate,
			UpdateName:    true,
			AddPhones:     true,
			AddToGroup:    true,
			MoveToGroup:   true,
		}
	})

	decision := engine.Decide(cfg, MergeInput{
		Match:   matchOf(existing),
		Name:    models.ParsedName{LastName: models.StringPtr("Сидоров"), FirstName: models.StringPtr("Иван")},
		Phones:  []string{"+79161234567"},
		GroupID: testGroup,
	})
	assert.Equal(t, models.StrategySkip, decision.Strategy.Action)
	assert.Equal(t, ReasonDuplicateNoChange, decision.Strategy.Reason)
	assert.Equal(t, "c1", decision.Strategy.ExistingClientID)
}
