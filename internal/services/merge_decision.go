package services

import (
	"strings"

	"github.com/prefeitura-rio/app-contacts/internal/models"
)

// Decision reasons
const (
	ReasonNoDuplicateCreate = "no duplicate found"
	ReasonNoDuplicateSkip   = "no duplicate, configured to skip"
	ReasonDuplicateSkip     = "duplicate found, configured to skip"
	ReasonDuplicateCreate   = "duplicate found, configured to create"
	ReasonDuplicateNoChange = "duplicate found, nothing to update"
	reasonDuplicateUpdate   = "duplicate found, updated"
)

// MergeInput is the normalized row data offered to an existing contact
type MergeInput struct {
	Match    MatchResult
	Name     models.ParsedName
	Phones   []string
	RegionID string
	Status   string
	GroupID  string
}

// MergeDecision is the strategy for a row plus the field changes of an update
type MergeDecision struct {
	Strategy models.DeduplicationStrategy
	Changes  *models.ContactChanges
}

// MergeDecisionEngine maps a match result and the config onto a strategy
type MergeDecisionEngine struct{}

// NewMergeDecisionEngine creates a decision engine
func NewMergeDecisionEngine() *MergeDecisionEngine {
	return &MergeDecisionEngine{}
}

// Decide picks create, update or skip for one row
func (e *MergeDecisionEngine) Decide(cfg *models.ImportConfig, in MergeInput) MergeDecision {
	if !in.Match.Found() {
		switch cfg.NoDuplicateAction {
		case models.NoDuplicateActionSkip:
			return skipDecision(ReasonNoDuplicateSkip, "")
		default:
			return MergeDecision{Strategy: models.DeduplicationStrategy{
				Action: models.StrategyCreate,
				Reason: ReasonNoDuplicateCreate,
			}}
		}
	}

	existingID := in.Match.ExistingClientID

	switch cfg.DuplicateAction.DefaultAction {
	case models.DuplicateActionCreate:
		return MergeDecision{Strategy: models.DeduplicationStrategy{
			Action:           models.StrategyCreate,
			Reason:           ReasonDuplicateCreate,
			ExistingClientID: existingID,
		}}
	case models.DuplicateActionUpdate:
		changes := e.buildChanges(cfg, in)
		if changes.IsEmpty() {
			return skipDecision(ReasonDuplicateNoChange, existingID)
		}
		return MergeDecision{
			Strategy: models.DeduplicationStrategy{
				Action:           models.StrategyUpdate,
				Reason:           reasonDuplicateUpdate + ": " + strings.Join(changes.Fields(), ", "),
				ExistingClientID: existingID,
			},
			Changes: changes,
		}
	default:
		return skipDecision(ReasonDuplicateSkip, existingID)
	}
}

// buildChanges computes a non-destructive merge gated by the update flags
func (e *MergeDecisionEngine) buildChanges(cfg *models.ImportConfig, in MergeInput) *models.ContactChanges {
	existing := in.Match.Existing
	flags := cfg.DuplicateAction
	changes := &models.ContactChanges{}

	if flags.UpdateName {
		changes.LastName = fillEmpty(existing.LastName, in.Name.LastName)
		changes.FirstName = fillEmpty(existing.FirstName, in.Name.FirstName)
		changes.MiddleName = fillEmpty(existing.MiddleName, in.Name.MiddleName)
	}

	if flags.UpdateRegion && in.RegionID != "" && existing.RegionID == "" {
		regionID := in.RegionID
		changes.RegionID = &regionID
	}

	if flags.AddPhones {
		for _, p := range in.Phones {
			if !existing.HasPhone(p) && !containsString(changes.AddPhones, p) {
				changes.AddPhones = append(changes.AddPhones, p)
			}
		}
	}

	switch {
	case flags.MoveToGroup:
		if len(existing.GroupIDs) != 1 || existing.GroupIDs[0] != in.GroupID {
			changes.SetGroupIDs = []string{in.GroupID}
		}
	case flags.AddToGroup:
		if !existing.InGroup(in.GroupID) {
			changes.AddGroupIDs = []string{in.GroupID}
		}
	}

	if cfg.Additional.UpdateStatus && in.Status != "" && in.Status != existing.Status {
		status := in.Status
		changes.Status = &status
	}

	return changes
}

// fillEmpty returns incoming only when current holds no value
func fillEmpty(current, incoming *string) *string {
	if incoming == nil || strings.TrimSpace(*incoming) == "" {
		return nil
	}
	if current != nil && strings.TrimSpace(*current) != "" {
		return nil
	}
	return incoming
}

func skipDecision(reason, existingID string) MergeDecision {
	return MergeDecision{Strategy: models.DeduplicationStrategy{
		Action:           models.StrategySkip,
		Reason:           reason,
		ExistingClientID: existingID,
	}}
}
