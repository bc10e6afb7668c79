package services

import (
	"context"

	"github.com/prefeitura-rio/app-contacts/internal/models"
)

// ContactQuery selects candidate contacts for duplicate matching.
// Results are always ordered oldest first (created_at, then _id).
type ContactQuery struct {
	// Global disables the group restriction
	Global bool
	// GroupIDs restricts candidates to members of any of these groups
	GroupIDs []string
	// Phones matches contacts storing any of these phones
	Phones []string
	// MatchName requires last and first name equality
	MatchName bool
	LastName  *string
	FirstName *string
	// Limit caps the number of results, zero means unbounded
	Limit int
}

// ContactStore is the persistence capability the import engine depends on
type ContactStore interface {
	FindContacts(ctx context.Context, query ContactQuery) ([]models.Contact, error)
	GetContact(ctx context.Context, id string) (*models.Contact, error)
	CreateContact(ctx context.Context, contact *models.Contact) error
	UpdateContact(ctx context.Context, id string, changes *models.ContactChanges) (*models.Contact, error)

	FindRegionByName(ctx context.Context, name string) (*models.Region, error)
	// CreateRegion reports inserted=false when a region with the same name key already exists
	CreateRegion(ctx context.Context, name string) (region *models.Region, inserted bool, err error)

	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroupIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}
