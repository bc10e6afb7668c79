package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
)

// MemoryContactStore is a process-local ContactStore used for dry runs and tests
type MemoryContactStore struct {
	mu       sync.RWMutex
	contacts map[string]*models.Contact
	regions  map[string]*models.Region
	groups   map[string]*models.Group
	seq      int64
}

// NewMemoryContactStore creates an empty in-memory store
func NewMemoryContactStore() *MemoryContactStore {
	return &MemoryContactStore{
		contacts: make(map[string]*models.Contact),
		regions:  make(map[string]*models.Region),
		groups:   make(map[string]*models.Group),
	}
}

// AddGroup registers a group so imports can target it
func (s *MemoryContactStore) AddGroup(group models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}
	s.groups[group.ID] = &group
}

// Contacts returns a snapshot of every stored contact, oldest first
func (s *MemoryContactStore) Contacts() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		result = append(result, copyContact(c))
	}
	sortOldestFirst(result)
	return result
}

// Regions returns a snapshot of every stored region
func (s *MemoryContactStore) Regions() []models.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Region, 0, len(s.regions))
	for _, r := range s.regions {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

func (s *MemoryContactStore) FindContacts(ctx context.Context, query ContactQuery) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Contact
	for _, c := range s.contacts {
		if matchesQuery(c, query) {
			result = append(result, copyContact(c))
		}
	}
	sortOldestFirst(result)

	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}
	return result, nil
}

func (s *MemoryContactStore) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrContactNotFound, id)
	}
	contact := copyContact(c)
	return &contact, nil
}

func (s *MemoryContactStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contact.ID == "" {
		contact.ID = utils.GenerateUUID()
	}
	contact.BeforeCreate()
	// keep creation order strict within one clock tick
	s.seq++
	contact.CreatedAt = contact.CreatedAt.Add(time.Duration(s.seq))
	contact.UpdatedAt = contact.CreatedAt

	stored := copyContact(contact)
	s.contacts[contact.ID] = &stored
	return nil
}

func (s *MemoryContactStore) UpdateContact(ctx context.Context, id string, changes *models.ContactChanges) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrContactNotFound, id)
	}
	changes.Apply(c)

	contact := copyContact(c)
	return &contact, nil
}

func (s *MemoryContactStore) FindRegionByName(ctx context.Context, name string) (*models.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := utils.RegionNameKey(name)
	for _, r := range s.regions {
		if r.NameKey == key {
			region := *r
			return &region, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrRegionNotFound, name)
}

func (s *MemoryContactStore) CreateRegion(ctx context.Context, name string) (*models.Region, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := utils.RegionNameKey(name)
	for _, r := range s.regions {
		if r.NameKey == key {
			existing := *r
			return &existing, false, nil
		}
	}

	region := &models.Region{
		ID:        utils.GenerateUUID(),
		Name:      utils.SanitizeString(name),
		NameKey:   key,
		CreatedAt: time.Now(),
	}
	s.regions[region.ID] = region

	created := *region
	return &created, true, nil
}

func (s *MemoryContactStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrGroupNotFound, id)
	}
	group := *g
	return &group, nil
}

func (s *MemoryContactStore) ListGroupIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, g := range s.groups {
		if g.OwnerID == ownerID {
			ids = append(ids, g.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func matchesQuery(c *models.Contact, query ContactQuery) bool {
	if !query.Global {
		inScope := false
		for _, g := range query.GroupIDs {
			if c.InGroup(g) {
				inScope = true
				break
			}
		}
		if !inScope {
			return false
		}
	}

	if len(query.Phones) > 0 {
		found := false
		for _, p := range query.Phones {
			if c.HasPhone(p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if query.MatchName {
		if models.StringValue(c.LastName) != models.StringValue(query.LastName) ||
			models.StringValue(c.FirstName) != models.StringValue(query.FirstName) {
			return false
		}
	}

	return true
}

func sortOldestFirst(contacts []models.Contact) {
	sort.Slice(contacts, func(i, j int) bool {
		if !contacts[i].CreatedAt.Equal(contacts[j].CreatedAt) {
			return contacts[i].CreatedAt.Before(contacts[j].CreatedAt)
		}
		return contacts[i].ID < contacts[j].ID
	})
}

func copyContact(c *models.Contact) models.Contact {
	out := *c
	out.Phones = append([]string(nil), c.Phones...)
	out.GroupIDs = append([]string(nil), c.GroupIDs...)
	return out
}
