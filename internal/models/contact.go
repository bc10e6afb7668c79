package models

import (
	"strings"
	"time"
)

// Contact statuses
const (
	ContactStatusNew = "NEW"
	ContactStatusOld = "OLD"
)

// Contact represents a stored contact that campaigns can be sent to
type Contact struct {
	ID         string    `bson:"_id" json:"id"`
	OwnerID    string    `bson:"owner_id" json:"owner_id"`
	LastName   *string   `bson:"last_name,omitempty" json:"last_name,omitempty"`
	FirstName  *string   `bson:"first_name,omitempty" json:"first_name,omitempty"`
	MiddleName *string   `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	Phones     []string  `bson:"phones" json:"phones"`
	RegionID   string    `bson:"region_id,omitempty" json:"region_id,omitempty"`
	GroupIDs   []string  `bson:"group_ids" json:"group_ids"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// HasPhone reports whether the contact already stores the given phone
func (c *Contact) HasPhone(phone string) bool {
	for _, p := range c.Phones {
		if p == phone {
			return true
		}
	}
	return false
}

// InGroup reports whether the contact is a member of the group
func (c *Contact) InGroup(groupID string) bool {
	for _, g := range c.GroupIDs {
		if g == groupID {
			return true
		}
	}
	return false
}

// BeforeCreate sets the creation and update timestamps
func (c *Contact) BeforeCreate() {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

// ContactChanges describes a field-level merge onto an existing contact.
// Nil pointers and empty slices leave the stored value untouched.
type ContactChanges struct {
	LastName    *string  `json:"last_name,omitempty"`
	FirstName   *string  `json:"first_name,omitempty"`
	MiddleName  *string  `json:"middle_name,omitempty"`
	RegionID    *string  `json:"region_id,omitempty"`
	Status      *string  `json:"status,omitempty"`
	AddPhones   []string `json:"add_phones,omitempty"`
	AddGroupIDs []string `json:"add_group_ids,omitempty"`
	// SetGroupIDs replaces the whole membership list when non-nil.
	SetGroupIDs []string `json:"set_group_ids,omitempty"`
}

// IsEmpty reports whether applying the changes would be a no-op
func (c *ContactChanges) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.LastName == nil && c.FirstName == nil && c.MiddleName == nil &&
		c.RegionID == nil && c.Status == nil &&
		len(c.AddPhones) == 0 && len(c.AddGroupIDs) == 0 && c.SetGroupIDs == nil
}

// Fields lists the names of the fields touched by the changes, for audit messages
func (c *ContactChanges) Fields() []string {
	if c == nil {
		return nil
	}
	var fields []string
	if c.LastName != nil || c.FirstName != nil || c.MiddleName != nil {
		fields = append(fields, "name")
	}
	if c.RegionID != nil {
		fields = append(fields, "region")
	}
	if c.Status != nil {
		fields = append(fields, "status")
	}
	if len(c.AddPhones) > 0 {
		fields = append(fields, "phones")
	}
	if len(c.AddGroupIDs) > 0 || c.SetGroupIDs != nil {
		fields = append(fields, "groups")
	}
	return fields
}

// Apply merges the changes into the contact in place
func (c *ContactChanges) Apply(contact *Contact) {
	if c == nil || contact == nil {
		return
	}
	if c.LastName != nil {
		contact.LastName = c.LastName
	}
	if c.FirstName != nil {
		contact.FirstName = c.FirstName
	}
	if c.MiddleName != nil {
		contact.MiddleName = c.MiddleName
	}
	if c.RegionID != nil {
		contact.RegionID = *c.RegionID
	}
	if c.Status != nil {
		contact.Status = *c.Status
	}
	for _, p := range c.AddPhones {
		if !contact.HasPhone(p) {
			contact.Phones = append(contact.Phones, p)
		}
	}
	if c.SetGroupIDs != nil {
		contact.GroupIDs = append([]string(nil), c.SetGroupIDs...)
	}
	for _, g := range c.AddGroupIDs {
		if !contact.InGroup(g) {
			contact.GroupIDs = append(contact.GroupIDs, g)
		}
	}
	contact.UpdatedAt = time.Now()
}

// Region is a named geographic region a contact belongs to
type Region struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	NameKey   string    `bson:"name_key" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Group is a contact list owned by a user; imports always target one group
type Group struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// StringPtr returns a pointer to a trimmed copy of s, or nil when s is blank
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, returning "" for nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
