package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoContactStore persists contacts, regions and groups in MongoDB
type MongoContactStore struct {
	contacts *mongo.Collection
	regions  *mongo.Collection
	groups   *mongo.Collection
	logger   *logging.SafeLogger
}

// NewMongoContactStore creates a store over the configured collections of db
func NewMongoContactStore(db *mongo.Database, logger *logging.SafeLogger) *MongoContactStore {
	return &MongoContactStore{
		contacts: db.Collection(config.AppConfig.ContactCollection),
		regions:  db.Collection(config.AppConfig.RegionCollection),
		groups:   db.Collection(config.AppConfig.GroupCollection),
		logger:   logger,
	}
}

func (s *MongoContactStore) FindContacts(ctx context.Context, query ContactQuery) ([]models.Contact, error) {
	filter := bson.M{}
	if !query.Global {
		filter["group_ids"] = bson.M{"$in": nonNil(query.GroupIDs)}
	}
	if len(query.Phones) > 0 {
		filter["phones"] = bson.M{"$in": query.Phones}
	}
	if query.MatchName {
		filter["last_name"] = nameFilter(query.LastName)
		filter["first_name"] = nameFilter(query.FirstName)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}

	var contacts []models.Contact
	if err := utils.FindAllWithTimeout(ctx, s.contacts, filter, opts, &contacts, utils.DefaultQueryTimeout); err != nil {
		s.logger.Error("failed to find contacts", zap.Error(err))
		return nil, fmt.Errorf("failed to find contacts: %w", err)
	}
	return contacts, nil
}

func (s *MongoContactStore) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	err := utils.FindOneWithTimeout(ctx, s.contacts, bson.M{"_id": id}, &contact, utils.DefaultQueryTimeout)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrContactNotFound, id)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

func (s *MongoContactStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = primitive.NewObjectID().Hex()
	}
	if contact.Phones == nil {
		contact.Phones = []string{}
	}
	if contact.GroupIDs == nil {
		contact.GroupIDs = []string{}
	}
	contact.BeforeCreate()

	if _, err := utils.InsertOneWithTimeout(ctx, s.contacts, contact, utils.DefaultQueryTimeout); err != nil {
		s.logger.Error("failed to create contact", zap.Error(err), zap.String("contact_id", contact.ID))
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (s *MongoContactStore) UpdateContact(ctx context.Context, id string, changes *models.ContactChanges) (*models.Contact, error) {
	update := contactUpdate(changes)

	result, err := utils.UpdateOneWithTimeout(ctx, s.contacts, bson.M{"_id": id}, update, utils.DefaultQueryTimeout)
	if err != nil {
		s.logger.Error("failed to update contact", zap.Error(err), zap.String("contact_id", id))
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrContactNotFound, id)
	}

	return s.GetContact(ctx, id)
}

// contactUpdate translates a merge into a single update document.
// A group move replaces group_ids, so it cannot share the $addToSet on that field.
func contactUpdate(changes *models.ContactChanges) bson.M {
	set := bson.M{"updated_at": time.Now()}
	addToSet := bson.M{}

	if changes.LastName != nil {
		set["last_name"] = *changes.LastName
	}
	if changes.FirstName != nil {
		set["first_name"] = *changes.FirstName
	}
	if changes.MiddleName != nil {
		set["middle_name"] = *changes.MiddleName
	}
	if changes.RegionID != nil {
		set["region_id"] = *changes.RegionID
	}
	if changes.Status != nil {
		set["status"] = *changes.Status
	}
	if len(changes.AddPhones) > 0 {
		addToSet["phones"] = bson.M{"$each": changes.AddPhones}
	}

	if changes.SetGroupIDs != nil {
		groups := append([]string(nil), changes.SetGroupIDs...)
		for _, g := range changes.AddGroupIDs {
			if !containsString(groups, g) {
				groups = append(groups, g)
			}
		}
		set["group_ids"] = groups
	} else if len(changes.AddGroupIDs) > 0 {
		addToSet["group_ids"] = bson.M{"$each": changes.AddGroupIDs}
	}

	update := bson.M{"$set": set}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	return update
}

func (s *MongoContactStore) FindRegionByName(ctx context.Context, name string) (*models.Region, error) {
	var region models.Region
	err := utils.FindOneWithTimeout(ctx, s.regions, bson.M{"name_key": utils.RegionNameKey(name)}, &region, utils.DefaultQueryTimeout)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrRegionNotFound, name)
		}
		return nil, fmt.Errorf("failed to find region: %w", err)
	}
	return &region, nil
}

func (s *MongoContactStore) CreateRegion(ctx context.Context, name string) (*models.Region, bool, error) {
	region := &models.Region{
		ID:        primitive.NewObjectID().Hex(),
		Name:      utils.SanitizeString(name),
		NameKey:   utils.RegionNameKey(name),
		CreatedAt: time.Now(),
	}

	if _, err := utils.InsertOneWithTimeout(ctx, s.regions, region, utils.DefaultQueryTimeout); err != nil {
		// a concurrent import created it first
		if utils.IsDuplicateKey(err) {
			existing, findErr := s.FindRegionByName(ctx, name)
			return existing, false, findErr
		}
		s.logger.Error("failed to create region", zap.Error(err), zap.String("region", region.Name))
		return nil, false, fmt.Errorf("failed to create region: %w", err)
	}
	return region, true, nil
}

func (s *MongoContactStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := utils.FindOneWithTimeout(ctx, s.groups, bson.M{"_id": id}, &group, utils.DefaultQueryTimeout)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrGroupNotFound, id)
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

func (s *MongoContactStore) ListGroupIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	var groups []models.Group
	if err := utils.FindAllWithTimeout(ctx, s.groups, bson.M{"owner_id": ownerID}, opts, &groups, utils.DefaultQueryTimeout); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

func nameFilter(name *string) interface{} {
	if name == nil {
		return nil
	}
	return *name
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
