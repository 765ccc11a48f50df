package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/db"
	"github.com/flowfunnels/flowfunnels-api/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type FunnelService struct {
	funnels *mongo.Collection
	pages   *mongo.Collection
}

func NewFunnelService(database *mongo.Database) *FunnelService {
	return &FunnelService{
		funnels: database.Collection(db.FunnelsCollection),
		pages:   database.Collection(db.PagesCollection),
	}
}

// FunnelUpdate carries a partial funnel update. Nil fields are left untouched.
type FunnelUpdate struct {
	Name        *string
	Description *string
	Settings    *map[string]interface{}
	Published   *bool
}

// setDoc builds the $set document from the fields present in the update.
func (u FunnelUpdate) setDoc(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Settings != nil {
		set["settings"] = *u.Settings
	}
	if u.Published != nil {
		set["published"] = *u.Published
	}
	return set
}

// Create inserts an empty unpublished funnel owned by userID.
func (s *FunnelService) Create(ctx context.Context, userID, name, description string) (models.Funnel, error) {
	now := time.Now().UTC()
	funnel := models.Funnel{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Pages:       []string{},
		Settings:    map[string]interface{}{},
		CreatedAt:   now,
		UpdatedAt:   now,
		Published:   false,
	}

	if _, err := s.funnels.InsertOne(ctx, funnel); err != nil {
		return models.Funnel{}, fmt.Errorf("failed to create funnel: %w", err)
	}
	return funnel, nil
}

// List returns all funnels owned by userID.
func (s *FunnelService) List(ctx context.Context, userID string) ([]models.Funnel, error) {
	cursor, err := s.funnels.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve funnels: %w", err)
	}
	defer cursor.Close(ctx)

	funnels := []models.Funnel{}
	if err := cursor.All(ctx, &funnels); err != nil {
		return nil, fmt.Errorf("error decoding funnels: %w", err)
	}
	return funnels, nil
}

// Get fetches a funnel owned by userID. A funnel that is absent and one
// owned by someone else both report not found, so non-owners cannot probe
// for existence.
func (s *FunnelService) Get(ctx context.Context, funnelID, userID string) (models.Funnel, error) {
	var funnel models.Funnel
	err := s.funnels.FindOne(ctx, bson.M{"_id": funnelID, "user_id": userID}).Decode(&funnel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Funnel{}, fmt.Errorf("%w: funnel not found", apperr.ErrNotFound)
	}
	if err != nil {
		return models.Funnel{}, err
	}
	return funnel, nil
}

// Update applies a partial update; updated_at is always refreshed.
func (s *FunnelService) Update(ctx context.Context, funnelID, userID string, update FunnelUpdate) error {
	if _, err := s.Get(ctx, funnelID, userID); err != nil {
		return err
	}

	_, err := s.funnels.UpdateOne(ctx, bson.M{"_id": funnelID}, bson.M{"$set": update.setDoc(time.Now().UTC())})
	if err != nil {
		return fmt.Errorf("failed to update funnel: %w", err)
	}
	return nil
}

// Delete removes the funnel and cascades to its pages. The cascade is best
// effort: the funnel delete commits first and is not rolled back if the
// page cleanup fails.
func (s *FunnelService) Delete(ctx context.Context, funnelID, userID string) error {
	result, err := s.funnels.DeleteOne(ctx, bson.M{"_id": funnelID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete funnel: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: funnel not found", apperr.ErrNotFound)
	}

	if _, err := s.pages.DeleteMany(ctx, bson.M{"funnel_id": funnelID}); err != nil {
		return fmt.Errorf("funnel deleted but page cleanup failed: %w", err)
	}
	return nil
}
