package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/db"
	"github.com/flowfunnels/flowfunnels-api/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PageService struct {
	funnels *mongo.Collection
	pages   *mongo.Collection
}

func NewPageService(database *mongo.Database) *PageService {
	return &PageService{
		funnels: database.Collection(db.FunnelsCollection),
		pages:   database.Collection(db.PagesCollection),
	}
}

// Slugify returns the default slug for a page name: lower-cased, with
// spaces replaced by hyphens.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// PageUpdate carries a partial page update. Nil fields are left untouched.
// Elements, styles and SEO settings are stored verbatim, never inspected.
type PageUpdate struct {
	Name        *string
	Elements    *[]map[string]interface{}
	Styles      *map[string]interface{}
	SEOSettings *map[string]interface{}
}

func (u PageUpdate) setDoc(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Elements != nil {
		set["elements"] = *u.Elements
	}
	if u.Styles != nil {
		set["styles"] = *u.Styles
	}
	if u.SEOSettings != nil {
		set["seo_settings"] = *u.SEOSettings
	}
	return set
}

// ownedFunnel fetches a funnel by id and owner for funnel-scoped page
// operations; absent and foreign funnels both report not found.
func (s *PageService) ownedFunnel(ctx context.Context, funnelID, userID string) (models.Funnel, error) {
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

// Create inserts a page and registers it on the funnel's page list. The two
// writes are sequential, not atomic.
func (s *PageService) Create(ctx context.Context, funnelID, userID, name, slug string) (models.Page, error) {
	if _, err := s.ownedFunnel(ctx, funnelID, userID); err != nil {
		return models.Page{}, err
	}

	if slug == "" {
		slug = Slugify(name)
	}

	now := time.Now().UTC()
	page := models.Page{
		ID:          uuid.NewString(),
		FunnelID:    funnelID,
		Name:        name,
		Slug:        slug,
		Elements:    []map[string]interface{}{},
		Styles:      map[string]interface{}{},
		SEOSettings: map[string]interface{}{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.pages.InsertOne(ctx, page); err != nil {
		return models.Page{}, fmt.Errorf("failed to create page: %w", err)
	}

	_, err := s.funnels.UpdateOne(ctx, bson.M{"_id": funnelID},
		bson.M{"$push": bson.M{"pages": page.ID}, "$set": bson.M{"updated_at": now}})
	if err != nil {
		return models.Page{}, fmt.Errorf("page created but funnel link failed: %w", err)
	}

	return page, nil
}

// Get resolves the page, then checks ownership through its parent funnel.
// Unlike funnel lookups, a page whose funnel belongs to someone else reports
// access denied rather than not found.
func (s *PageService) Get(ctx context.Context, pageID, userID string) (models.Page, error) {
	var page models.Page
	err := s.pages.FindOne(ctx, bson.M{"_id": pageID}).Decode(&page)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Page{}, fmt.Errorf("%w: page not found", apperr.ErrNotFound)
	}
	if err != nil {
		return models.Page{}, err
	}

	err = s.funnels.FindOne(ctx, bson.M{"_id": page.FunnelID, "user_id": userID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Page{}, fmt.Errorf("%w: access denied", apperr.ErrForbidden)
	}
	if err != nil {
		return models.Page{}, err
	}

	return page, nil
}

// Update applies a partial update and bumps the parent funnel's updated_at.
func (s *PageService) Update(ctx context.Context, pageID, userID string, update PageUpdate) error {
	page, err := s.Get(ctx, pageID, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err := s.pages.UpdateOne(ctx, bson.M{"_id": pageID}, bson.M{"$set": update.setDoc(now)}); err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	_, err = s.funnels.UpdateOne(ctx, bson.M{"_id": page.FunnelID}, bson.M{"$set": bson.M{"updated_at": now}})
	if err != nil {
		return fmt.Errorf("page updated but funnel touch failed: %w", err)
	}
	return nil
}

// Delete removes the page and pulls its id from the funnel's page list.
func (s *PageService) Delete(ctx context.Context, pageID, userID string) error {
	page, err := s.Get(ctx, pageID, userID)
	if err != nil {
		return err
	}

	if _, err := s.pages.DeleteOne(ctx, bson.M{"_id": pageID}); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.funnels.UpdateOne(ctx, bson.M{"_id": page.FunnelID},
		bson.M{"$pull": bson.M{"pages": pageID}, "$set": bson.M{"updated_at": now}})
	if err != nil {
		return fmt.Errorf("page deleted but funnel unlink failed: %w", err)
	}
	return nil
}

// ListByFunnel returns all pages of a funnel owned by userID.
func (s *PageService) ListByFunnel(ctx context.Context, funnelID, userID string) ([]models.Page, error) {
	if _, err := s.ownedFunnel(ctx, funnelID, userID); err != nil {
		return nil, err
	}

	cursor, err := s.pages.Find(ctx, bson.M{"funnel_id": funnelID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pages: %w", err)
	}
	defer cursor.Close(ctx)

	pages := []models.Page{}
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, fmt.Errorf("error decoding pages: %w", err)
	}
	return pages, nil
}
