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

type TemplateService struct {
	templates *mongo.Collection
	funnels   *mongo.Collection
	pages     *mongo.Collection
}

func NewTemplateService(database *mongo.Database) *TemplateService {
	return &TemplateService{
		templates: database.Collection(db.TemplatesCollection),
		funnels:   database.Collection(db.FunnelsCollection),
		pages:     database.Collection(db.PagesCollection),
	}
}

// List returns the template library. Templates are public reference data.
func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	cursor, err := s.templates.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve templates: %w", err)
	}
	defer cursor.Close(ctx)

	templates := []models.Template{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("error decoding templates: %w", err)
	}
	return templates, nil
}

// pageFromBlueprint materializes a blueprint into a new Page with a fresh
// identifier and timestamps; content is copied verbatim.
func pageFromBlueprint(bp models.TemplatePage, funnelID string, now time.Time) models.Page {
	return models.Page{
		ID:          uuid.NewString(),
		FunnelID:    funnelID,
		Name:        bp.Name,
		Slug:        bp.Slug,
		Elements:    bp.Elements,
		Styles:      bp.Styles,
		SEOSettings: bp.SEOSettings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone copies a template into a new funnel owned by userID: funnel first,
// then one page per blueprint, then the funnel's page list. The sequence is
// not transactional; a mid-clone failure leaves the writes that already
// committed.
func (s *TemplateService) Clone(ctx context.Context, templateID, userID string) (models.Funnel, error) {
	var tmpl models.Template
	err := s.templates.FindOne(ctx, bson.M{"_id": templateID}).Decode(&tmpl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Funnel{}, fmt.Errorf("%w: template not found", apperr.ErrNotFound)
	}
	if err != nil {
		return models.Funnel{}, err
	}

	settings := tmpl.Settings
	if settings == nil {
		settings = map[string]interface{}{}
	}

	now := time.Now().UTC()
	funnel := models.Funnel{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        tmpl.Name + " (Copy)",
		Description: tmpl.Description,
		Pages:       []string{},
		Settings:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
		Published:   false,
	}
	if _, err := s.funnels.InsertOne(ctx, funnel); err != nil {
		return models.Funnel{}, fmt.Errorf("failed to create funnel from template: %w", err)
	}

	pageIDs := make([]string, 0, len(tmpl.Pages))
	for _, bp := range tmpl.Pages {
		page := pageFromBlueprint(bp, funnel.ID, now)
		if _, err := s.pages.InsertOne(ctx, page); err != nil {
			return models.Funnel{}, fmt.Errorf("failed to clone template page %q: %w", bp.Name, err)
		}
		pageIDs = append(pageIDs, page.ID)
	}

	if _, err := s.funnels.UpdateOne(ctx, bson.M{"_id": funnel.ID}, bson.M{"$set": bson.M{"pages": pageIDs}}); err != nil {
		return models.Funnel{}, fmt.Errorf("failed to attach cloned pages: %w", err)
	}

	funnel.Pages = pageIDs
	return funnel, nil
}
