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

type AnalyticsService struct {
	events  *mongo.Collection
	funnels *mongo.Collection
}

func NewAnalyticsService(database *mongo.Database) *AnalyticsService {
	return &AnalyticsService{
		events:  database.Collection(db.AnalyticsCollection),
		funnels: database.Collection(db.FunnelsCollection),
	}
}

// Track appends an event record. Tracking is unauthenticated (events fire
// from public funnel pages) and does not verify that the funnel or page
// exists; a dangling reference only skews that funnel's numbers.
func (s *AnalyticsService) Track(ctx context.Context, funnelID, pageID, eventType string, metadata map[string]interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	event := models.AnalyticsEvent{
		ID:        uuid.NewString(),
		FunnelID:  funnelID,
		PageID:    pageID,
		EventType: eventType,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}

	if _, err := s.events.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to track event: %w", err)
	}
	return nil
}

// summarizeEvents counts the known event types with exact string matching.
// Conversion rate is form submissions per page view; 0 when there are no
// page views.
func summarizeEvents(funnelID string, events []models.AnalyticsEvent) models.FunnelSummary {
	summary := models.FunnelSummary{FunnelID: funnelID}
	for _, e := range events {
		switch e.EventType {
		case models.EventPageView:
			summary.PageViews++
		case models.EventButtonClick:
			summary.ButtonClicks++
		case models.EventFormSubmit:
			summary.FormSubmissions++
		}
	}

	if summary.PageViews > 0 {
		summary.ConversionRate = float64(summary.FormSubmissions) / float64(summary.PageViews) * 100
	}
	return summary
}

// Summarize aggregates a funnel's events for its owner.
func (s *AnalyticsService) Summarize(ctx context.Context, funnelID, userID string) (models.FunnelSummary, error) {
	err := s.funnels.FindOne(ctx, bson.M{"_id": funnelID, "user_id": userID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.FunnelSummary{}, fmt.Errorf("%w: funnel not found", apperr.ErrNotFound)
	}
	if err != nil {
		return models.FunnelSummary{}, err
	}

	cursor, err := s.events.Find(ctx, bson.M{"funnel_id": funnelID})
	if err != nil {
		return models.FunnelSummary{}, fmt.Errorf("failed to retrieve events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.AnalyticsEvent
	if err := cursor.All(ctx, &events); err != nil {
		return models.FunnelSummary{}, fmt.Errorf("error decoding events: %w", err)
	}

	return summarizeEvents(funnelID, events), nil
}
