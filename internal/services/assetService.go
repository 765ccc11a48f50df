package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/config"
	"github.com/flowfunnels/flowfunnels-api/internal/db"
	"github.com/flowfunnels/flowfunnels-api/internal/models"
	"github.com/flowfunnels/flowfunnels-api/internal/utils"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AssetService stores uploaded media (page images, videos) in object
// storage with a metadata document per asset.
type AssetService struct {
	assets *mongo.Collection
	store  *minio.Client
	cfg    config.Storage
}

func NewAssetService(database *mongo.Database, store *minio.Client, cfg config.Storage) *AssetService {
	return &AssetService{
		assets: database.Collection(db.AssetsCollection),
		store:  store,
		cfg:    cfg,
	}
}

func (s *AssetService) objectName(asset models.Asset) string {
	return fmt.Sprintf("%s_%s", asset.ID, asset.Filename)
}

// Upload writes the object and its metadata document in parallel. If the
// metadata insert fails the uploaded object is removed again, best effort.
func (s *AssetService) Upload(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (models.Asset, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return models.Asset{}, fmt.Errorf("%w: failed to open file", apperr.ErrValidation)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return models.Asset{}, errors.New("failed to read file")
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}

	asset := models.Asset{
		ID:          uuid.NewString(),
		UserID:      userID,
		Filename:    fileHeader.Filename,
		Size:        int64(len(fileBytes)),
		ContentType: fileHeader.Header.Get("Content-Type"),
		CreatedAt:   time.Now().UTC(),
	}
	objectName := s.objectName(asset)
	asset.URL = fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectName)

	_, errs := utils.RunParallelTasks([]utils.ParallelTask{
		func() (interface{}, error) {
			_, err := s.store.PutObject(ctx, s.cfg.Bucket, objectName,
				bytes.NewReader(fileBytes), asset.Size,
				minio.PutObjectOptions{ContentType: asset.ContentType})
			return nil, err
		},
		func() (interface{}, error) {
			_, err := s.assets.InsertOne(ctx, asset)
			return nil, err
		},
	})
	storeErr, metaErr := errs[0], errs[1]

	if storeErr != nil {
		if metaErr == nil {
			// drop the dangling metadata document
			s.assets.DeleteOne(context.Background(), bson.M{"_id": asset.ID})
		}
		return models.Asset{}, fmt.Errorf("failed to upload asset to storage: %w", storeErr)
	}
	if metaErr != nil {
		// drop the orphaned object
		go func() {
			s.store.RemoveObject(context.Background(), s.cfg.Bucket, objectName, minio.RemoveObjectOptions{})
		}()
		return models.Asset{}, fmt.Errorf("failed to save asset metadata: %w", metaErr)
	}

	return asset, nil
}

// List returns all assets owned by userID.
func (s *AssetService) List(ctx context.Context, userID string) ([]models.Asset, error) {
	cursor, err := s.assets.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve assets: %w", err)
	}
	defer cursor.Close(ctx)

	assets := []models.Asset{}
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, fmt.Errorf("error decoding assets: %w", err)
	}
	return assets, nil
}

// Delete removes the object and metadata document in parallel. Absent and
// foreign assets both report not found.
func (s *AssetService) Delete(ctx context.Context, assetID, userID string) error {
	var asset models.Asset
	err := s.assets.FindOne(ctx, bson.M{"_id": assetID, "user_id": userID}).Decode(&asset)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: asset not found", apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	objectName := s.objectName(asset)
	_, errs := utils.RunParallelTasks([]utils.ParallelTask{
		func() (interface{}, error) {
			return nil, s.store.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{})
		},
		func() (interface{}, error) {
			_, err := s.assets.DeleteOne(ctx, bson.M{"_id": assetID})
			return nil, err
		},
	})
	storeErr, metaErr := errs[0], errs[1]

	switch {
	case storeErr != nil && metaErr != nil:
		return errors.New("failed to delete from both storage and database")
	case storeErr != nil:
		return fmt.Errorf("failed to delete from storage: %w", storeErr)
	case metaErr != nil:
		return fmt.Errorf("failed to delete from database: %w", metaErr)
	}
	return nil
}
