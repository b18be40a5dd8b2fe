package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/config"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"go.uber.org/zap"
)

// MaxImageSize caps recipe image uploads
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// S3ImageStore uploads recipe images to the configured bucket
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.s3Config.ObjectURL(key), nil
}

// ImageService validates recipe images and hands them to the store
type ImageService struct {
	store   ImageStore
	recipes IRecipeService
	logger  *zap.Logger
}

func NewImageService(store ImageStore, recipes IRecipeService, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{store: store, recipes: recipes, logger: logger}
}

// UploadRecipeImage stores the image and points the recipe at it.
// Only the recipe's author may upload.
func (s *ImageService) UploadRecipeImage(ctx context.Context, userID, recipeID uuid.UUID, r io.Reader) (*model.Recipe, error) {
	if err := s.recipes.CheckOwner(ctx, userID, recipeID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, apperr.BadRequest("Image file is empty")
	}
	if len(data) > MaxImageSize {
		return nil, apperr.BadRequest("Image exceeds the 5MB limit")
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("Unsupported image type %s", contentType))
	}

	key := fmt.Sprintf("recipe-images/%s/%s.%s", recipeID, uuid.New(), ext)
	url, err := s.store.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s.logger.Info("recipe image uploaded", zap.String("recipe_id", recipeID.String()), zap.String("url", url))

	return s.recipes.SetImage(ctx, userID, recipeID, url)
}
