package service

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/repository"
	"alcyxob/coachy/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoMedia             = errors.New("exercise has no media")
	ErrUnsupportedMedia    = errors.New("unsupported media content type")
	ErrMediaStorageMissing = errors.New("media storage is not configured")
)

// mediaExtensions lists the demo media formats the client can play.
var mediaExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
}

// UploadTicket is what the client needs to PUT media straight to storage.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MediaService manages demo videos/images attached to custom exercises.
type MediaService interface {
	RequestUpload(ctx context.Context, author Principal, exerciseID, contentType string) (*UploadTicket, error)
	ConfirmUpload(ctx context.Context, author Principal, exerciseID, objectKey string) (*domain.Exercise, error)
	GetDownloadURL(ctx context.Context, exerciseID string) (string, error)
}

type mediaService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
	expiry       time.Duration
	log          *logger.Logger
}

// NewMediaService accepts a nil fileStorage; every call then fails with ErrMediaStorageMissing.
func NewMediaService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage, log *logger.Logger) MediaService {
	if log == nil {
		log = logger.Nop()
	}
	return &mediaService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
		expiry:       storage.DefaultPresignedURLExpiry,
		log:          log.With("component", "media_service"),
	}
}

// RequestUpload issues a presigned PUT URL for a new object. The exercise is
// untouched until ConfirmUpload.
func (s *mediaService) RequestUpload(ctx context.Context, author Principal, exerciseID, contentType string) (*UploadTicket, error) {
	if s.fileStorage == nil {
		return nil, ErrMediaStorageMissing
	}
	if err := checkAuthor(author); err != nil {
		return nil, err
	}
	ext, ok := mediaExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMedia, contentType)
	}

	exercise, err := s.ownedExercise(ctx, author, exerciseID)
	if err != nil {
		return nil, err
	}

	objectKey := mediaKeyPrefix(exercise.ID) + uuid.NewString() + ext
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &UploadTicket{
		UploadURL: url,
		ObjectKey: objectKey,
		ExpiresAt: time.Now().Add(s.expiry).UTC(),
	}, nil
}

// ConfirmUpload is called after the client has PUT the object. It points the
// exercise at objectKey and removes the replaced object best-effort.
func (s *mediaService) ConfirmUpload(ctx context.Context, author Principal, exerciseID, objectKey string) (*domain.Exercise, error) {
	if s.fileStorage == nil {
		return nil, ErrMediaStorageMissing
	}
	if err := checkAuthor(author); err != nil {
		return nil, err
	}

	exercise, err := s.ownedExercise(ctx, author, exerciseID)
	if err != nil {
		return nil, err
	}
	name, ok := strings.CutPrefix(objectKey, mediaKeyPrefix(exercise.ID))
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: object key %q does not belong to exercise %q", ErrValidationFailed, objectKey, exercise.ID)
	}
	if exercise.MediaKey == objectKey {
		return exercise, nil
	}

	previous := exercise.MediaKey
	exercise.MediaKey = objectKey
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if previous != "" {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			s.log.Warn("Failed to delete replaced media", "exercise_id", exercise.ID, "object_key", previous, "error", err)
		}
	}
	s.log.Info("Exercise media confirmed", "exercise_id", exercise.ID, "object_key", objectKey)
	return exercise, nil
}

func (s *mediaService) GetDownloadURL(ctx context.Context, exerciseID string) (string, error) {
	if s.fileStorage == nil {
		return "", ErrMediaStorageMissing
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}
	if exercise.MediaKey == "" {
		return "", ErrNoMedia
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaKey, s.expiry)
}

func mediaKeyPrefix(exerciseID string) string {
	return "exercises/" + exerciseID + "/"
}

func (s *mediaService) ownedExercise(ctx context.Context, author Principal, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.Source != domain.SourceUser || exercise.CreatedBy != author.UserID {
		return nil, ErrExerciseAccessDenied
	}
	return exercise, nil
}
