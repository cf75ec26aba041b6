package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"mentorbooking/internal/imports/storage"
	"mentorbooking/pkg/config"
	apperrors "mentorbooking/pkg/errors"
	"mentorbooking/pkg/kafka"
	"mentorbooking/pkg/middleware"
	"mentorbooking/pkg/model"

	"github.com/google/uuid"
)

type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type UploadService interface {
	Upload(ctx context.Context, filename string, r io.Reader, requestedBy string) (*model.MentorImport, error)
}

type uploadService struct {
	store     storage.ObjectStore
	publisher Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewUploadService(store storage.ObjectStore, publisher Publisher, cfg *config.Config) UploadService {
	return &uploadService{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Upload stores the file and queues it for the importer. A failed publish
// leaves the stored object in place.
func (s *uploadService) Upload(ctx context.Context, filename string, r io.Reader, requestedBy string) (*model.MentorImport, error) {
	name := cleanFilename(filename)
	if name == "" {
		return nil, apperrors.InvalidInput("Uploaded file must have a name")
	}

	key := fmt.Sprintf("imports/%s/%s", uuid.NewString(), name)
	if err := s.store.Upload(ctx, key, r); err != nil {
		s.cfg.Log.Error("Failed to store mentor import",
			"bucket", s.store.Bucket(),
			"key", key,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to store uploaded file", err)
	}

	request := &model.MentorImport{
		Bucket:      s.store.Bucket(),
		Key:         key,
		RequestedBy: requestedBy,
		RequestedAt: s.now().UTC(),
	}

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(request).
		WithEventType(model.MentorImportRequestedEvent).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		BuildE()
	if err == nil {
		err = s.publisher.Publish(ctx, msg)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to queue mentor import",
			"bucket", request.Bucket,
			"key", key,
			"error", err,
		)
		return nil, apperrors.DependencyFailure("Import queue", err).
			WithDetails(map[string]any{"bucket": request.Bucket, "key": key})
	}

	s.cfg.Log.Info("Mentor import queued successfully",
		"bucket", request.Bucket,
		"key", key,
		"requested_by", requestedBy,
	)
	return request, nil
}

func cleanFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
