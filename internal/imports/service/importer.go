package service

import (
	"bytes"
	"context"
	"errors"
	"io"

	importserrors "mentorbooking/internal/imports/errors"
	"mentorbooking/internal/imports/parser"
	"mentorbooking/internal/imports/storage"
	"mentorbooking/pkg/kafka"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/validation"

	"github.com/google/uuid"
)

type MentorWriter interface {
	Put(ctx context.Context, mentor *model.Mentor) error
}

// Importer upserts mentors from a spreadsheet. A bad row is counted and
// skipped; only an unreadable file fails the whole run.
type Importer struct {
	store     storage.ObjectStore
	mentors   MentorWriter
	validator *validation.Validator
	log       *logger.Logger
	newID     func() string
}

func NewImporter(store storage.ObjectStore, mentors MentorWriter, validator *validation.Validator, log *logger.Logger) *Importer {
	return &Importer{
		store:     store,
		mentors:   mentors,
		validator: validator,
		log:       log,
		newID:     uuid.NewString,
	}
}

func (i *Importer) Import(ctx context.Context, r io.Reader) (model.ImportResult, error) {
	var result model.ImportResult

	mentors, rowErrs, err := parser.ParseMentors(r)
	if err != nil {
		return result, err
	}
	for _, rowErr := range rowErrs {
		i.log.Warn("Skipping unreadable import row", "line", rowErr.Line, "error", rowErr.Err)
	}
	result.ErrorCount = len(rowErrs)

	for _, mentor := range mentors {
		mentor.ID = i.newID()

		if err := i.validator.Struct(mentor); err != nil {
			i.log.Warn("Skipping invalid mentor row", "email", mentor.Email, "error", err)
			result.ErrorCount++
			continue
		}
		if err := i.mentors.Put(ctx, mentor); err != nil {
			i.log.Error("Failed to store imported mentor", "email", mentor.Email, "error", err)
			result.ErrorCount++
			continue
		}
		result.SuccessCount++
	}

	i.log.Info("Mentor import finished",
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
	)
	return result, nil
}

// Handle processes one mentor.import.requested message.
func (i *Importer) Handle(ctx context.Context, msg kafka.Message) error {
	var request model.MentorImport
	if err := msg.DecodeValue(&request); err != nil {
		return kafka.NewPermanentError("failed to decode import request", err)
	}
	if err := i.validator.Struct(request); err != nil {
		return kafka.NewPermanentError("invalid import request", err)
	}
	if request.Bucket != i.store.Bucket() {
		return kafka.NewPermanentError("import request names an unknown bucket", kafka.ErrInvalidMessage).
			WithDetail("bucket", request.Bucket)
	}

	data, err := i.store.Download(ctx, request.Key)
	if err != nil {
		if errors.Is(err, importserrors.ErrObjectNotFound) {
			return kafka.NewPermanentError("import object is missing", err).WithDetail("key", request.Key)
		}
		return kafka.NewTransientError("failed to download import object", err).WithDetail("key", request.Key)
	}

	result, err := i.Import(ctx, bytes.NewReader(data))
	if err != nil {
		return kafka.NewPermanentError("failed to parse import object", err).WithDetail("key", request.Key)
	}

	i.log.Info("Mentor import processed",
		"key", request.Key,
		"requested_by", request.RequestedBy,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
	)
	return nil
}
