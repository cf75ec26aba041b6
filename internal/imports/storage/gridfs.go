package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	importserrors "mentorbooking/internal/imports/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ObjectStore keeps uploaded import files until the importer picks them up.
type ObjectStore interface {
	Bucket() string
	Upload(ctx context.Context, key string, r io.Reader) error
	Download(ctx context.Context, key string) ([]byte, error)
}

type gridFSStore struct {
	bucket *gridfs.Bucket
	name   string
}

func NewGridFSStore(db *mongo.Database, bucketName string) (ObjectStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket %s: %w", bucketName, err)
	}
	return &gridFSStore{bucket: bucket, name: bucketName}, nil
}

func (s *gridFSStore) Bucket() string {
	return s.name
}

func (s *gridFSStore) Upload(ctx context.Context, key string, r io.Reader) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}
	if _, err := s.bucket.UploadFromStream(key, r); err != nil {
		return fmt.Errorf("failed to upload %s to %s: %w", key, s.name, err)
	}
	return nil
}

func (s *gridFSStore) Download(ctx context.Context, key string) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStreamByName(key, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, importserrors.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to download %s from %s: %w", key, s.name, err)
	}
	return buf.Bytes(), nil
}
