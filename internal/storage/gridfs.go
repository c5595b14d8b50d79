package storage

import (
	"bytes"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// GridFSStore implements BlobStore on a MongoDB GridFS bucket.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore creates a GridFSStore over the given database
func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, err
	}
	return &GridFSStore{bucket: bucket}, nil
}

// Save uploads the bytes under a generated reference
func (s *GridFSStore) Save(ctx context.Context, filename string, data []byte) (string, error) {
	ref := newRef(filename)
	if _, err := s.bucket.UploadFromStream(ref, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return ref, nil
}

// Open reads back the bytes stored under ref
func (s *GridFSStore) Open(ctx context.Context, ref string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStreamByName(ref, &buf); err != nil {
		if err == gridfs.ErrFileNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return buf.Bytes(), nil
}
