// Package storage holds image attachments for posts. Callers hand over
// bytes and get back an opaque reference they can store on the post and
// later resolve to the original bytes.
package storage

import (
	"context"
	"errors"
	"path"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a reference resolves to nothing.
var ErrNotFound = errors.New("blob not found")

// BlobStore accepts bytes and returns a retrievable reference.
type BlobStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
	Open(ctx context.Context, ref string) ([]byte, error)
}

// newRef builds a collision-free reference, keeping the original
// extension so content type can be guessed on the way out.
func newRef(filename string) string {
	return uuid.NewString() + path.Ext(filename)
}
