// Package storage holds the file backends for project documents and
// avatars: a local uploads directory and an optional "drive" backend on a
// Google Cloud Storage bucket.
package storage

import (
	"io"

	"robfu/internal/models"
)

// Storage persists an uploaded file and hands back an opaque locator that
// is stored on the Document record.
type Storage interface {
	Type() models.StorageType
	// Store writes the file under the project's namespace and returns its
	// locator.
	Store(projectID, filename string, r io.Reader) (locator string, err error)
	// Open returns the file contents for a locator produced by Store.
	Open(locator string) (io.ReadCloser, error)
}
