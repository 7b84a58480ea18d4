package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"robfu/internal/models"
)

// Drive stores files in a GCS bucket. The locator is the object key.
type Drive struct {
	client *gcs.Client
	bucket string
}

func NewDrive(ctx context.Context, bucket string) (*Drive, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Drive{client: client, bucket: bucket}, nil
}

func (d *Drive) Type() models.StorageType { return models.StorageDrive }

func (d *Drive) Store(projectID, filename string, r io.Reader) (string, error) {
	key := path.Join(projectID, uuid.NewString()+path.Ext(filename))

	w := d.client.Bucket(d.bucket).Object(key).NewWriter(context.Background())
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", key, err)
	}
	return key, nil
}

func (d *Drive) Open(locator string) (io.ReadCloser, error) {
	rc, err := d.client.Bucket(d.bucket).Object(locator).NewReader(context.Background())
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", locator, err)
	}
	return rc, nil
}
