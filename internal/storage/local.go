package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"robfu/internal/models"
)

// Local stores files under <base>/<projectID>/<uuid><ext>. The locator is
// the file path.
type Local struct {
	base string
}

func NewLocal(base string) *Local {
	return &Local{base: base}
}

func (l *Local) Type() models.StorageType { return models.StorageLocal }

func (l *Local) Store(projectID, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(l.base, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path, nil
}

func (l *Local) Open(locator string) (io.ReadCloser, error) {
	return os.Open(locator)
}
