package storage

import (
	"io"
	"strings"
	"testing"

	"robfu/internal/models"
)

func TestLocalStoreAndOpen(t *testing.T) {
	l := NewLocal(t.TempDir())
	if l.Type() != models.StorageLocal {
		t.Fatalf("type = %s", l.Type())
	}

	locator, err := l.Store("p-1", "materials.xlsx", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasSuffix(locator, ".xlsx") {
		t.Fatalf("locator should keep the extension: %s", locator)
	}

	r, err := l.Open(locator)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("payload = %q", data)
	}
}

func TestLocalStoreUniqueLocators(t *testing.T) {
	l := NewLocal(t.TempDir())

	a, err := l.Store("p-1", "doc.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	b, err := l.Store("p-1", "doc.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if a == b {
		t.Fatalf("same filename produced the same locator")
	}
}

func TestLocalOpenMissing(t *testing.T) {
	l := NewLocal(t.TempDir())
	if _, err := l.Open("/no/such/file"); err == nil {
		t.Fatalf("opening a missing file must fail")
	}
}
