package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWriteAndRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	key, err := store.Write(context.Background(), "products/img.jpg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if key != "products/img.jpg" {
		t.Fatalf("Write() key = %q", key)
	}

	data, err := os.ReadFile(filepath.Join(store.BasePath(), "products", "img.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("read back = %q", data)
	}

	if err := store.Remove(context.Background(), key); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.BasePath(), "products", "img.jpg")); !os.IsNotExist(err) {
		t.Fatalf("file still present after Remove()")
	}

	// Removing again is a no-op.
	if err := store.Remove(context.Background(), key); err != nil {
		t.Fatalf("Remove() second call error: %v", err)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "products/a.jpg", want: "products/a.jpg"},
		{in: "/products/a.jpg", want: "products/a.jpg"},
		{in: "./products/a.jpg", want: "products/a.jpg"},
		{in: "products/../a.jpg", want: "a.jpg"},
		{in: "../escape.jpg", wantErr: true},
		{in: "  ", wantErr: true},
		{in: ".", wantErr: true},
	}

	for _, tc := range tests {
		got, err := sanitizeKey(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("sanitizeKey(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
