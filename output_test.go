package assist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTimestampName(t *testing.T) {
	at := time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC)

	tests := []struct {
		name string
		mime string
		want string
	}{
		{"png", "image/png", "gen-20240131-154502.png"},
		{"jpeg", "image/jpeg", "gen-20240131-154502.jpg"},
		{"unknown defaults to png", "application/octet-stream", "gen-20240131-154502.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimestampName(at, tt.mime); got != tt.want {
				t.Errorf("TimestampName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirStore_Save(t *testing.T) {
	root := filepath.Join(t.TempDir(), "outputs")
	store := &DirStore{Root: root}

	data := []byte("image bytes")
	path, err := store.Save(context.Background(), data, "gen-20240131-154502.png", "image/png")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := filepath.Join(root, "gen-20240131-154502.png"); path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("saved bytes = %q, want %q", got, data)
	}
}

func TestSaveFirstImage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("nil store", func(t *testing.T) {
		_, err := SaveFirstImage(ctx, nil, &GenerateResult{}, now)
		if !errors.Is(err, ErrStoreNotConfigured) {
			t.Errorf("expected ErrStoreNotConfigured, got %v", err)
		}
	})

	t.Run("no images", func(t *testing.T) {
		store := &DirStore{Root: t.TempDir()}
		_, err := SaveFirstImage(ctx, store, &GenerateResult{}, now)
		if !errors.Is(err, ErrNoImage) {
			t.Errorf("expected ErrNoImage, got %v", err)
		}
		_, err = SaveFirstImage(ctx, store, nil, now)
		if !errors.Is(err, ErrNoImage) {
			t.Errorf("expected ErrNoImage for nil result, got %v", err)
		}
	})

	t.Run("keeps only the first image", func(t *testing.T) {
		root := t.TempDir()
		store := &DirStore{Root: root}
		result := &GenerateResult{
			Images: []GeneratedImage{
				{Data: []byte("first"), MIMEType: "image/png", Index: 0},
				{Data: []byte("second"), MIMEType: "image/png", Index: 1},
			},
		}

		path, err := SaveFirstImage(ctx, store, result, now)
		if err != nil {
			t.Fatalf("SaveFirstImage() error = %v", err)
		}
		if want := filepath.Join(root, "gen-20240601-090000.png"); path != want {
			t.Errorf("path = %q, want %q", path, want)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading saved file: %v", err)
		}
		if string(got) != "first" {
			t.Errorf("saved bytes = %q, want %q", got, "first")
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected exactly one saved file, got %d", len(entries))
		}
	})
}

func TestMIMETypeFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"photo.png", "image/png"},
		{"photo.JPG", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"photo.webp", "image/webp"},
		{"photo.gif", "image/gif"},
		{"photo.bmp", "image/png"},
		{"noext", "image/png"},
	}

	for _, tt := range tests {
		if got := MIMETypeFromPath(tt.path); got != tt.want {
			t.Errorf("MIMETypeFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
