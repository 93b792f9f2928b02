package assist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultOutputDir is where generated images land unless overridden.
const DefaultOutputDir = "outputs"

// ErrStoreNotConfigured is returned when save operations are attempted
// without a configured image store.
var ErrStoreNotConfigured = errors.New("image store not configured")

// ImageStore persists generated images. Implementations can wrap a local
// directory or an existing cloud storage client (GCS, S3, etc.).
type ImageStore interface {
	// Save writes image data under the given name and returns the full
	// path or URL of the saved object. The contentType is the image's
	// MIME type (e.g., "image/png").
	Save(ctx context.Context, data []byte, name string, contentType string) (string, error)
}

// DirStore is an ImageStore backed by a local directory, created on demand.
type DirStore struct {
	// Root directory. Empty means DefaultOutputDir.
	Root string
}

// Save writes data to Root/name and returns the path.
func (s *DirStore) Save(ctx context.Context, data []byte, name string, contentType string) (string, error) {
	root := s.Root
	if root == "" {
		root = DefaultOutputDir
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// TimestampName returns the output filename for an image generated at t,
// e.g. "gen-20240131-154502.png".
func TimestampName(t time.Time, mimeType string) string {
	return "gen-" + t.Format("20060102-150405") + "." + ExtensionFromMIME(mimeType)
}

// SaveFirstImage writes the first image of result through store and returns
// the saved path. Only the first image is kept when the service returns
// several.
func SaveFirstImage(ctx context.Context, store ImageStore, result *GenerateResult, now time.Time) (string, error) {
	if store == nil {
		return "", ErrStoreNotConfigured
	}
	if result == nil || len(result.Images) == 0 {
		return "", ErrNoImage
	}
	img := result.Images[0]
	return store.Save(ctx, img.Data, TimestampName(now, img.MIMEType), img.MIMEType)
}

// MIMETypeFromPath guesses an image MIME type from a file extension.
func MIMETypeFromPath(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// ExtensionFromMIME returns a file extension for common image MIME types.
func ExtensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
