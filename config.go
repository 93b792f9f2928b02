package assist

import "log/slog"

// Model represents a specific generative model.
type Model string

// String returns the model identifier.
func (m Model) String() string { return string(m) }

// ImageSize represents the output resolution for generated images.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

// String returns the string representation for API calls.
func (s ImageSize) String() string { return string(s) }

// AspectRatio represents the aspect ratio for generated images.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio16x9 AspectRatio = "16:9"
	AspectRatio9x16 AspectRatio = "9:16"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio3x4  AspectRatio = "3:4"
	AspectRatioAuto AspectRatio = ""
)

// String returns the string representation for API calls.
func (a AspectRatio) String() string { return string(a) }

// RequestConfig holds per-request options for any Assistant operation.
// Image-specific fields are ignored by the text operations.
type RequestConfig struct {
	// Model to use (if empty, the provider's default for the operation)
	Model Model

	// Size of generated images (1K, 2K, 4K)
	Size ImageSize

	// AspectRatio of generated images
	AspectRatio AspectRatio

	// Temperature controls randomness (0.0-2.0)
	Temperature *float32

	// SafetySettings for content filtering
	SafetySettings []SafetySetting
}

// WithModel returns a copy of the config with the specified model.
func (c *RequestConfig) WithModel(model Model) *RequestConfig {
	if c == nil {
		return &RequestConfig{Model: model}
	}
	cX := *c
	cX.Model = model
	return &cX
}

// DefaultConfig returns a RequestConfig with sensible defaults.
func DefaultConfig() *RequestConfig {
	return &RequestConfig{
		AspectRatio: AspectRatioAuto,
	}
}

// ProviderConfig configures a provider backend.
type ProviderConfig struct {
	// APIKey for authentication. If empty, the provider falls back to its
	// environment variables (GEMINI_API_KEY, GOOGLE_API_KEY).
	APIKey string

	// Logger for structured logging. Nil disables provider logging.
	Logger *slog.Logger
}

// InputImage represents an image supplied to describe or edit operations.
type InputImage struct {
	// Data is the raw image bytes
	Data []byte

	// MIMEType of the image (e.g., "image/jpeg", "image/png")
	MIMEType string
}
