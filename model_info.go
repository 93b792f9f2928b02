package assist

// Provider identifies a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
)

// Well-known model identifiers. Providers may support more; the CLI uses
// these as its defaults.
const (
	ModelTextDefault  Model = "gemini-2.5-flash"
	ModelImageDefault Model = "gemini-2.5-flash-image"
)

// ModelCapabilities describes what operations a model supports.
type ModelCapabilities struct {
	SupportsChat         bool
	SupportsVision       bool // Image inputs (describe/edit)
	SupportsImageOutput  bool // Image generation
	SupportsConversation bool
}

// ModelInfo contains metadata for a model.
type ModelInfo struct {
	// Name is the public model name (e.g., "gemini-2.5-flash")
	Name string

	// Provider serves this model
	Provider Provider

	// APIModelName is the actual API name, when it differs from Name
	APIModelName string

	// Capabilities of the model
	Capabilities ModelCapabilities

	// ContextLength in tokens, 0 if unknown
	ContextLength int
}
