// Package assist defines the provider-agnostic core of a small Gemini
// command-line assistant: chat, image description, image generation, and
// image editing.
//
// The package holds interfaces, configuration, result types, validation,
// response payload extraction, and local output handling. Concrete API
// bindings live under provider/ (currently provider/gemini, backed by the
// official Go SDK at https://github.com/googleapis/go-genai).
package assist

import "context"

// Assistant is the core interface for a generative model backend.
// Implement this interface to add support for new providers.
//
// The first model returned by Models() is considered the default model.
type Assistant interface {
	// Chat sends a text message and returns the model's text reply.
	Chat(ctx context.Context, message string, config *RequestConfig) (*ChatResult, error)

	// DescribeImage asks the model to describe the given image.
	DescribeImage(ctx context.Context, image InputImage, config *RequestConfig) (*ChatResult, error)

	// GenerateImage creates images from a text prompt.
	GenerateImage(ctx context.Context, prompt string, config *RequestConfig) (*GenerateResult, error)

	// EditImage modifies an existing image based on a text instruction.
	EditImage(ctx context.Context, image InputImage, instruction string, config *RequestConfig) (*GenerateResult, error)

	// Models returns the model definitions supported by this provider.
	// The first model in the list is the default.
	Models() []ModelInfo

	// Close releases any resources held by the assistant.
	Close() error
}

// ConversationalAssistant extends Assistant with multi-turn conversation support.
type ConversationalAssistant interface {
	Assistant

	// StartConversation begins a new multi-turn conversation.
	StartConversation() Conversation
}

// Conversation represents a multi-turn session with the model.
type Conversation interface {
	// Send sends a message (text and/or images) and receives a response.
	Send(ctx context.Context, message string, images []InputImage, config *RequestConfig) (*ChatResult, error)

	// History returns the conversation history.
	History() []ConversationTurn

	// Clear resets the conversation history.
	Clear()
}
