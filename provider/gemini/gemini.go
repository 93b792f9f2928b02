// Package gemini provides an Assistant implementation using Google's Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
//
// For Vertex AI or other Google Cloud backends, a separate provider
// implementation could be created using the same SDK with a different
// backend configuration.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mhpenta/assist"
	"google.golang.org/genai"
)

// Model name constants - the actual API model names.
const (
	// APIModelText is the default text/vision model.
	APIModelText = "gemini-2.5-flash"

	// APIModelImage is the default image generation model (Gemini 2.5 Flash Image).
	APIModelImage = "gemini-2.5-flash-image"

	// APIModelImagePro is the API name for Gemini 3 Pro Image.
	APIModelImagePro = "gemini-3-pro-image-preview"
)

// describeInstruction is the prompt sent alongside an image for analysis.
const describeInstruction = "Describe this image and list notable objects."

// GeminiAssistant implements assist.Assistant using Google's Gemini API.
type GeminiAssistant struct {
	client         *genai.Client
	logger         *slog.Logger
	extractor      *assist.PayloadExtractor
	estimator      assist.TokenEstimator
	safetySettings []*genai.SafetySetting
	mu             sync.RWMutex
}

// Ensure GeminiAssistant implements the interfaces.
var (
	_ assist.Assistant               = (*GeminiAssistant)(nil)
	_ assist.ConversationalAssistant = (*GeminiAssistant)(nil)
)

// New creates a new GeminiAssistant from a ProviderConfig.
func New(ctx context.Context, config *assist.ProviderConfig) (*GeminiAssistant, error) {
	if config == nil {
		config = &assist.ProviderConfig{}
	}

	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}

	if config.APIKey != "" {
		clientCfg.APIKey = config.APIKey
	}
	// If APIKey is empty, the SDK will try GOOGLE_API_KEY or GEMINI_API_KEY env vars

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &GeminiAssistant{
		client:    client,
		logger:    logger,
		extractor: assist.NewPayloadExtractor(logger),
		estimator: assist.NewSimpleTokenEstimator(),
	}, nil
}

// NewWithAPIKey creates an assistant with an API key for the Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string) (*GeminiAssistant, error) {
	return New(ctx, &assist.ProviderConfig{APIKey: apiKey})
}

// SetSafetySettings configures default safety settings for all requests.
// These can be overridden per-request via RequestConfig.SafetySettings.
func (g *GeminiAssistant) SetSafetySettings(settings []assist.SafetySetting) *GeminiAssistant {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.safetySettings = convertSafetySettings(settings)
	return g
}

// Chat sends a text message and returns the model's reply.
func (g *GeminiAssistant) Chat(ctx context.Context, message string, config *assist.RequestConfig) (*assist.ChatResult, error) {
	if err := assist.ValidatePrompt(message); err != nil {
		return nil, err
	}

	if config == nil {
		config = assist.DefaultConfig()
	}

	modelName := g.resolveModel(config, APIModelText)
	g.logger.Debug("chat request",
		"model", modelName,
		"estimated_tokens", g.estimator.EstimateTokens(message))

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: message},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, g.buildTextConfig(config))
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("chat failed: %w", err)
	}

	return g.parseChatResult(result), nil
}

// DescribeImage asks the model to describe the given image.
func (g *GeminiAssistant) DescribeImage(ctx context.Context, image assist.InputImage, config *assist.RequestConfig) (*assist.ChatResult, error) {
	if err := assist.ValidateInputImage(image); err != nil {
		return nil, err
	}

	if config == nil {
		config = assist.DefaultConfig()
	}

	modelName := g.resolveModel(config, APIModelText)

	// Image first, instruction second
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						Data:     image.Data,
						MIMEType: image.MIMEType,
					},
				},
				{Text: describeInstruction},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, g.buildTextConfig(config))
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	return g.parseChatResult(result), nil
}

// GenerateImage creates images from a text prompt.
func (g *GeminiAssistant) GenerateImage(ctx context.Context, prompt string, config *assist.RequestConfig) (*assist.GenerateResult, error) {
	if err := assist.ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	if config == nil {
		config = assist.DefaultConfig()
	}

	modelName := g.resolveModel(config, APIModelImage)
	g.logger.Debug("image generation request",
		"model", modelName,
		"estimated_tokens", g.estimator.EstimateTokens(prompt))

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, g.buildImageConfig(config))
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return g.parseGenerateResult(result), nil
}

// EditImage modifies an existing image based on a text instruction.
func (g *GeminiAssistant) EditImage(ctx context.Context, image assist.InputImage, instruction string, config *assist.RequestConfig) (*assist.GenerateResult, error) {
	if err := assist.ValidatePrompt(instruction); err != nil {
		return nil, err
	}
	if err := assist.ValidateInputImage(image); err != nil {
		return nil, err
	}

	if config == nil {
		config = assist.DefaultConfig()
	}

	modelName := g.resolveModel(config, APIModelImage)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						Data:     image.Data,
						MIMEType: image.MIMEType,
					},
				},
				{Text: instruction},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, g.buildImageConfig(config))
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("edit failed: %w", err)
	}

	return g.parseGenerateResult(result), nil
}

// Models returns the model definitions supported by this provider.
// The first model is the default text model.
func (g *GeminiAssistant) Models() []assist.ModelInfo {
	return []assist.ModelInfo{
		FlashInfo,
		FlashImageInfo,
		ProImageInfo,
	}
}

// Close releases any resources held by the assistant.
func (g *GeminiAssistant) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// StartConversation begins a new multi-turn conversation.
func (g *GeminiAssistant) StartConversation() assist.Conversation {
	return &GeminiConversation{
		assistant: g,
		history:   make([]assist.ConversationTurn, 0),
	}
}

// resolveModel determines which API model name to use, falling back to the
// given operation default when the config names none.
func (g *GeminiAssistant) resolveModel(config *assist.RequestConfig, fallback string) string {
	if config != nil && config.Model != "" {
		return config.Model.String()
	}
	return fallback
}

// buildTextConfig converts our config to Gemini's format for text requests.
func (g *GeminiAssistant) buildTextConfig(config *assist.RequestConfig) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{}

	if config.Temperature != nil {
		genConfig.Temperature = genai.Ptr(*config.Temperature)
	}

	// Safety settings: per-request overrides provider defaults
	g.mu.RLock()
	defaults := g.safetySettings
	g.mu.RUnlock()

	if len(config.SafetySettings) > 0 {
		genConfig.SafetySettings = convertSafetySettings(config.SafetySettings)
	} else if len(defaults) > 0 {
		genConfig.SafetySettings = defaults
	}

	return genConfig
}

// buildImageConfig converts our config to Gemini's format for image requests.
func (g *GeminiAssistant) buildImageConfig(config *assist.RequestConfig) *genai.GenerateContentConfig {
	genConfig := g.buildTextConfig(config)

	// Enable image output
	genConfig.ResponseModalities = []string{"TEXT", "IMAGE"}

	imageConfig := &genai.ImageConfig{}
	if config.Size != "" {
		imageConfig.ImageSize = config.Size.String()
	}
	if config.AspectRatio != "" {
		imageConfig.AspectRatio = config.AspectRatio.String()
	}
	genConfig.ImageConfig = imageConfig

	return genConfig
}

// convertSafetySettings converts our SafetySettings to Gemini's format.
func convertSafetySettings(settings []assist.SafetySetting) []*genai.SafetySetting {
	result := make([]*genai.SafetySetting, 0, len(settings))
	for _, s := range settings {
		result = append(result, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	return result
}

// parseChatResult converts a Gemini response to a ChatResult. An empty or
// text-free response yields an empty Text, never an error; the caller
// decides how to report it.
func (g *GeminiAssistant) parseChatResult(result *genai.GenerateContentResponse) *assist.ChatResult {
	res := &assist.ChatResult{}
	if result == nil {
		return res
	}

	var thinkingParts []string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Thought && part.Text != "" {
				thinkingParts = append(thinkingParts, part.Text)
				continue
			}
			if part.Text != "" {
				res.Text += part.Text
			}
		}
	}

	if len(thinkingParts) > 0 {
		res.ThinkingContent = strings.Join(thinkingParts, "\n")
	}

	res.UsageMetadata = parseUsage(result, 0)
	return res
}

// parseGenerateResult converts a Gemini response to a GenerateResult.
//
// Images are taken from typed inline-data parts first. If that walk finds
// none, the raw response shape is re-examined by the defensive payload
// extractor, which tolerates field-name and encoding drift across API
// versions. A response with no images yields an empty Images slice, not an
// error.
func (g *GeminiAssistant) parseGenerateResult(result *genai.GenerateContentResponse) *assist.GenerateResult {
	res := &assist.GenerateResult{
		Images: make([]assist.GeneratedImage, 0),
	}
	if result == nil {
		return res
	}

	var thinkingParts []string

	imageIndex := 0
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			// Handle thinking/thought parts
			if part.Thought && part.Text != "" {
				thinkingParts = append(thinkingParts, part.Text)
				continue
			}

			// Handle regular text parts
			if part.Text != "" {
				res.Text += part.Text
			}

			// Handle image parts
			if part.InlineData != nil && len(part.InlineData.Data) > 0 &&
				strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				res.Images = append(res.Images, assist.GeneratedImage{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
					Index:    imageIndex,
				})
				imageIndex++
			}
		}
	}

	if len(res.Images) == 0 {
		for _, data := range g.extractImagesLoose(result) {
			res.Images = append(res.Images, assist.GeneratedImage{
				Data:     data,
				MIMEType: "image/png",
				Index:    imageIndex,
			})
			imageIndex++
		}
	}

	if len(thinkingParts) > 0 {
		res.ThinkingContent = strings.Join(thinkingParts, "\n")
	}

	res.UsageMetadata = parseUsage(result, len(res.Images))
	return res
}

// extractImagesLoose round-trips the response through JSON and hands the
// resulting document to the payload extractor. Marshal failures are logged
// and treated as "no images".
func (g *GeminiAssistant) extractImagesLoose(result *genai.GenerateContentResponse) [][]byte {
	raw, err := json.Marshal(result)
	if err != nil {
		g.logger.Debug("response not representable as JSON", "error", err)
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		g.logger.Debug("response document decode failed", "error", err)
		return nil
	}
	return g.extractor.Images(doc)
}

// parseUsage extracts usage metadata if the response carries any.
func parseUsage(result *genai.GenerateContentResponse, imageCount int) *assist.UsageMetadata {
	if result.UsageMetadata == nil {
		return nil
	}
	return &assist.UsageMetadata{
		PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
		CandidatesTokens: int(result.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		ImageCount:       imageCount,
	}
}

// checkRateLimitError checks if an error from the Gemini API is a rate limit error.
// If so, it wraps it in a RateLimitError for standardized handling; otherwise returns the original error.
func checkRateLimitError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	if apiErr.Code != 429 && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return err
	}

	return &assist.RateLimitError{
		RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
		Model:      model,
		Err:        err,
	}
}
