package gemini

import (
	"log/slog"
	"testing"

	"github.com/mhpenta/assist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// testAssistant builds an assistant without a client; the parsing and
// config helpers under test never touch the network.
func testAssistant() *GeminiAssistant {
	return &GeminiAssistant{
		logger:    slog.New(slog.DiscardHandler),
		extractor: assist.NewPayloadExtractor(nil),
		estimator: assist.NewSimpleTokenEstimator(),
	}
}

func TestParseChatResult(t *testing.T) {
	g := testAssistant()

	t.Run("concatenates text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Parts: []*genai.Part{
							{Text: "Hello, "},
							{Text: "world."},
						},
					},
				},
			},
		}
		res := g.parseChatResult(resp)
		assert.Equal(t, "Hello, world.", res.Text)
	})

	t.Run("separates thought parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Parts: []*genai.Part{
							{Text: "let me think", Thought: true},
							{Text: "the answer"},
						},
					},
				},
			},
		}
		res := g.parseChatResult(resp)
		assert.Equal(t, "the answer", res.Text)
		assert.Equal(t, "let me think", res.ThinkingContent)
	})

	t.Run("tolerates empty shapes", func(t *testing.T) {
		assert.Empty(t, g.parseChatResult(nil).Text)
		assert.Empty(t, g.parseChatResult(&genai.GenerateContentResponse{}).Text)
		assert.Empty(t, g.parseChatResult(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: nil}},
		}).Text)
	})
}

func TestParseGenerateResult(t *testing.T) {
	g := testAssistant()

	t.Run("collects inline images in order", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Parts: []*genai.Part{
							{Text: "here you go"},
							{InlineData: &genai.Blob{Data: []byte("img-a"), MIMEType: "image/png"}},
							{InlineData: &genai.Blob{Data: []byte("img-b"), MIMEType: "image/jpeg"}},
						},
					},
				},
			},
		}

		res := g.parseGenerateResult(resp)
		require.Len(t, res.Images, 2)
		assert.Equal(t, []byte("img-a"), res.Images[0].Data)
		assert.Equal(t, 0, res.Images[0].Index)
		assert.Equal(t, []byte("img-b"), res.Images[1].Data)
		assert.Equal(t, 1, res.Images[1].Index)
		assert.Equal(t, "here you go", res.Text)
	})

	t.Run("skips non-image inline data", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Parts: []*genai.Part{
							{InlineData: &genai.Blob{Data: []byte("wav"), MIMEType: "audio/wav"}},
						},
					},
				},
			},
		}
		assert.Empty(t, g.parseGenerateResult(resp).Images)
	})

	t.Run("empty response yields no images and no error", func(t *testing.T) {
		assert.Empty(t, g.parseGenerateResult(nil).Images)
		assert.Empty(t, g.parseGenerateResult(&genai.GenerateContentResponse{}).Images)
	})

	t.Run("usage metadata includes image count", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Parts: []*genai.Part{
							{InlineData: &genai.Blob{Data: []byte("img"), MIMEType: "image/png"}},
						},
					},
				},
			},
			UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
				PromptTokenCount:     10,
				CandidatesTokenCount: 1290,
				TotalTokenCount:      1300,
			},
		}

		res := g.parseGenerateResult(resp)
		require.NotNil(t, res.UsageMetadata)
		assert.Equal(t, 10, res.UsageMetadata.PromptTokens)
		assert.Equal(t, 1300, res.UsageMetadata.TotalTokens)
		assert.Equal(t, 1, res.UsageMetadata.ImageCount)
	})
}

func TestResolveModel(t *testing.T) {
	g := testAssistant()

	assert.Equal(t, APIModelText, g.resolveModel(nil, APIModelText))
	assert.Equal(t, APIModelImage, g.resolveModel(assist.DefaultConfig(), APIModelImage))
	assert.Equal(t, "gemini-3-pro-image-preview",
		g.resolveModel(&assist.RequestConfig{Model: "gemini-3-pro-image-preview"}, APIModelImage))
}

func TestBuildImageConfig(t *testing.T) {
	g := testAssistant()

	cfg := g.buildImageConfig(&assist.RequestConfig{
		Size:        assist.ImageSize2K,
		AspectRatio: assist.AspectRatio16x9,
	})

	assert.Equal(t, []string{"TEXT", "IMAGE"}, cfg.ResponseModalities)
	require.NotNil(t, cfg.ImageConfig)
	assert.Equal(t, "2K", cfg.ImageConfig.ImageSize)
	assert.Equal(t, "16:9", cfg.ImageConfig.AspectRatio)
}

func TestConvertSafetySettings(t *testing.T) {
	converted := convertSafetySettings([]assist.SafetySetting{
		{Category: assist.SafetyCategoryHarassment, Threshold: assist.SafetyThresholdBlockNone},
	})

	require.Len(t, converted, 1)
	assert.Equal(t, genai.HarmCategory("HARM_CATEGORY_HARASSMENT"), converted[0].Category)
	assert.Equal(t, genai.HarmBlockThreshold("BLOCK_NONE"), converted[0].Threshold)
}

func TestCheckRateLimitError(t *testing.T) {
	assert.NoError(t, checkRateLimitError(nil, APIModelImage))

	plain := assert.AnError
	assert.Equal(t, plain, checkRateLimitError(plain, APIModelImage))

	notLimited := genai.APIError{Code: 500, Status: "INTERNAL"}
	assert.Equal(t, error(notLimited), checkRateLimitError(notLimited, APIModelImage))

	limited := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}
	err := checkRateLimitError(limited, APIModelImage)
	assert.True(t, assist.IsRateLimitError(err))
}
