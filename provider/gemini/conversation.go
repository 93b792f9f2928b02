package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/mhpenta/assist"
	"google.golang.org/genai"
)

// GeminiConversation implements multi-turn chat against the Gemini API.
type GeminiConversation struct {
	assistant *GeminiAssistant
	history   []assist.ConversationTurn
	contents  []*genai.Content

	mu sync.Mutex
}

var _ assist.Conversation = (*GeminiConversation)(nil)

// Send sends a message (text and/or images) and receives a response.
func (c *GeminiConversation) Send(ctx context.Context, message string, images []assist.InputImage, config *assist.RequestConfig) (*assist.ChatResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if config == nil {
		config = assist.DefaultConfig()
	}

	modelName := c.assistant.resolveModel(config, APIModelText)

	// Build the user's message parts
	parts := make([]*genai.Part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				Data:     img.Data,
				MIMEType: img.MIMEType,
			},
		})
	}
	if message != "" {
		parts = append(parts, &genai.Part{Text: message})
	}

	userContent := &genai.Content{
		Role:  "user",
		Parts: parts,
	}
	c.contents = append(c.contents, userContent)

	// Record in our history format
	userTurn := assist.ConversationTurn{
		Role: "user",
		Text: message,
	}
	for _, img := range images {
		userTurn.Images = append(userTurn.Images, assist.GeneratedImage{
			Data:     img.Data,
			MIMEType: img.MIMEType,
		})
	}
	c.history = append(c.history, userTurn)

	result, err := c.assistant.client.Models.GenerateContent(
		ctx,
		modelName,
		c.contents,
		c.assistant.buildTextConfig(config),
	)
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("conversation send failed: %w", err)
	}

	chatResult := c.assistant.parseChatResult(result)

	// Add model response to history so follow-ups keep context
	if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		c.contents = append(c.contents, result.Candidates[0].Content)
	}

	c.history = append(c.history, assist.ConversationTurn{
		Role: "model",
		Text: chatResult.Text,
	})

	return chatResult, nil
}

// History returns the conversation history.
func (c *GeminiConversation) History() []assist.ConversationTurn {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Return a copy to prevent external modification
	historyCopy := make([]assist.ConversationTurn, len(c.history))
	copy(historyCopy, c.history)
	return historyCopy
}

// Clear resets the conversation history.
func (c *GeminiConversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = make([]assist.ConversationTurn, 0)
	c.contents = make([]*genai.Content, 0)
}
