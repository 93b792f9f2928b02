package main

import (
	"context"

	"github.com/mhpenta/assist"
)

// MockAssistant is a mock implementation of assist.Assistant and
// assist.ConversationalAssistant.
type MockAssistant struct {
	ChatFunc              func(ctx context.Context, message string, config *assist.RequestConfig) (*assist.ChatResult, error)
	DescribeImageFunc     func(ctx context.Context, image assist.InputImage, config *assist.RequestConfig) (*assist.ChatResult, error)
	GenerateImageFunc     func(ctx context.Context, prompt string, config *assist.RequestConfig) (*assist.GenerateResult, error)
	EditImageFunc         func(ctx context.Context, image assist.InputImage, instruction string, config *assist.RequestConfig) (*assist.GenerateResult, error)
	ModelsFunc            func() []assist.ModelInfo
	StartConversationFunc func() assist.Conversation
	CloseFunc             func() error
}

func (m *MockAssistant) Chat(ctx context.Context, message string, config *assist.RequestConfig) (*assist.ChatResult, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, message, config)
	}
	return &assist.ChatResult{}, nil
}

func (m *MockAssistant) DescribeImage(ctx context.Context, image assist.InputImage, config *assist.RequestConfig) (*assist.ChatResult, error) {
	if m.DescribeImageFunc != nil {
		return m.DescribeImageFunc(ctx, image, config)
	}
	return &assist.ChatResult{}, nil
}

func (m *MockAssistant) GenerateImage(ctx context.Context, prompt string, config *assist.RequestConfig) (*assist.GenerateResult, error) {
	if m.GenerateImageFunc != nil {
		return m.GenerateImageFunc(ctx, prompt, config)
	}
	return &assist.GenerateResult{}, nil
}

func (m *MockAssistant) EditImage(ctx context.Context, image assist.InputImage, instruction string, config *assist.RequestConfig) (*assist.GenerateResult, error) {
	if m.EditImageFunc != nil {
		return m.EditImageFunc(ctx, image, instruction, config)
	}
	return &assist.GenerateResult{}, nil
}

func (m *MockAssistant) Models() []assist.ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []assist.ModelInfo{}
}

func (m *MockAssistant) StartConversation() assist.Conversation {
	if m.StartConversationFunc != nil {
		return m.StartConversationFunc()
	}
	return &MockConversation{}
}

func (m *MockAssistant) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockConversation is a mock implementation of assist.Conversation.
type MockConversation struct {
	SendFunc func(ctx context.Context, message string, images []assist.InputImage, config *assist.RequestConfig) (*assist.ChatResult, error)
	turns    []assist.ConversationTurn
}

func (c *MockConversation) Send(ctx context.Context, message string, images []assist.InputImage, config *assist.RequestConfig) (*assist.ChatResult, error) {
	c.turns = append(c.turns, assist.ConversationTurn{Role: "user", Text: message})
	if c.SendFunc != nil {
		return c.SendFunc(ctx, message, images, config)
	}
	return &assist.ChatResult{}, nil
}

func (c *MockConversation) History() []assist.ConversationTurn {
	return c.turns
}

func (c *MockConversation) Clear() {
	c.turns = nil
}
