package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 2000
)

// OpenAICompatible habla el formato chat/completions que comparten OpenAI,
// Groq, DeepSeek y Together AI. La URL base sale del registro; vacía
// significa la API de OpenAI.
type OpenAICompatible struct {
	// HTTPClient reemplaza el cliente por defecto (60s de timeout).
	HTTPClient *http.Client
}

func (a *OpenAICompatible) Generate(ctx context.Context, req Request) (string, error) {
	cfg := openai.DefaultConfig(req.APIKey)
	if req.Model.Endpoint != "" {
		cfg.BaseURL = req.Model.Endpoint
	}
	cfg.HTTPClient = defaultHTTPClient
	if a.HTTPClient != nil {
		cfg.HTTPClient = a.HTTPClient
	}
	client := openai.NewClientWithConfig(cfg)

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.ContextBlock != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.ContextBlock,
		})
	}
	for _, m := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})

	maxTokens := chatMaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model.ID,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &UpstreamError{Status: reqErr.HTTPStatusCode, Body: string(reqErr.Body)}
		}
		return "", fmt.Errorf("conexión con %s: %w", req.Model.Provider, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrUnexpectedFormat
	}
	return resp.Choices[0].Message.Content, nil
}
