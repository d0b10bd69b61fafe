package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/aulacta/cta-chat-backend/internal"
)

// Gemini llama a la API de Google a través del SDK oficial. El contexto va
// como system instruction, el equivalente al mensaje system del camino
// compatible con OpenAI.
type Gemini struct {
	// Options extiende las opciones del cliente; los tests apuntan el
	// endpoint a un stub con option.WithEndpoint.
	Options []option.ClientOption
}

func (g Gemini) Generate(ctx context.Context, req Request) (string, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(req.APIKey)}, g.Options...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("gemini init: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model.ID)
	model.SetMaxOutputTokens(1000)
	model.SetTemperature(0.7)
	if req.ContextBlock != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.ContextBlock)},
		}
	}

	chat := model.StartChat()
	chat.History = geminiHistory(req.History)

	resp, err := chat.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			return "", &UpstreamError{Status: gErr.Code, Body: gErr.Message}
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrUnexpectedFormat
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", ErrUnexpectedFormat
	}
	return b.String(), nil
}

// geminiHistory traduce el historial al formato del SDK: el rol assistant
// se llama "model" en Gemini.
func geminiHistory(history []internal.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == internal.RoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return out
}
