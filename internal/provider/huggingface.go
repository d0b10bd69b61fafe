package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aulacta/cta-chat-backend/internal"
)

const hfDefaultBaseURL = "https://api-inference.huggingface.co/models"

// HuggingFace llama a la inference API. No existe concepto de roles: el
// historial se aplana en un único prompt con líneas User:/Assistant:.
type HuggingFace struct {
	// BaseURL reemplaza la inference API en tests.
	BaseURL string
	Client  *http.Client
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

func (a *HuggingFace) Generate(ctx context.Context, req Request) (string, error) {
	prompt := buildFlatPrompt(req)

	payload := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   512,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	base := a.BaseURL
	if base == "" {
		base = hfDefaultBaseURL
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		base+"/"+req.Model.ID, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := a.Client
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("conexión con Hugging Face: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("leyendo respuesta de Hugging Face: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	text, ok := parseHFResponse(body)
	if !ok {
		return "", ErrUnexpectedFormat
	}
	return stripEcho(text, prompt), nil
}

// buildFlatPrompt concatena contexto, historial y el mensaje nuevo en
// secciones separadas por línea en blanco; las secciones vacías se omiten.
func buildFlatPrompt(req Request) string {
	var sections []string
	if req.ContextBlock != "" {
		sections = append(sections, "Contexto:\n"+req.ContextBlock)
	}
	var lines []string
	for _, m := range req.History {
		if m.Role == internal.RoleAssistant {
			lines = append(lines, "Assistant: "+m.Content)
		} else {
			lines = append(lines, "User: "+m.Content)
		}
	}
	if len(lines) > 0 {
		sections = append(sections, strings.Join(lines, "\n"))
	}
	sections = append(sections, "User: "+req.Message+"\nAssistant:")
	return strings.Join(sections, "\n\n")
}

// parseHFResponse acepta las tres formas que devuelve la inference API:
// array de {generated_text}, objeto con generated_text, o string pelado.
func parseHFResponse(body []byte) (string, bool) {
	var arr []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &arr); err == nil && len(arr) > 0 {
		return arr[0].GeneratedText, true
	}
	var obj struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.GeneratedText != "" {
		return obj.GeneratedText, true
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, true
	}
	return "", false
}

// stripEcho quita el prompt si el modelo lo devolvió como eco (algunos
// despliegues ignoran return_full_text). Es un heurístico de sustitución
// literal: si el modelo parafraseó el prompt no hace nada, y si al quitar
// el eco no queda texto se devuelve la respuesta original sin recortar.
func stripEcho(text, prompt string) string {
	stripped := strings.TrimSpace(strings.Replace(text, prompt, "", 1))
	if stripped == "" {
		return text
	}
	return stripped
}
