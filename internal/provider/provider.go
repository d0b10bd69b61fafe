// Package provider contiene los adaptadores hacia las APIs de los
// proveedores de LLM. Cada adaptador implementa Generator; el servidor
// elige uno según el proveedor del modelo y nunca mira el formato de wire.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aulacta/cta-chat-backend/internal"
	"github.com/aulacta/cta-chat-backend/internal/registry"
)

// Request es todo lo que un adaptador necesita para una generación.
// ContextBlock ya viene armado por el normalizador; cada adaptador decide
// cómo inyectarlo (mensaje system, system instruction o prefijo de prompt).
type Request struct {
	Model        registry.Model
	APIKey       string
	Message      string
	History      []internal.Message
	ContextBlock string
	// MaxTokens sustituye el tope por defecto del adaptador cuando es > 0.
	MaxTokens int
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrUnexpectedFormat indica que el proveedor respondió 2xx pero el cuerpo
// no tiene la forma esperada.
var ErrUnexpectedFormat = errors.New("formato de respuesta inesperado del proveedor")

// UpstreamError es un status de error del proveedor; conserva el cuerpo
// crudo para diagnóstico. No se reintenta.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("error del proveedor (HTTP %d): %s", e.Status, e.Body)
}

// cliente compartido para los adaptadores que no reciben uno propio
var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}

// Mock responde sin llamar a ninguna API externa. Útil para desarrollo
// offline y como doble en tests.
type Mock struct{}

func (Mock) Generate(_ context.Context, req Request) (string, error) {
	return "Entendido. (mock) Me pediste: \"" + req.Message + "\"", nil
}
