package internal

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message es un turno de la conversación. El historial completo viaja en
// cada request; el servidor no guarda nada entre llamadas.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ContextMaterial es un documento de referencia seleccionado por el usuario
// (temas descargados del bucket vía el proxy).
type ContextMaterial struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string            `json:"message"`
	History []Message         `json:"history"`
	ModelID string            `json:"modelId"`
	Context []ContextMaterial `json:"context"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// --- Generación de temas educativos ---

type TopicRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Level       string `json:"nivelEducativo"`
}

type TopicResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id,omitempty"`
	Title     string `json:"titulo,omitempty"`
	Content   string `json:"contenido,omitempty"`
	Level     string `json:"nivelEducativo,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	Error     string `json:"error,omitempty"`
}
