// Package server arma el router gin: chat, generación de temas, catálogo de
// modelos, health y el proxy hacia el backend de almacenamiento.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aulacta/cta-chat-backend/internal"
	"github.com/aulacta/cta-chat-backend/internal/config"
	"github.com/aulacta/cta-chat-backend/internal/prompt"
	"github.com/aulacta/cta-chat-backend/internal/provider"
	"github.com/aulacta/cta-chat-backend/internal/proxy"
	"github.com/aulacta/cta-chat-backend/internal/registry"
)

type Server struct {
	cfg config.Config
	// Generators mapea proveedor -> adaptador; los tests inyectan dobles.
	Generators map[registry.Provider]provider.Generator
}

func New(cfg config.Config) *Server {
	oa := &provider.OpenAICompatible{}
	return &Server{
		cfg: cfg,
		Generators: map[registry.Provider]provider.Generator{
			registry.Google:      provider.Gemini{},
			registry.HuggingFace: &provider.HuggingFace{},
			registry.Groq:        oa,
			registry.DeepSeek:    oa,
			registry.TogetherAI:  oa,
			registry.OpenAI:      oa,
		},
	}
}

// Router construye el engine con CORS y todas las rutas.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	// CORS con credenciales para el front local
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "uptime": time.Now().Format(time.RFC3339)})
	})
	r.GET("/models", s.handleModels)
	r.POST("/chat", s.handleChat)
	r.POST("/topics/generate", s.handleGenerateTopic)

	(&proxy.Forwarder{BackendURL: s.cfg.BackendURL}).Register(r)

	return r
}

func (s *Server) handleModels(c *gin.Context) {
	if p := c.Query("provider"); p != "" {
		c.JSON(200, gin.H{"models": registry.ByProvider(registry.Provider(p))})
		return
	}
	c.JSON(200, gin.H{"models": registry.All(), "default": registry.DefaultModelID})
}

func (s *Server) handleChat(c *gin.Context) {
	var req internal.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, internal.ChatResponse{Error: "message requerido"})
		return
	}

	modelID := req.ModelID
	if modelID == "" {
		modelID = registry.DefaultModelID
	}
	mdl, ok := registry.Lookup(modelID)
	if !ok {
		c.JSON(http.StatusBadRequest, internal.ChatResponse{Error: "modelo no encontrado: " + modelID})
		return
	}

	apiKey, ok := s.cfg.APIKey(mdl.APIKeyEnv)
	if !ok {
		c.JSON(http.StatusInternalServerError, internal.ChatResponse{
			Error: mdl.APIKeyEnv + " no configurada en variables de entorno",
		})
		return
	}

	gen, ok := s.Generators[mdl.Provider]
	if !ok {
		c.JSON(http.StatusInternalServerError, internal.ChatResponse{
			Error: "proveedor no soportado: " + string(mdl.Provider),
		})
		return
	}

	text, err := gen.Generate(c.Request.Context(), provider.Request{
		Model:        mdl,
		APIKey:       apiKey,
		Message:      req.Message,
		History:      cleanHistory(req.History),
		ContextBlock: prompt.BuildContextBlock(req.Context),
	})
	if err != nil {
		log.Printf("[chat] %s: %v", mdl.ID, err)
		c.JSON(http.StatusInternalServerError, internal.ChatResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, internal.ChatResponse{Success: true, Response: text})
}

// cleanHistory descarta entradas sin rol o sin contenido, conservando el
// orden del resto.
func cleanHistory(history []internal.Message) []internal.Message {
	out := make([]internal.Message, 0, len(history))
	for _, m := range history {
		if m.Role == "" || m.Content == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

// gpt-4o fijo para la generación de temas; no pasa por el catálogo
var topicModel = registry.Model{
	ID:        "gpt-4o",
	Provider:  registry.OpenAI,
	APIKeyEnv: "OPENAI_API_KEY",
}

const topicSystemPromptFmt = `Eres un asistente educativo experto en crear contenido didactico para el curso de Ciencia, Tecnologia y Ambiente (CTA) en Peru.
Tu tarea es generar contenido educativo estructurado, claro y apropiado para el nivel de %s.

El contenido debe:
- Estar bien organizado con titulos y subtitulos
- Incluir explicaciones claras y ejemplos practicos
- Ser apropiado para el nivel educativo indicado
- Incluir conceptos clave y definiciones importantes
- Tener una estructura pedagogica efectiva`

const topicUserPromptFmt = `Genera contenido educativo completo sobre el siguiente tema:

Titulo: %s
Nivel Educativo: %s
Descripcion/Instrucciones: %s

Por favor genera un contenido educativo detallado, bien estructurado y pedagogicamente apropiado.`

func (s *Server) handleGenerateTopic(c *gin.Context) {
	var req internal.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Title == "" || req.Description == "" || req.Level == "" {
		c.JSON(http.StatusBadRequest, internal.TopicResponse{
			Error: "Titulo, descripcion y nivel educativo son requeridos",
		})
		return
	}

	apiKey, ok := s.cfg.APIKey(topicModel.APIKeyEnv)
	if !ok {
		c.JSON(http.StatusInternalServerError, internal.TopicResponse{
			Error: "OPENAI_API_KEY no configurada en variables de entorno",
		})
		return
	}

	gen, ok := s.Generators[registry.OpenAI]
	if !ok {
		c.JSON(http.StatusInternalServerError, internal.TopicResponse{
			Error: "proveedor no soportado: " + string(registry.OpenAI),
		})
		return
	}

	// el prompt de sistema viaja como bloque de contexto: el adaptador lo
	// convierte en el mensaje system
	content, err := gen.Generate(c.Request.Context(), provider.Request{
		Model:        topicModel,
		APIKey:       apiKey,
		Message:      fmt.Sprintf(topicUserPromptFmt, req.Title, req.Level, req.Description),
		ContextBlock: fmt.Sprintf(topicSystemPromptFmt, req.Level),
		MaxTokens:    3000,
	})
	if err != nil {
		log.Printf("[temas] %s: %v", topicModel.ID, err)
		c.JSON(http.StatusInternalServerError, internal.TopicResponse{Error: err.Error()})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, internal.TopicResponse{
		Success:   true,
		ID:        "tema-" + strconv.FormatInt(now.UnixMilli(), 10),
		Title:     req.Title,
		Content:   content,
		Level:     req.Level,
		CreatedAt: now.UTC().Format(time.RFC3339),
	})
}
