// Package registry define el catálogo estático de modelos disponibles.
// Es solo datos: se compila con el binario y nunca muta en runtime.
package registry

type Provider string

const (
	Google      Provider = "Google"
	Groq        Provider = "Groq"
	TogetherAI  Provider = "Together AI"
	DeepSeek    Provider = "DeepSeek"
	OpenAI      Provider = "OpenAI"
	HuggingFace Provider = "Hugging Face"
)

// Model describe un modelo seleccionable desde el frontend. Endpoint es la
// URL base compatible con chat/completions; vacío significa "usar la URL
// por defecto del proveedor".
type Model struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Provider    Provider `json:"provider"`
	APIKeyEnv   string   `json:"apiKeyEnv"`
	Endpoint    string   `json:"endpoint,omitempty"`
	Free        bool     `json:"free"`
	Description string   `json:"description"`
}

const DefaultModelID = "gemini-2.5-flash"

var models = []Model{
	// Google Gemini
	{
		ID:          "gemini-2.5-flash",
		Name:        "Gemini 2.5 Flash",
		Provider:    Google,
		APIKeyEnv:   "GEMINI_API_KEY",
		Free:        true,
		Description: "15 req/min - Rápido y eficiente",
	},

	// Groq (ultra rápido)
	{
		ID:          "llama-3.3-70b-versatile",
		Name:        "Llama 3.3 70B",
		Provider:    Groq,
		APIKeyEnv:   "GROQ_API_KEY",
		Endpoint:    "https://api.groq.com/openai/v1",
		Free:        true,
		Description: "30 req/min - Ultra rápido",
	},
	{
		ID:          "llama-3.1-8b-instant",
		Name:        "Llama 3.1 8B",
		Provider:    Groq,
		APIKeyEnv:   "GROQ_API_KEY",
		Endpoint:    "https://api.groq.com/openai/v1",
		Free:        true,
		Description: "30 req/min - Instantáneo",
	},

	// Together AI
	{
		ID:          "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo",
		Name:        "Llama 3.1 70B (Together)",
		Provider:    TogetherAI,
		APIKeyEnv:   "TOGETHER_API_KEY",
		Endpoint:    "https://api.together.xyz/v1",
		Free:        true,
		Description: "$25 crédito gratis",
	},
	{
		ID:          "mistralai/Mixtral-8x7B-Instruct-v0.1",
		Name:        "Mixtral 8x7B (Together)",
		Provider:    TogetherAI,
		APIKeyEnv:   "TOGETHER_API_KEY",
		Endpoint:    "https://api.together.xyz/v1",
		Free:        true,
		Description: "$25 crédito gratis",
	},

	// Hugging Face (inference API, sin endpoint: el adaptador arma la URL)
	{
		ID:          "meta-llama/Llama-3.2-3B-Instruct",
		Name:        "Llama 3.2 3B",
		Provider:    HuggingFace,
		APIKeyEnv:   "HUGGINGFACE_API_KEY",
		Free:        true,
		Description: "Gratis - Aprobado",
	},
	{
		ID:          "Qwen/Qwen2.5-7B-Instruct",
		Name:        "Qwen 2.5 7B",
		Provider:    HuggingFace,
		APIKeyEnv:   "HUGGINGFACE_API_KEY",
		Free:        true,
		Description: "Gratis - Muy bueno",
	},

	// DeepSeek
	{
		ID:          "deepseek-chat",
		Name:        "DeepSeek Chat",
		Provider:    DeepSeek,
		APIKeyEnv:   "DEEPSEEK_API_KEY",
		Endpoint:    "https://api.deepseek.com/v1",
		Free:        true,
		Description: "Gratis - V3.2 ultra potente",
	},
	{
		ID:          "deepseek-reasoner",
		Name:        "DeepSeek Reasoner",
		Provider:    DeepSeek,
		APIKeyEnv:   "DEEPSEEK_API_KEY",
		Endpoint:    "https://api.deepseek.com/v1",
		Free:        true,
		Description: "Gratis - Modo razonamiento",
	},

	// OpenAI (solo con crédito inicial)
	{
		ID:          "gpt-3.5-turbo",
		Name:        "GPT-3.5 Turbo",
		Provider:    OpenAI,
		APIKeyEnv:   "OPENAI_API_KEY",
		Free:        false,
		Description: "$5 crédito inicial",
	},
}

// Lookup busca un modelo por id. El segundo valor es false si no existe.
func Lookup(id string) (Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// All devuelve una copia del catálogo completo.
func All() []Model {
	cp := make([]Model, len(models))
	copy(cp, models)
	return cp
}

// ByProvider filtra el catálogo por proveedor.
func ByProvider(p Provider) []Model {
	var out []Model
	for _, m := range models {
		if m.Provider == p {
			out = append(out, m)
		}
	}
	return out
}

// KeyEnvVars lista, sin duplicados, las variables de entorno de API keys
// que nombra el catálogo. La configuración las captura una vez al arrancar.
func KeyEnvVars() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range models {
		if m.APIKeyEnv != "" && !seen[m.APIKeyEnv] {
			seen[m.APIKeyEnv] = true
			out = append(out, m.APIKeyEnv)
		}
	}
	return out
}
