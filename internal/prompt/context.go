// Package prompt arma el bloque de contexto que se inyecta en la
// conversación a partir de los materiales de referencia del usuario.
package prompt

import (
	"strings"
	"unicode/utf8"

	"github.com/aulacta/cta-chat-backend/internal"
)

const (
	// límites de contenido por archivo y total del bloque
	maxItemChars  = 8000
	maxTotalChars = 24000
)

const contextHeader = "El usuario seleccionó estos materiales de referencia. " +
	"Úsalos para responder y, si alguna sección no es relevante a la pregunta, indícalo.\n\n"

// BuildContextBlock normaliza y concatena los materiales en un único bloque.
// Los materiales sin nombre o sin contenido se descartan, cada contenido se
// recorta a maxItemChars y la acumulación se corta en el primer material que
// desbordaría maxTotalChars (los siguientes se descartan aunque quepan).
// Devuelve "" si no queda ningún material.
func BuildContextBlock(items []internal.ContextMaterial) string {
	var sections []string
	total := 0
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.Content == "" {
			continue
		}
		content := truncate(it.Content, maxItemChars)
		if total+len(content) > maxTotalChars {
			break
		}
		total += len(content)
		sections = append(sections, "Archivo: "+canonicalName(name)+"\n"+content)
	}
	if len(sections) == 0 {
		return ""
	}
	return contextHeader + strings.Join(sections, "\n\n")
}

// canonicalName garantiza el sufijo .txt sin duplicarlo (el check de
// extensión ignora mayúsculas).
func canonicalName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".txt") {
		return name
	}
	return name + ".txt"
}

// truncate corta en max bytes sin partir runas UTF-8 por la mitad.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	s = s[:max]
	for !utf8.ValidString(s) && len(s) > 0 {
		s = s[:len(s)-1]
	}
	return s
}
