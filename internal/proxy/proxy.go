// Package proxy reenvía llamadas REST arbitrarias al backend de
// almacenamiento fijo (listado de temas, subida y borrado de materiales).
package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// colapsa // repetidos salvo el separador del esquema (http://)
var collapseSlashes = regexp.MustCompile(`([^:]/)/+`)

const connectionErrMsg = "Error en el proxy al conectar con el backend"

// Forwarder reenvía método, path y body hacia BackendURL (que ya incluye el
// prefijo /api del backend).
type Forwarder struct {
	BackendURL string
	Client     *http.Client
}

// Register cuelga el comodín /proxy/*path para los cuatro métodos.
func (f *Forwarder) Register(r gin.IRouter) {
	h := f.forward
	r.GET("/proxy/*path", h)
	r.POST("/proxy/*path", h)
	r.PUT("/proxy/*path", h)
	r.DELETE("/proxy/*path", h)
}

func (f *Forwarder) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return defaultClient
}

var defaultClient = &http.Client{Timeout: 60 * time.Second}

func (f *Forwarder) forward(c *gin.Context) {
	path := strings.Trim(c.Param("path"), "/")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Ruta de proxy invalida"})
		return
	}

	target := f.BackendURL + "/" + path
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}
	// el colapso corre sobre la URL completa ya concatenada, query incluida;
	// puede alcanzar segmentos doblemente codificados o // dentro de valores
	target = collapseSlashes.ReplaceAllString(target, "$1")

	var body io.Reader
	contentType := "application/json"
	if c.Request.Method != http.MethodGet {
		incoming := c.GetHeader("Content-Type")
		if strings.Contains(incoming, "multipart/form-data") {
			// multipart pasa tal cual, conservando el boundary
			body = c.Request.Body
			contentType = incoming
		} else {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "cuerpo de la petición ilegible"})
				return
			}
			body = bytes.NewReader(raw)
		}
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": connectionErrMsg})
		return
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := f.client().Do(req)
	if err != nil {
		log.Printf("[proxy] %s %s: %v", c.Request.Method, target, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": connectionErrMsg})
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[proxy] leyendo respuesta de %s: %v", target, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": connectionErrMsg})
		return
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var data any
		if err := json.Unmarshal(respBody, &data); err != nil {
			log.Printf("[proxy] JSON inválido del backend %s: %v", target, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": connectionErrMsg})
			return
		}
		c.JSON(resp.StatusCode, data)
		return
	}
	c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
}
