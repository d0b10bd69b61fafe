// Package config captura la configuración del proceso una sola vez al
// arrancar; los handlers reciben el snapshot en lugar de leer variables de
// entorno sueltas por request.
package config

import "os"

const defaultBackendURL = "http://136.116.238.134/api"

type Config struct {
	Port       string
	BackendURL string
	// Secrets mapea nombre de variable de entorno -> API key. Una key
	// ausente no frena el arranque: el modelo que la necesite fallará con
	// 500 al usarse.
	Secrets map[string]string
}

// Load lee el entorno. keyEnvVars viene del registro de modelos.
func Load(keyEnvVars []string) Config {
	cfg := Config{
		Port:       os.Getenv("PORT"),
		BackendURL: os.Getenv("BACKEND_URL"),
		Secrets:    make(map[string]string, len(keyEnvVars)),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = defaultBackendURL
	}
	for _, name := range keyEnvVars {
		if v := os.Getenv(name); v != "" {
			cfg.Secrets[name] = v
		}
	}
	return cfg
}

// APIKey devuelve la key capturada para esa variable; false si falta.
func (c Config) APIKey(envVar string) (string, bool) {
	v, ok := c.Secrets[envVar]
	return v, ok
}
