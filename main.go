package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/aulacta/cta-chat-backend/internal/config"
	"github.com/aulacta/cta-chat-backend/internal/registry"
	"github.com/aulacta/cta-chat-backend/internal/server"
)

func main() {
	_ = godotenv.Load() // carga .env si existe

	cfg := config.Load(registry.KeyEnvVars())
	log.Printf("backend de almacenamiento: %s (keys cargadas: %d)", cfg.BackendURL, len(cfg.Secrets))

	srv := server.New(cfg)
	if err := srv.Router().Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
