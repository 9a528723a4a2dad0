package main

import (
	"log"

	"github.com/jhonDavid20/steady-vitality/internal/app"
	"github.com/jhonDavid20/steady-vitality/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
