package main

import (
	"log"

	"github.com/joho/godotenv"

	"siteboard/internal/config"
	"siteboard/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg := config.Load()

	app, err := ui.NewApp(cfg)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}
	defer app.Close()

	log.Printf("Starting Siteboard UI on http://%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Fatal(app.Start())
}
