package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sheetstore/adapters/mongo"
	"sheetstore/app"
	"sheetstore/internal/config"
	"sheetstore/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found or error loading it: %v", err)
	}

	cfg := config.Load()
	gin.SetMode(cfg.Server.GinMode)

	store, err := mongo.Connect(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	defer store.Close()

	server := ui.NewServer(app.NewTableService(store))
	log.Printf("listening on :%s", cfg.Server.Port)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
