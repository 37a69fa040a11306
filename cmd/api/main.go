package main

import (
	"log"
	"os"

	"retail-pos/internal/config"
	"retail-pos/internal/database"
	"retail-pos/internal/middleware"
	"retail-pos/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.RequestID())

	if err := routes.RegisterRoutes(router, client, db, cfg); err != nil {
		log.Fatal("❌ Could not register routes:", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	log.Println("🚀 Server running on port", port)
	router.Run(":" + port)
}
