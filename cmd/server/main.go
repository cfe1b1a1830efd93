package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/factoryops/dashboard-service/internal/api"
	"github.com/factoryops/dashboard-service/internal/notify"
	"github.com/factoryops/dashboard-service/internal/store"
)

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.EnableJsonDecoderDisallowUnknownFields()

	s, err := openStore()
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	if closer, ok := s.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	hub := notify.NewHub()
	handler := api.NewHandler(s, hub)
	router := api.NewRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Dashboard service starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore picks the backend from STORAGE_DRIVER. With no driver set the
// presence of database configuration selects Postgres, otherwise the
// seeded in-memory store is used.
func openStore() (store.Store, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != "" {
			driver = "postgres"
		} else {
			driver = "memory"
		}
	}

	switch driver {
	case "postgres":
		return store.NewPostgres()
	default:
		m := store.NewMemory()
		if err := store.Seed(context.Background(), m); err != nil {
			return nil, err
		}
		log.Printf("[STORE-MEM] In-memory store seeded with demo data")
		return m, nil
	}
}
