package main

import (
	"log"
	"net/http"
	"os"

	"lab_manager/internal/config"
	"lab_manager/internal/logger"
	"lab_manager/internal/middleware"
	"lab_manager/internal/routes"
)

func main() {
	// Structured logging to file first, so DB init is captured
	logger.Setup()

	// Connect to the database, migrate, seed the admin account
	config.InitDB()

	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Lab Management API running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
