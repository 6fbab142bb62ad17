package main

import (
	"log"

	_ "jobsite/docs"
	"jobsite/internal/config"
	"jobsite/internal/server"
)

// @title           Job Site Task Tracker API
// @version         1.0
// @description     API for managing job sites, task assignments and real-time status notifications.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
