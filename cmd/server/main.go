package main

import (
	"log"

	_ "synergysphere/docs"
	"synergysphere/internal/config"
	"synergysphere/internal/server"
)

// @title           SynergySphere API
// @version         1.0
// @description     Team collaboration API: projects, tasks, team membership, chat, notifications, and analytics.

// @host      localhost:8080
// @BasePath  /api

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
