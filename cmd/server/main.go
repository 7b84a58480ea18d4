package main

import (
	"fmt"
	"log"

	"robfu/internal/config"
	"robfu/internal/database"
	"robfu/internal/handlers"
	"robfu/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)

	handlers.Setup(cfg)
	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
