package main

import (
	"log"

	"github.com/dineshsutihar/Hire3-sub000/internal/server"
)

// @title Hire3 API
// @version 1.0
// @description Job board backend with on-chain posting fees, resume parsing and a social feed.
// @BasePath /api/v1
func main() {
	srv, err := server.NewServer()
	if err != nil {
		log.Fatalf("Failed to set up server: %s", err)
	}

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Cannot start server: %s", err)
	}
}
