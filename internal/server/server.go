// Package server contains the go-gin server setup and route registration.
package server

import (
	"fmt"
	"net/http"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
)

// Server holds the resolved configuration and database instance shared by all
// route handlers.
type Server struct {
	Cfg *config.Config
	DB  *database.DBinstanceStruct
}

// NewServer constructs a new http.Server wired to the main database.
func NewServer() (*http.Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.GetMainDB()
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	s := &Server{Cfg: cfg, DB: db}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}
