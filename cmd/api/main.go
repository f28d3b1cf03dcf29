package main

import (
	"flag"
	"os"

	"github.com/yigit/unidb/internal/config"
	"github.com/yigit/unidb/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/unidb/internal/server"
)

// @title University Database System API
// @version 1.0
// @description In-memory registries for professors, students, courses, degrees and departments

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
