package main

import (
	"fmt"

	"github.com/deppfellow/galeria-api/internal/config"
	"github.com/deppfellow/galeria-api/internal/handler"
	"github.com/deppfellow/galeria-api/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "galeria",
		Short:         "REST API for the image gallery, its administrators and contact info",
		Version:       handler.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to start New Relic: %w", err)
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, loggerService, log, nil
}
