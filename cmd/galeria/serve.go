package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/galeria-api/internal/database"
	"github.com/deppfellow/galeria-api/internal/handler"
	"github.com/deppfellow/galeria-api/internal/middleware"
	"github.com/deppfellow/galeria-api/internal/repository"
	"github.com/deppfellow/galeria-api/internal/router"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if migrate {
				ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
				err := database.Migrate(ctx, &log, cfg)
				cancel()
				if err != nil {
					log.Fatal().Err(err).Msg("failed to migrate database")
				}
			}

			srv, err := server.New(cfg, &log, loggerService)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize server")
			}

			repos := repository.NewRepositories(srv)
			services := service.NewServices(srv, repos)
			handlers := handler.NewHandlers(srv, services)
			middlewares := middleware.NewMiddlewares(srv)

			srv.SetupHTTPServer(router.NewRouter(srv, handlers, middlewares))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("failed to start server")
				}
			}()

			<-ctx.Done()
			log.Info().Msg("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply database migrations before serving")
	return cmd
}
