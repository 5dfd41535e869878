package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/projecthub/api/v1"
	"github.com/projecthub/database"
	"github.com/projecthub/services"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}

			if cfg.IsDevelopment() {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			db, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					log.Error().Err(err).Msg("failed to close database")
				}
			}()

			svc, err := services.New(db, cfg, log)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(svc.Uploads.Dir(), 0o755); err != nil {
				return err
			}

			server := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           v1.NewRouter(svc, cfg, log),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
