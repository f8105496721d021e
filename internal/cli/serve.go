package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dds-tracker/backend/internal/config"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/dds-tracker/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Connect to the database, migrate it and serve the API until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), a.config)
		},
	}
}

// connect opens the configured database.
func connect(c *config.Config) error {
	if c.UsePostgres() {
		log.Info().Str("host", c.Postgres.Host).Str("database", c.Postgres.Name).Msg("Database")
		return models.ConnectPostgres(c.Postgres.DSN())
	}

	err := os.MkdirAll(filepath.Dir(c.DBFile), os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	log.Info().Str("file", c.DBFile).Msg("Database")
	return models.Connect(c.DBFile)
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, c *config.Config) error {
	err := connect(c)
	if err != nil {
		return err
	}

	r, teardown, err := router.Config(c)
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(c, r.Group("/"))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Int("port", c.Port).Msg("Server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	sqlDB, err := models.DB.DB()
	if err == nil {
		sqlDB.Close()
	}

	return nil
}
