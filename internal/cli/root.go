// Package cli implements the command line interface of the backend.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dds-tracker/backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands.
type app struct {
	configFile string
	config     *config.Config
}

// NewRootCmd creates the root command with all subcommands. Running it
// without a subcommand starts the server.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "dds-backend",
		Short: "Backend for cash flow record keeping",
		Long: `dds-backend serves the JSON API for cash flow records and their
taxonomy of statuses, types, categories and subcategories.

Configuration is read from the environment, an optional .env file
in the working directory and an optional config file.`,
		PersistentPreRunE: a.initialize,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), a.config)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: environment and .env only)")

	cmd.AddCommand(serveCmd(a))
	cmd.AddCommand(seedCmd(a))
	cmd.AddCommand(versionCmd())

	return cmd
}

// Execute runs the root command and exits with a non-zero code on errors.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initialize loads the configuration and sets up gin and the logger.
func (a *app) initialize(_ *cobra.Command, _ []string) error {
	c, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.config = c

	gin.SetMode(c.GinMode)
	setupLogging(c.LogFormat)

	return nil
}

// setupLogging configures the global logger.
//
// If the log format is not set, it defaults to human readable for
// development and JSON for release.
func setupLogging(format string) {
	output := io.Writer(os.Stdout)
	if (format == "" && gin.IsDebugging()) || format == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}
