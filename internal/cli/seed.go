package cli

import (
	"fmt"

	"github.com/dds-tracker/backend/internal/models"
	"github.com/dds-tracker/backend/internal/seed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func seedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the initial statuses, types, categories and subcategories",
		Long: `Create the initial taxonomy. Entities that already exist are matched
by name and left untouched, so the command can be run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := connect(a.config)
			if err != nil {
				return err
			}

			sqlDB, err := models.DB.DB()
			if err == nil {
				defer sqlDB.Close()
			}

			result, err := seed.Run(models.DB, seed.Default)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			log.Info().
				Int("statuses", result.Statuses).
				Int("types", result.Types).
				Int("categories", result.Categories).
				Int("subcategories", result.Subcategories).
				Msg("Seed")

			fmt.Fprintf(cmd.OutOrStdout(), "created %d entities\n", result.Total())
			return nil
		},
	}
}
