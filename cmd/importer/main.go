package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/importer"
)

func main() {
	var dataDir string

	root := &cobra.Command{
		Use:   "importer",
		Short: "Offline seeding utility for the review API database",
	}

	load := &cobra.Command{
		Use:   "load",
		Short: "Load CSV seed data into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}

			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

			db, err := database.ConnectDB(cfg, logger)
			if err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}

			return importer.New(db, logger).Load(dataDir)
		},
	}
	load.Flags().StringVar(&dataDir, "data-dir", "static/data", "directory with the CSV seed files")

	root.AddCommand(load)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
