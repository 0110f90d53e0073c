package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gtri-thrive/toolkit/internal/config"
	"github.com/gtri-thrive/toolkit/internal/sample"
	"github.com/gtri-thrive/toolkit/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed-sample",
	Short: "Save a sample experience into the data store",
	Long:  `Save a complete sample experience so the API has realistic data to serve. Useful for demos and for trying exports without building an experience first.`,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	kv, err := store.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}

	saved, err := store.NewExperienceStore(kv).Save(sample.Experience())
	if err != nil {
		return fmt.Errorf("failed to save sample experience: %w", err)
	}

	fmt.Printf("Saved sample experience %d (%s at %s)\n", saved.ID, saved.Title, saved.Company)
	return nil
}
