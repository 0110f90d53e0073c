package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gtri-thrive/toolkit/internal/config"
	"github.com/gtri-thrive/toolkit/internal/export"
	"github.com/gtri-thrive/toolkit/internal/store"
)

var (
	exportID     int64
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved experience as PNG, PDF or DOCX",
	Long:  `Render a saved experience's bullet sheet and write it to a file. PNG and PDF exports require a Chrome or Chromium installation.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().Int64Var(&exportID, "id", 0, "ID of the saved experience (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "png", "Output format: png, pdf or docx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (default experience-<id>.<format>)")
	_ = exportCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format := export.Format(exportFormat)
	if !format.Valid() {
		return fmt.Errorf("invalid format %q: must be png, pdf or docx", exportFormat)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	kv, err := store.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}

	exp, err := store.NewExperienceStore(kv).Get(exportID)
	if err != nil {
		return err
	}

	exporter := export.New(nil)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var data []byte
	switch format {
	case export.FormatPNG:
		data, err = exporter.ExperiencePNG(ctx, exp)
	case export.FormatPDF:
		data, err = exporter.ExperiencePDF(ctx, exp)
	case export.FormatDOCX:
		data, err = exporter.ExperienceDOCX(ctx, exp)
	}
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("experience-%d.%s", exportID, format)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Exported experience %d to %s (%d bytes)\n", exportID, out, len(data))
	return nil
}
