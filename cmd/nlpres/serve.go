package main

import (
	"github.com/spf13/cobra"

	"github.com/edgard/nlpres/internal/app"
	"github.com/edgard/nlpres/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load resources and keep them fresh until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.New(cfg.Log.Level, cfg.Log.JSON)
		log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

		a, err := app.New(cfg, log)
		if err != nil {
			log.Error("Failed to create application", "error", err)
			return err
		}
		if err := a.Run(cmd.Context()); err != nil {
			log.Error("Application exited with error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
