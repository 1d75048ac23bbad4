package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/store"
)

var (
	cfg     *common.Config
	logger  *slog.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cardscan",
	Short: "Digitize business cards with a multimodal language model",
	Long: `cardscan sends a card image or PDF to the inference endpoint, extracts
the contact fields from the reply, and manages the saved records.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelInfo
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		cfg = common.LoadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details to stderr")
}

func newCatalog() *store.FileStore {
	return store.NewFileStore(cfg.Catalog.Dir, logger)
}
