package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vizitka/card-scanner/constants"
	"github.com/vizitka/card-scanner/internal/llm/gigachat"
	"github.com/vizitka/card-scanner/internal/pdftext"
	"github.com/vizitka/card-scanner/internal/scan"
	"github.com/vizitka/card-scanner/internal/store"
)

var (
	saveFile bool
	saveDB   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Recognize one card image or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			return fmt.Errorf("unsupported file type: %s", path)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		client := gigachat.NewClient(gigachat.Config{
			AuthURL:     cfg.GigaChat.AuthURL,
			BaseURL:     cfg.GigaChat.BaseURL,
			APIKey:      cfg.GigaChat.APIKey,
			Model:       cfg.GigaChat.Model,
			Scope:       cfg.GigaChat.Scope,
			Timeout:     cfg.GigaChat.Timeout,
			AuthTimeout: cfg.GigaChat.AuthTimeout,
			Insecure:    cfg.GigaChat.Insecure,
		}, logger)
		pdf := pdftext.NewExtractor(pdftext.Config{Pdftotext: cfg.PDFText.Pdftotext}, logger)
		orc := scan.NewOrchestrator(client, pdf, logger)
		worker := scan.NewWorker(orc, cfg.GigaChat.Timeout+cfg.GigaChat.AuthTimeout, logger)

		results, err := worker.Submit(cmd.Context(), path)
		if err != nil {
			return err
		}
		job := <-results
		if job.Err != nil {
			return job.Err
		}

		res := job.Result
		if res.Outcome.Warning != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", res.Outcome.Warning)
		}
		if !res.Outcome.Accepted {
			fmt.Fprintln(cmd.ErrOrStderr(), "rejected:", res.Outcome.Reason)
			fmt.Fprintln(cmd.OutOrStdout(), res.RawText)
			return fmt.Errorf("record rejected")
		}

		rec := res.Outcome.Record
		fmt.Fprintln(cmd.OutOrStdout(), "name:       ", rec.Name)
		for _, p := range rec.Phones {
			fmt.Fprintln(cmd.OutOrStdout(), "phone:      ", p)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "email:      ", rec.Email)
		fmt.Fprintln(cmd.OutOrStdout(), "address:    ", rec.Address)
		fmt.Fprintln(cmd.OutOrStdout(), "description:", rec.Description)

		contact := rec.Contact()
		if saveFile {
			id, err := newCatalog().Save(cmd.Context(), contact)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "saved to file:", id)
		}
		if saveDB {
			db, err := store.Open(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()
			id, err := db.Save(cmd.Context(), contact)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "saved to database, id:", id)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&saveFile, "save-file", false, "persist the accepted record as a JSON file in the catalog")
	scanCmd.Flags().BoolVar(&saveDB, "save-db", false, "persist the accepted record as a database row")
	rootCmd.AddCommand(scanCmd)
}
