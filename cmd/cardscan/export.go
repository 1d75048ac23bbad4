package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizitka/card-scanner/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to XLSX or CSV",
	Long:  `export writes all readable catalog records to a spreadsheet. The format follows the output file extension (.xlsx or .csv).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := export.NewService(newCatalog(), logger)

		var (
			data []byte
			err  error
		)
		switch {
		case strings.HasSuffix(exportOut, ".csv"):
			data, err = svc.ExportCSV(cmd.Context())
		case strings.HasSuffix(exportOut, ".xlsx"):
			data, err = svc.ExportXLSX(cmd.Context())
		default:
			return fmt.Errorf("unsupported export format: %s", exportOut)
		}
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "exported to", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "contacts.xlsx", "output file (.xlsx or .csv)")
	rootCmd.AddCommand(exportCmd)
}
