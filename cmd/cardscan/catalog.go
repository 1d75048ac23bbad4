package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizitka/card-scanner/internal/entity"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved card records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newCatalog().List(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.Unreadable {
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s (unreadable)\n", e.ID, e.DisplayName)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", e.ID, e.DisplayName)
		}
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := newCatalog().Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var (
	editName        string
	editPhones      string
	editEmail       string
	editAddress     string
	editDescription string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a saved record's fields",
	Long: `edit overwrites the record with the supplied fields. This is a full
replacement, not a merge: omitted flags become empty fields. Phones are given
as one comma-separated string and re-split.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var phones []string
		for _, p := range strings.Split(editPhones, ",") {
			if p = strings.TrimSpace(p); p != "" {
				phones = append(phones, p)
			}
		}
		rec := entity.Contact{
			Name:        editName,
			Phones:      phones,
			Email:       editEmail,
			Address:     editAddress,
			Description: editDescription,
		}
		if err := newCatalog().Update(cmd.Context(), args[0], rec); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "updated:", args[0])
		return nil
	},
}

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteYes {
			fmt.Fprintf(cmd.OutOrStdout(), "delete %s? [y/N] ", args[0])
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
		}
		if err := newCatalog().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted:", args[0])
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "company name")
	editCmd.Flags().StringVar(&editPhones, "phones", "", "comma-separated phone numbers")
	editCmd.Flags().StringVar(&editEmail, "email", "", "email address")
	editCmd.Flags().StringVar(&editAddress, "address", "", "postal address")
	editCmd.Flags().StringVar(&editDescription, "description", "", "free-form description")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(listCmd, viewCmd, editCmd, deleteCmd)
}
