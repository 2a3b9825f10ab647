package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored results and the imported dataset",
	Long: "Deletes stored results and the imported dataset. The session and trial\n" +
		"event log is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirm(cmd, "Delete all stored results and the imported dataset?"); err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.ResultRepo()
		for _, key := range []string{store.CollectionResults, store.CollectionDataset} {
			if err := repo.ClearCollection(cmd.Context(), key); err != nil {
				return fmt.Errorf("clear %s: %w", key, err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All results removed.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
