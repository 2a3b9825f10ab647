package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show population statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := loadSource(cmd, st.ResultRepo(), source)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := stats.RenderSummary(out, stats.Summarize(recs)); err != nil {
			return err
		}
		if list, _ := cmd.Flags().GetBool("records"); list {
			fmt.Fprintln(out)
			return stats.RenderResults(out, stats.Valid(recs))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("source", "all", "Records to summarize: results, dataset or all")
	statsCmd.Flags().Bool("records", false, "Also list every valid record")
}
