package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/config"
	"github.com/abhisek/memoriz/internal/dataset"
	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/store"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Import, export or clear result datasets",
}

var datasetImportCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Replace the imported dataset with a CSV or XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := dataset.Import(args[0])
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		out := cmd.OutOrStdout()
		for _, e := range res.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", e)
		}
		if len(res.Records) == 0 {
			fmt.Fprintf(out, "No usable rows in %s (%d read, %d skipped). Dataset unchanged.\n", args[0], res.Rows, res.Skipped)
			return nil
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.ResultRepo().ReplaceDataset(cmd.Context(), res.Records); err != nil {
			return fmt.Errorf("store dataset: %w", err)
		}
		fmt.Fprintf(out, "Imported %d records from %s (%d skipped).\n", len(res.Records), args[0], res.Skipped)
		return nil
	},
}

var datasetExportCmd = &cobra.Command{
	Use:   "export [file.csv|file.xlsx]",
	Short: "Export results to a CSV or XLSX file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			path = filepath.Join(config.DefaultExportDir(), "memoriz-"+time.Now().Format("20060102-150405")+".csv")
		}
		if _, err := dataset.FormatFor(path); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := loadSource(cmd, st.ResultRepo(), source)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export.")
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		if err := dataset.Export(path, recs); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(recs), path)
		return nil
	},
}

var datasetClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the imported dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirm(cmd, "Remove the imported dataset?"); err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.ResultRepo().ClearCollection(cmd.Context(), store.CollectionDataset); err != nil {
			return fmt.Errorf("clear dataset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Imported dataset removed.")
		return nil
	},
}

// loadSource reads "results", "dataset" or "all".
func loadSource(cmd *cobra.Command, repo store.ResultRepo, source string) ([]results.TestResult, error) {
	var (
		recs []results.TestResult
		err  error
	)
	switch source {
	case "results":
		recs, err = repo.Results(cmd.Context())
	case "dataset":
		recs, err = repo.Dataset(cmd.Context())
	case "all", "":
		recs, err = repo.Combined(cmd.Context())
	default:
		return nil, fmt.Errorf("unknown source %q: want results, dataset or all", source)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return recs, nil
}

func init() {
	datasetExportCmd.Flags().String("source", "all", "Records to export: results, dataset or all")
	datasetClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	datasetCmd.AddCommand(datasetImportCmd)
	datasetCmd.AddCommand(datasetExportCmd)
	datasetCmd.AddCommand(datasetClearCmd)
}
