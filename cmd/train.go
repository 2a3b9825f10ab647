package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/sequence"
	"github.com/abhisek/memoriz/internal/stats"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier on stored and imported results",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		fc, err := loadFileConfig(cmd)
		if err != nil {
			return err
		}
		cfg, err := fc.ApplyClassify(classify.DefaultConfig())
		if err != nil {
			return fmt.Errorf("classify config: %w", err)
		}
		if cmd.Flags().Changed("noise") {
			noise, _ := cmd.Flags().GetFloat64("noise")
			if noise < 0 || noise > 1 {
				return fmt.Errorf("--noise %.2f outside 0-1", noise)
			}
			cfg.Noise = noise
		}

		recs, err := st.ResultRepo().Combined(cmd.Context())
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}

		src := sequence.NewTimeSource()
		if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
			src = sequence.NewSource(seed)
		}
		report, err := classify.NewEngine(cfg, src).Train(recs)
		if errors.Is(err, classify.ErrInsufficientData) {
			fmt.Fprintf(cmd.OutOrStdout(), "Need at least %d records to train, have %d.\n", cfg.MinSamples, len(recs))
			fmt.Fprintln(cmd.OutOrStdout(), "Run some assessments, import a dataset or use `memoriz simulate`.")
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Trained on %d records\n\n", report.Samples)
		if err := stats.RenderMetrics(out, report.Metrics); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nMacro F1: %.2f\n\nFeature importance\n", report.Metrics.MacroF1())
		if err := stats.RenderImportance(out, report.Importance); err != nil {
			return err
		}

		if verbose, _ := cmd.Flags().GetBool("misclassified"); verbose {
			fmt.Fprintln(out, "\nMisclassified")
			n := 0
			for _, p := range report.Predictions {
				if p.True == p.Predicted {
					continue
				}
				n++
				fmt.Fprintf(out, "  %-24s avg %.2f  true %-6s predicted %s\n", p.ParticipantID, p.Average, p.True, p.Predicted)
			}
			if n == 0 {
				fmt.Fprintln(out, "  none")
			}
		}
		return nil
	},
}

func init() {
	trainCmd.Flags().Uint64("seed", 0, "Random seed for the noise (0 picks one from the clock)")
	trainCmd.Flags().Float64("noise", classify.DefaultConfig().Noise, "Chance a prediction is replaced by a random label")
	trainCmd.Flags().Bool("misclassified", false, "List the records whose prediction differs from the true label")
}
