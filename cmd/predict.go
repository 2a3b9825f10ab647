package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/results"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Estimate the performance category for a set of scores",
	Long: "Estimates the performance category from the three core scores. Pass the\n" +
		"scores as flags, or --id to use a stored result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f predict.Features
		if id, _ := cmd.Flags().GetString("id"); id != "" {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			r, err := findResult(cmd, st.ResultRepo(), id)
			if err != nil {
				return err
			}
			f = predict.FromResult(r)
		} else {
			var edu int
			f.VisualMemory, _ = cmd.Flags().GetFloat64("visual")
			f.WorkingMemory, _ = cmd.Flags().GetFloat64("working")
			f.SustainedAttention, _ = cmd.Flags().GetFloat64("attention")
			f.Age, _ = cmd.Flags().GetInt("age")
			edu, _ = cmd.Flags().GetInt("education")
			f.Education = results.Education(edu)
			if err := checkFeatures(f); err != nil {
				return err
			}
		}

		res := predict.Predict(f)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Average:    %.2f\n", res.Average)
		fmt.Fprintf(out, "Category:   %s\n", res.Category)
		fmt.Fprintf(out, "Confidence: %.0f%%\n\n", res.Confidence*100)
		for _, l := range classify.Labels {
			fmt.Fprintf(out, "  %-7s %5.1f%%\n", l, res.Probabilities[l]*100)
		}
		return nil
	},
}

func checkFeatures(f predict.Features) error {
	for name, v := range map[string]float64{
		"visual":    f.VisualMemory,
		"working":   f.WorkingMemory,
		"attention": f.SustainedAttention,
	} {
		if v < 0 || v > results.MaxScore {
			return fmt.Errorf("--%s must be between 0 and %.0f, got %g", name, results.MaxScore, v)
		}
	}
	if f.Age < results.MinAge || f.Age > results.MaxAge {
		return fmt.Errorf("--age must be between %d and %d, got %d", results.MinAge, results.MaxAge, f.Age)
	}
	if !f.Education.Valid() {
		return fmt.Errorf("--education must be 1, 2 or 3, got %d", f.Education)
	}
	return nil
}

func init() {
	predictCmd.Flags().Float64("visual", 0, "Visual memory score (0-10)")
	predictCmd.Flags().Float64("working", 0, "Working memory score (0-10)")
	predictCmd.Flags().Float64("attention", 0, "Sustained attention score (0-10)")
	predictCmd.Flags().Int("age", 25, "Participant age")
	predictCmd.Flags().Int("education", int(results.EducationSecondary), "Education level: 1 basic, 2 secondary, 3 higher")
	predictCmd.Flags().String("id", "", "Use the stored result with this participant id (or \"latest\")")
	predictCmd.MarkFlagsMutuallyExclusive("id", "visual")
	predictCmd.MarkFlagsMutuallyExclusive("id", "working")
	predictCmd.MarkFlagsMutuallyExclusive("id", "attention")
}
