package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/interpret"
	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/results"
)

var interpretCmd = &cobra.Command{
	Use:   "interpret [participant-id]",
	Short: "Write an interpretation of a stored result",
	Long: "Interprets a stored result (the latest one by default). When an LLM provider\n" +
		"is configured it writes the narrative, otherwise built-in rules are used.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := "latest"
		if len(args) == 1 {
			id = args[0]
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		r, err := findResult(cmd, st.ResultRepo(), id)
		if err != nil {
			return err
		}

		n := interpret.Rules(r)
		if rules, _ := cmd.Flags().GetBool("rules"); !rules {
			fc, err := loadFileConfig(cmd)
			if err != nil {
				return err
			}
			if in := newInterpreter(cmd.Context(), fc, st.EventRepo()); in != nil {
				ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
				defer cancel()
				n, err = in.Explain(ctx, r)
				if err != nil {
					fmt.Fprintln(os.Stderr, "warning: model interpretation failed:", err)
				}
			}
		}

		printNarrative(cmd.OutOrStdout(), r, n)
		return nil
	},
}

func printNarrative(w io.Writer, r results.TestResult, n interpret.Narrative) {
	pred := predict.Predict(predict.FromResult(r))
	fmt.Fprintf(w, "%s  (%s)\n\n", r.ParticipantID, r.Timestamp.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Visual memory       %5.2f\n", r.VisualMemory)
	fmt.Fprintf(w, "Working memory      %5.2f\n", r.WorkingMemory)
	fmt.Fprintf(w, "Sustained attention %5.2f\n", r.SustainedAttention)
	fmt.Fprintf(w, "Predicted category  %s (%.0f%% confidence)\n\n", pred.Category, pred.Confidence*100)

	band := interpret.WorkingMemoryBand(r.WorkingMemory / results.MaxScore)
	fmt.Fprintln(w, band.Message())
	fmt.Fprintln(w)
	if n.Summary != "" {
		fmt.Fprintln(w, n.Summary)
		fmt.Fprintln(w)
	}
	printList(w, "Strengths", n.Strengths)
	printList(w, "Concerns", n.Concerns)
	if n.Recommendation != "" {
		fmt.Fprintln(w, "Recommendation:", n.Recommendation)
	}
	fmt.Fprintf(w, "\nSource: %s\n", n.Source)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, title+":")
	for _, s := range items {
		fmt.Fprintln(w, "  -", s)
	}
	fmt.Fprintln(w)
}

func init() {
	interpretCmd.Flags().Bool("rules", false, "Use the built-in rules even when an LLM is configured")
}
