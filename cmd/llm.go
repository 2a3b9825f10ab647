package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/interpret"
	"github.com/abhisek/memoriz/internal/llm"
	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Check the LLM provider and inspect request events",
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a sample interpretation request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig(cmd)
		if err != nil {
			return err
		}
		cfg, ok := fc.ResolveLLM(llm.DefaultConfig())
		if !ok {
			return errors.New("no LLM provider configured: set MEMORIZ_LLM_PROVIDER or a provider API key")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProvider(cmd.Context(), cfg, st.EventRepo())
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider: %s\nModel:    %s\n\n", cfg.Provider, provider.ModelID())

		ctx, cancel := context.WithTimeout(llm.WithPurpose(cmd.Context(), llm.PurposeProbe), time.Minute)
		defer cancel()
		start := time.Now()
		n, err := interpret.New(provider).Explain(ctx, sampleResult())
		if err != nil {
			return fmt.Errorf("request failed after %s: %w", time.Since(start).Round(time.Millisecond), err)
		}
		fmt.Fprintf(out, "OK in %s\n\n%s\n", time.Since(start).Round(time.Millisecond), n.Summary)
		return nil
	},
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM request events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

// sampleResult is a mid-range result used to exercise the provider.
func sampleResult() results.TestResult {
	return results.TestResult{
		ParticipantID:      "SAMPLE",
		Age:                42,
		Education:          results.EducationSecondary,
		ImmediateMemory:    5.4,
		WorkingMemory:      6,
		VisualMemory:       7.3,
		ReactionTimeMs:     1400,
		AccuracyPct:        60,
		SustainedAttention: 6.5,
		Fatigue:            2,
		Timestamp:          time.Now(),
	}
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (e.g. narrative)")

	llmCmd.AddCommand(llmTestCmd)
	llmCmd.AddCommand(llmListCmd)
}
