package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List past sessions, or the trials of one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if len(args) == 1 {
			return printTrials(cmd, st.EventRepo(), args[0])
		}

		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := st.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-5s  %-20s  %6s  %8s  %5s\n",
			"Session", "Date", "Mode", "Participant", "Trials", "Duration", "Avg")
		fmt.Fprintln(out, strings.Repeat("─", 108))
		for _, s := range sessions {
			avg := "-"
			if s.CoreAverage > 0 {
				avg = fmt.Sprintf("%.2f", s.CoreAverage)
			}
			fmt.Fprintf(out, "%-36s  %-16s  %-5s  %s  %6s  %8s  %5s\n",
				s.SessionID,
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				s.Mode,
				runewidth.FillRight(runewidth.Truncate(s.ParticipantID, 20, "…"), 20),
				fmt.Sprintf("%d/%d", s.Correct, s.Trials),
				fmt.Sprintf("%dm%02ds", s.DurationSecs/60, s.DurationSecs%60),
				avg,
			)
		}
		return nil
	},
}

func printTrials(cmd *cobra.Command, events store.EventRepo, sessionID string) error {
	trials, err := events.QueryTrialEvents(cmd.Context(), sessionID)
	if err != nil {
		return fmt.Errorf("query trials: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(trials) == 0 {
		fmt.Fprintf(out, "No trials recorded for session %s.\n", sessionID)
		return nil
	}

	fmt.Fprintf(out, "%-16s  %3s  %-9s  %-9s  %2s  %5s  %7s\n", "Phase", "#", "Shown", "Response", "OK", "Score", "RT ms")
	fmt.Fprintln(out, strings.Repeat("─", 64))
	for _, t := range trials {
		ok := "✓"
		if !t.Correct {
			ok = "✗"
		}
		fmt.Fprintf(out, "%-16s  %3d  %-9s  %-9s  %s  %5.1f  %7d\n",
			t.Phase, t.TrialIndex+1, t.Shown, t.Response, runewidth.FillRight(ok, 2), t.Score, t.ReactionMs)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to list")
}
