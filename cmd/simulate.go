package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/simulate"
	"github.com/abhisek/memoriz/internal/stats"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate results by running scripted sessions",
	Long: "Runs complete sessions on a virtual clock with a scripted participant and\n" +
		"stores the results, which is useful for building a training set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("sessions")
		if n <= 0 {
			return fmt.Errorf("--sessions must be positive, got %d", n)
		}
		profile := simulate.DefaultProfile()
		profile.Skill, _ = cmd.Flags().GetFloat64("skill")
		profile.Vigilance, _ = cmd.Flags().GetFloat64("vigilance")
		profile.ReactionTime, _ = cmd.Flags().GetDuration("reaction-time")
		for name, p := range map[string]float64{"skill": profile.Skill, "vigilance": profile.Vigilance} {
			if p < 0 || p > 1 {
				return fmt.Errorf("--%s must be between 0 and 1, got %g", name, p)
			}
		}
		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		fc, err := loadFileConfig(cmd)
		if err != nil {
			return err
		}
		mode := session.ModeFullBattery
		if drill, _ := cmd.Flags().GetBool("drill"); drill {
			mode = session.ModeWorkingMemory
		}
		cfg, err := sessionConfig(fc, &mode)
		if err != nil {
			return fmt.Errorf("session config: %w", err)
		}

		opts := simulate.Options{
			Sessions: n,
			Config:   cfg,
			Profile:  profile,
			Seed:     seed,
			OnResult: func(i int, r results.TestResult) {
				fmt.Fprintf(cmd.ErrOrStderr(), "\rsession %d/%d", i+1, n)
			},
		}
		if !dryRun {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			opts.Results = st.ResultRepo()
			opts.Events = st.EventRepo()
		}

		recs, err := simulate.Run(cmd.Context(), opts)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}

		out := cmd.OutOrStdout()
		if err := stats.RenderResults(out, recs); err != nil {
			return err
		}
		if dryRun {
			fmt.Fprintf(out, "\n%d sessions simulated (seed %d), nothing stored.\n", len(recs), seed)
		} else {
			fmt.Fprintf(out, "\n%d sessions simulated (seed %d) and stored.\n", len(recs), seed)
		}
		return nil
	},
}

func init() {
	def := simulate.DefaultProfile()
	simulateCmd.Flags().IntP("sessions", "n", 20, "Number of sessions to run")
	simulateCmd.Flags().Float64("skill", def.Skill, "Chance a recall answer is fully correct (0-1)")
	simulateCmd.Flags().Float64("vigilance", def.Vigilance, "Chance an attention call is correct (0-1)")
	simulateCmd.Flags().Duration("reaction-time", def.ReactionTime, "Time taken to answer each trial")
	simulateCmd.Flags().Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	simulateCmd.Flags().Bool("drill", false, "Simulate working memory drills instead of the full battery")
	simulateCmd.Flags().Bool("dry-run", false, "Print results without storing them")
}
