package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/app"
	"github.com/abhisek/memoriz/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options, mode *session.Mode) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	deps, err := buildDeps(cmd, st, mode)
	if err != nil {
		return err
	}
	return app.Run(deps, opts)
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Start an assessment straight away",
	Long: "Opens the TUI directly in an assessment. The full battery runs the visual,\n" +
		"working memory and attention tests; --drill runs the reverse-recall drill only.",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := session.ModeFullBattery
		if drill, _ := cmd.Flags().GetBool("drill"); drill {
			mode = session.ModeWorkingMemory
		}
		return runApp(cmd, app.Options{Assess: true}, &mode)
	},
}

func init() {
	assessCmd.Flags().Bool("drill", false, "Run the working memory drill instead of the full battery")
}
