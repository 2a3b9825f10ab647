package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/app"
	"github.com/abhisek/memoriz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "memoriz",
	Short: "Memory and attention assessment in the terminal",
	Long: "memoriz runs a short battery of visual memory, working memory and sustained\n" +
		"attention tests, stores the results locally and classifies performance.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnv(".env")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.Options{}, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MEMORIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (default $XDG_CONFIG_HOME/memoriz/config.toml)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(interpretCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
