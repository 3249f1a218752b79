package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizionix/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "quizionix",
	Short: "Gamified adaptive STEM quiz",
	Long:  "Quizionix: a terminal quiz game that adapts STEM questions to each learner and rewards progress with XP, coins and badges.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return launch(cmd, app.Options{Start: app.StartHome})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZIONIX_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides QUIZIONIX_CONFIG env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner email or name selecting the profile (overrides QUIZIONIX_USER env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(zoneCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// launch bootstraps the engines and runs the TUI.
func launch(cmd *cobra.Command, opts app.Options) error {
	e, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	opts.Services = e.services()
	return app.Run(opts)
}
