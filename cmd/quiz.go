package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/app"
	"github.com/abhisek/quizionix/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Start a quick quiz",
	Long:  "Start a quiz directly. Without --subject the subject and goal pickers are shown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		goal, _ := cmd.Flags().GetString("goal")
		questions, _ := cmd.Flags().GetInt("questions")

		if goal != "" && !adapt.Goal(goal).Valid() {
			return fmt.Errorf("unknown goal %q (want one of %v)", goal, adapt.AllGoals())
		}
		if questions < 0 {
			return fmt.Errorf("--questions must be positive, got %d", questions)
		}

		return launch(cmd, app.Options{
			Start: app.StartQuiz,
			Quiz: quiz.Options{
				Subject:        subject,
				Goal:           adapt.Goal(goal),
				TotalQuestions: questions,
			},
		})
	},
}

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Open the zone map",
	RunE: func(cmd *cobra.Command, args []string) error {
		return launch(cmd, app.Options{Start: app.StartZone})
	},
}

func init() {
	quizCmd.Flags().String("subject", "", "Subject: Science, Technology, Engineering or Mathematics")
	quizCmd.Flags().String("goal", "", "Learning goal: practice_basics, challenge_mode or weak_areas")
	quizCmd.Flags().Int("questions", 0, "Number of questions (defaults to the configured quiz length)")
}
