package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizionix/internal/usermodel"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		e, err := bootstrap(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if subject != "" && !e.cat.HasSubject(subject) {
			return fmt.Errorf("unknown subject %q (want one of %s)", subject, strings.Join(e.cat.Subjects(), ", "))
		}

		w := cmd.OutOrStdout()
		p := e.quiz.ProgressionDisplay()
		fmt.Fprintf(w, "Learner: %s\n", e.users.UserID())
		fmt.Fprintf(w, "Rank:    %s (level %d)\n", p.Rank, p.Level)
		if p.RankProgress.NextRank != "" {
			fmt.Fprintf(w, "         %d/%d XP to %s\n", p.RankProgress.Current, p.RankProgress.Target, p.RankProgress.NextRank)
		}
		fmt.Fprintf(w, "XP:      %d   Coins: %d\n", p.TotalXP, p.TotalCoins)
		if e.memoryOnly {
			fmt.Fprintln(w, "Storage: unavailable, showing a fresh profile")
		}
		fmt.Fprintf(w, "Zones:   %d%% mastery, %d badges\n\n", e.zone.OverallMastery(), e.zone.State().Badges.Len())

		subjects := e.cat.Subjects()
		if subject != "" {
			subjects = []string{subject}
		}

		// Header.
		fmt.Fprintf(w, "%-12s  %8s  %7s  %7s  %7s  %8s  %6s  %-12s  %s\n",
			"Subject", "Attempts", "Correct", "Wrong", "Skipped", "Accuracy", "XP", "Difficulty", "Signals (M/E/P/U)")
		fmt.Fprintln(w, strings.Repeat("─", 105))
		for _, s := range subjects {
			snap := e.users.SubjectSnapshot(s)
			sig := e.users.ResearchSignals(s)
			fmt.Fprintf(w, "%-12s  %8d  %7d  %7d  %7d  %7d%%  %6d  %-12s  %s\n",
				s, snap.Attempted, snap.Correct, snap.Incorrect, snap.Skipped+snap.TimedOut,
				snap.Accuracy, e.users.SubjectXP(s), snap.LastDifficulty, signals(sig))
		}

		fmt.Fprintln(w, "\nStudy plan, weakest first:")
		for i, entry := range e.quiz.StudyPlan(subject) {
			var topics []string
			for _, t := range entry.WeakTopics {
				topics = append(topics, fmt.Sprintf("%s (%d%%)", t.Topic, t.Accuracy))
			}
			weak := "no weak topics yet"
			if len(topics) > 0 {
				weak = strings.Join(topics, ", ")
			}
			fmt.Fprintf(w, "%2d. %-12s %3d%%  start at %-12s %s\n",
				i+1, entry.Subject, entry.Accuracy, entry.RecommendedDifficulty, weak)
		}

		sessions := e.users.Sessions()
		fmt.Fprintf(w, "\n%d quizzes played\n", len(sessions))
		return nil
	},
}

func signals(s usermodel.Signals) string {
	return fmt.Sprintf("%d/%d/%d/%d", s.Motivation, s.Engagement, s.PerceivedEffectiveness, s.Usability)
}

func init() {
	statsCmd.Flags().String("subject", "", "Limit the report to one subject")
}
