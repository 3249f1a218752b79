package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizionix/internal/practice"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Reset the selected learner's progress. With --all every learner and every stored key is removed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := bootstrap(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		if e.memoryOnly {
			return fmt.Errorf("storage backend %q is unavailable, nothing was reset", e.cfg.Storage.Backend)
		}

		target := fmt.Sprintf("learner %q", e.users.UserID())
		if all {
			target = "ALL learners"
		}
		if !yes && !confirm(cmd, fmt.Sprintf("Erase progress for %s? [y/N] ", target)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		if all {
			e.users.Clear(e.ctx)
			if err := e.kv.Clear(e.ctx); err != nil {
				return fmt.Errorf("clear store: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All learner data erased.")
			return nil
		}

		e.users.ResetUser(e.ctx)
		e.zone.Reset()
		e.practice = practice.NewGame(e.cat.ZoneWideTemplates(), practice.NewState())
		svc := e.services()
		svc.SaveZone(e.ctx)
		svc.SavePractice(e.ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Progress for %s erased.\n", e.users.UserID())
		return nil
	},
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	resetCmd.Flags().Bool("all", false, "Erase every learner and all stored data")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
