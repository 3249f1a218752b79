package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizionix/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export anonymised research data",
	Long:  "Export the learner's progression, sessions, telemetry and zone research log. The user id is hashed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		formatFlag, _ := cmd.Flags().GetString("format")
		if !cmd.Flags().Changed("format") && strings.EqualFold(filepath.Ext(out), ".xlsx") {
			formatFlag = string(export.XLSX)
		}
		format, err := export.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		if format == export.XLSX && out == "" {
			return fmt.Errorf("--out is required for xlsx exports")
		}

		e, err := bootstrap(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		bundle := export.Build(e.users, e.zone, time.Now())

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := export.Write(w, format, bundle); err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d sessions and %d telemetry events to %s\n",
				len(bundle.Sessions), len(bundle.Telemetry), out)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", string(export.JSON), "Output format: json or xlsx")
	exportCmd.Flags().String("out", "", "Output file (json defaults to stdout)")
}
