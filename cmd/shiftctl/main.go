package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnavshah/help-scheduler-go/pkg/auth"
	"github.com/arnavshah/help-scheduler-go/pkg/config"
	"github.com/arnavshah/help-scheduler-go/pkg/database"
	"github.com/arnavshah/help-scheduler-go/pkg/handlers"
	"github.com/arnavshah/help-scheduler-go/pkg/shiftcode"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:          "shiftctl",
		Short:        "Help staff schedule tools: report export, shift decoding and editor accounts",
		SilenceUsage: true,
	}
	cmd.Version = handlers.Version
	cmd.SetVersionTemplate("shiftctl v{{.Version}}\n")

	cmd.AddCommand(exportCmd(), decodeCmd(), editorCmd())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <shift>...",
		Short: "Show how stored shift strings are read",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, raw := range args {
				code := shiftcode.Decode(raw)
				cell := shiftcode.Render(code)
				fmt.Fprintf(out, "%s\n  kind:  %s\n  days:  %.1f\n  saved: %s\n  cell:  %s\n",
					raw, code.Kind, shiftcode.DayValue(code), code.String(),
					strings.ReplaceAll(cell.Text, "\n", " / "))
			}
		},
	}
}

func editorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "editor <username> <password>",
		Short: "Create an editor account or reset its password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := database.Open(cfg.DatabaseURL, cfg.DataPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err := auth.SetPassword(db, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "editor %s saved\n", args[0])
			return nil
		},
	}
}
