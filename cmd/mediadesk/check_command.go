package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mediadesk/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the media roots and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.MediaRequirements(cfg))

			if jsonOutput {
				if err := writeJSON(cmd, statuses); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(statuses))
				for _, s := range statuses {
					location := s.Path
					if !s.Available {
						location = s.Detail
					}
					rows = append(rows, []string{s.Name, s.Command, yesNo(s.Available), location})
				}
				fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Available", "Location"}, rows, nil))

				if len(cfg.Paths.Roots) == 0 {
					fmt.Fprintln(out, "Media roots: none configured (set paths.roots or MEDIA_ROOTS)")
				} else {
					fmt.Fprintln(out, "Media roots:")
					for _, root := range cfg.Paths.Roots {
						fmt.Fprintf(out, "  %s\n", root)
					}
				}
			}

			if !deps.AllAvailable(statuses) {
				return errors.New("required tools are missing")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit tool status as JSON")
	return cmd
}
