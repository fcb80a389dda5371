package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediadesk/internal/api"
	"mediadesk/internal/catalog"
	"mediadesk/internal/sandbox"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "List a directory inside the media roots",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var raw string
			if len(args) == 1 {
				raw = args[0]
			}

			box := sandbox.New(cfg.Paths.Roots)
			dir, err := box.Resolve(raw)
			if err != nil {
				return err
			}
			entries, err := catalog.New(cfg.Media.VideoExtensions, cfg.Media.SubtitleExtensions).List(dir)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, api.BrowseResponse{Path: dir, Entries: api.FromEntries(entries)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, dir)
			if len(entries) == 0 {
				fmt.Fprintln(out, "(empty)")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				size := "-"
				if !e.IsDir {
					size = strconv.FormatInt(e.Size, 10)
				}
				rows = append(rows, []string{e.Name, string(e.Kind), size, e.Modified.Local().Format("2006-01-02 15:04")})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Kind", "Size", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the listing as JSON")
	return cmd
}
