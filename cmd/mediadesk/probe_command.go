package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediadesk/internal/api"
	"mediadesk/internal/media/ffprobe"
	"mediadesk/internal/mediainfo"
	"mediadesk/internal/sandbox"
	"mediadesk/internal/services"
	"mediadesk/internal/toolexec"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Print ffprobe stream metadata for a file inside the media roots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := sandbox.New(cfg.Paths.Roots).Resolve(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return services.Wrap(services.ErrIO, "cli", "probe", "", err)
			}
			if info.IsDir() {
				return services.Wrap(services.ErrInvalidInput, "cli", "probe", fmt.Sprintf("%s is a directory", path), nil)
			}

			logger := ctx.cliLogger()
			runner := toolexec.New(logger)
			if raw {
				result, err := ffprobe.Inspect(cmd.Context(), runner, cfg.FFprobeBinary(), path)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if _, err := out.Write(result.RawJSON()); err != nil {
					return err
				}
				_, err = fmt.Fprintln(out)
				return err
			}

			report := mediainfo.NewProber(runner, cfg.FFprobeBinary(), logger).Probe(cmd.Context(), path)
			if err := writeJSON(cmd, api.ProbeResponse{
				Path:     path,
				Size:     info.Size(),
				Modified: api.FormatTime(info.ModTime()),
				Meta:     report,
			}); err != nil {
				return err
			}
			if !report.OK() {
				return services.Wrap(services.ErrExternalTool, "cli", "probe", report.Error, nil)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the unmodified ffprobe JSON")
	return cmd
}
