package cli

import (
	"github.com/spf13/cobra"

	"mojiport/internal/app"
	"mojiport/internal/config"
	appErrors "mojiport/internal/errors"
	"mojiport/internal/infra/fs"
	"mojiport/internal/logging"
	"mojiport/internal/presentation"
	"mojiport/internal/slack"
)

func newDownloadCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download every custom emoji image from the source workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateList(); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "download", "", err)
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)

			client := slack.NewClient()
			lister := app.Lister{
				Source:  client.Source(cfg.SourceToken),
				IsAlias: slack.IsAlias,
				Log:     log,
			}
			inv, err := lister.Run(cmd.Context())
			if err != nil {
				return stageError("download", err)
			}
			log.Info().Int("count", len(inv)).Msg("catalog listed")

			downloader := app.Downloader{Fetcher: client, FS: fs.OSFS{}, Log: log}
			report, err := downloader.Run(cmd.Context(), inv, cfg.OutputDir)
			if err != nil {
				return appErrors.Wrap(appErrors.IOFailure, "download", cfg.OutputDir, err)
			}

			printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}
			printer.PrintDownload(report)
			return nil
		},
	}

	sourceFlags(cmd, cfg)
	outputDirFlag(cmd, cfg)
	return cmd
}
