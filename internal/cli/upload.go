package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mojiport/internal/app"
	"mojiport/internal/config"
	appErrors "mojiport/internal/errors"
	"mojiport/internal/infra/fs"
	"mojiport/internal/logging"
	"mojiport/internal/presentation"
	"mojiport/internal/slack"
)

func newUploadCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload previously downloaded images to the destination workspace",
		Long: `Upload submits every image in the output directory to the destination
workspace, deriving each emoji name from its file stem.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateUpload(); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "upload", "", err)
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)

			filesystem := fs.OSFS{}
			assets, err := app.ScanAssets(filesystem, cfg.OutputDir)
			if err != nil {
				return appErrors.Wrap(appErrors.IOFailure, "scan", cfg.OutputDir, err)
			}
			if len(assets) == 0 {
				log.Warn().Str("dir", cfg.OutputDir).Msg("no images found")
			}

			uploader := newUploader(cfg, log)
			report, err := uploader.Run(cmd.Context(), assets)
			if err != nil {
				return appErrors.Wrap(appErrors.Internal, "upload", "", err)
			}

			printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}
			printer.PrintUpload(report)
			return nil
		},
	}

	destinationFlags(cmd, cfg)
	outputDirFlag(cmd, cfg)
	return cmd
}

// newUploader wires the uploader against the live Slack endpoints.
func newUploader(cfg *config.Config, log zerolog.Logger) app.Uploader {
	client := slack.NewClient()
	return app.Uploader{
		Sink: client.Sink(slack.UploadCredentials{
			Cookie: cfg.Cookie,
			Token:  cfg.Token,
			TeamID: cfg.TeamID,
		}),
		FS: fs.OSFS{},
		Policy: app.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   time.Second,
			Multiplier:  2,
		},
		Pause:         cfg.UploadPause,
		AlreadyExists: slack.IsAlreadyExists,
		RateLimited:   slack.RateLimitHint,
		Log:           log,
	}
}
