package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"mojiport/internal/config"
	appErrors "mojiport/internal/errors"
	"mojiport/internal/slack"
)

// Execute runs the CLI. Per-emoji trouble never surfaces here; the returned
// error is reserved for unusable configuration, rejected credentials and
// failed transport.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:   "mojiport",
		Short: "Copy custom emoji between Slack workspaces",
		Long: `Mojiport moves a workspace's custom emoji catalog into another workspace:
list the catalog, download every image, and re-upload them through the
destination's browser session.

Credentials come from flags, MOJIPORT_* environment variables or a local
.env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.ApplyEnv()
		},
	}

	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newListCmd(cfg),
		newDownloadCmd(cfg),
		newUploadCmd(cfg),
		newExportCmd(cfg),
	)
	return root
}

func sourceFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.SourceToken, "source-token", "", "source workspace API token (xoxp- or xoxb-)")
}

func destinationFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.Cookie, "cookie", "", "destination browser session Cookie header")
	cmd.Flags().StringVar(&cfg.Token, "token", "", "destination client token (xoxc-)")
	cmd.Flags().StringVar(&cfg.TeamID, "team-id", "", "destination workspace subdomain")
	cmd.Flags().IntVar(&cfg.MaxAttempts, "max-attempts", 3, "submission attempts per emoji when rate limited")
	cmd.Flags().DurationVar(&cfg.UploadPause, "upload-pause", time.Second, "pause between consecutive uploads")
}

func outputDirFlag(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", `directory for downloaded images (default "emoji_downloads")`)
}

// stageError classifies a pipeline failure for exit reporting.
func stageError(op string, err error) error {
	if errors.Is(err, slack.ErrInvalidAuth) {
		return appErrors.Wrap(appErrors.AuthFailure, op, "", err)
	}
	return appErrors.Wrap(appErrors.Transport, op, "", err)
}
