package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mojiport/internal/app"
	"mojiport/internal/config"
	appErrors "mojiport/internal/errors"
	"mojiport/internal/infra/fs"
	"mojiport/internal/logging"
	"mojiport/internal/presentation"
	"mojiport/internal/slack"
	"mojiport/internal/tui"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "List, download and upload in one run",
		Long: `Export runs the whole pipeline: list the source catalog, download every
image into the output directory, then upload them one by one to the
destination workspace.

When stdout is a terminal the progress is rendered interactively; pass
--plain (or pipe the output) for line-oriented logs instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateExport(); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "export", "", err)
			}

			interactive := !cfg.Plain && isTerminal(os.Stdout.Fd())

			// The interactive view owns the terminal, so console logging is
			// muted there and failures surface through the completion screen.
			log := zerolog.Nop()
			if !interactive {
				log = logging.New(cmd.ErrOrStderr(), cfg.Verbose)
			}

			client := slack.NewClient()
			uploader := newUploader(cfg, log)
			exporter := app.Exporter{
				Lister: &app.Lister{
					Source:  client.Source(cfg.SourceToken),
					IsAlias: slack.IsAlias,
					Log:     log,
				},
				Downloader: &app.Downloader{Fetcher: client, FS: fs.OSFS{}, Log: log},
				Uploader:   &uploader,
				Log:        log,
			}

			if !interactive {
				report, err := exporter.Run(cmd.Context(), cfg.OutputDir)
				if err != nil {
					return stageError("export", err)
				}
				printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}
				printer.PrintExport(report)
				return nil
			}

			return runExportTUI(cmd.Context(), cfg, &exporter)
		},
	}

	sourceFlags(cmd, cfg)
	destinationFlags(cmd, cfg)
	outputDirFlag(cmd, cfg)
	cmd.Flags().BoolVar(&cfg.Plain, "plain", false, "disable the interactive progress view")
	return cmd
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runExportTUI drives the pipeline from a goroutine and feeds its progress
// hooks into the bubbletea program as messages.
func runExportTUI(ctx context.Context, cfg *config.Config, exporter *app.Exporter) error {
	model := tui.NewModel(tui.Config{
		Team:      cfg.TeamID,
		OutputDir: cfg.OutputDir,
		Verbose:   cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithContext(ctx))

	exporter.OnInventory = func(count int) {
		program.Send(tui.InventoryMsg{Count: count})
	}
	exporter.OnDownloaded = func(saved, failed int) {
		program.Send(tui.DownloadDoneMsg{Saved: saved, Failed: failed})
	}
	exporter.Downloader.OnProgress = func(current, total int, name string) {
		program.Send(tui.DownloadProgressMsg{Current: current, Total: total, Name: name})
	}
	exporter.Uploader.OnProgress = func(current, total int, name string) {
		program.Send(tui.UploadProgressMsg{Current: current, Total: total, Name: name})
	}

	go func() {
		report, err := exporter.Run(ctx, cfg.OutputDir)
		if err != nil {
			program.Send(tui.ErrorMsg{Err: err})
			return
		}
		program.Send(tui.DoneMsg{Report: report})
	}()

	final, err := program.Run()
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "export", "", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err != nil {
		return stageError("export", m.Err)
	}
	return nil
}
