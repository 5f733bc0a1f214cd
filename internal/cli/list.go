package cli

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"mojiport/internal/app"
	"mojiport/internal/config"
	"mojiport/internal/domain"
	appErrors "mojiport/internal/errors"
	"mojiport/internal/logging"
	"mojiport/internal/presentation"
	"mojiport/internal/slack"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newListCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the source workspace's custom emoji",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateList(); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "list", "", err)
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
				return stageError("list", err)
			}

			printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}
			printer.PrintInventory(inv)

			if cfg.InventoryFile != "" {
				if err := writeInventory(cfg.InventoryFile, inv); err != nil {
					return appErrors.Wrap(appErrors.IOFailure, "save inventory", cfg.InventoryFile, err)
				}
				log.Info().Str("path", cfg.InventoryFile).Msg("inventory saved")
			}
			return nil
		},
	}

	sourceFlags(cmd, cfg)
	cmd.Flags().StringVar(&cfg.InventoryFile, "output-file", "", "also save the catalog as a JSON file")
	return cmd
}

// writeInventory stores the catalog in its original name to URL shape so the
// file round-trips through other emoji tooling.
func writeInventory(path string, inv domain.Inventory) error {
	data, err := json.MarshalIndent(inv.URLMap(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
