package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"mojiport/internal/domain"
)

// Exporter chains the full pipeline: list the source catalog, download every
// image into dir, upload the downloaded assets to the destination. Only a
// listing failure, an unusable output directory or a cancelled context stop
// the run; per-item trouble is carried in the report.
type Exporter struct {
	Lister     *Lister
	Downloader *Downloader
	Uploader   *Uploader
	Log        zerolog.Logger

	// OnInventory and OnDownloaded mark stage boundaries for callers that
	// render progress.
	OnInventory  func(count int)
	OnDownloaded func(saved, failed int)
}

func (e *Exporter) Run(ctx context.Context, dir string) (domain.ExportReport, error) {
	if e.Lister == nil || e.Downloader == nil || e.Uploader == nil {
		return domain.ExportReport{}, errors.New("exporter requires Lister, Downloader and Uploader")
	}

	inv, err := e.Lister.Run(ctx)
	if err != nil {
		return domain.ExportReport{}, err
	}
	e.Log.Info().Int("count", len(inv)).Msg("catalog listed")
	if e.OnInventory != nil {
		e.OnInventory(len(inv))
	}

	download, err := e.Downloader.Run(ctx, inv, dir)
	if err != nil {
		return domain.ExportReport{Listed: len(inv), Download: download}, err
	}
	e.Log.Info().
		Int("saved", len(download.Assets)).
		Int("failed", len(download.Failed)).
		Msg("images downloaded")
	if e.OnDownloaded != nil {
		e.OnDownloaded(len(download.Assets), len(download.Failed))
	}

	upload, err := e.Uploader.Run(ctx, download.Assets)
	report := domain.ExportReport{Listed: len(inv), Download: download, Upload: upload}
	if err != nil {
		return report, err
	}
	return report, nil
}

// ScanAssets collects the uploadable images directly under dir, for runs that
// upload a directory downloaded earlier.
func ScanAssets(fsys FileSystem, dir string) ([]domain.LocalAsset, error) {
	paths, err := fsys.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	var assets []domain.LocalAsset
	for _, p := range paths {
		if !domain.IsImageExtension(filepath.Ext(p)) {
			continue
		}
		assets = append(assets, domain.AssetFromPath(p))
	}
	return assets, nil
}
