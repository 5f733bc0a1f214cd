package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"mojiport/internal/domain"
	"mojiport/internal/logging"
)

// Downloader fetches every inventory image into dir. A failed fetch or write
// is recorded and skipped; it never aborts the run.
type Downloader struct {
	Fetcher    ImageFetcher
	FS         FileSystem
	Log        zerolog.Logger
	OnProgress ProgressFunc
}

func (d *Downloader) Run(ctx context.Context, inv domain.Inventory, dir string) (domain.DownloadReport, error) {
	if d.Fetcher == nil || d.FS == nil {
		return domain.DownloadReport{}, errors.New("downloader requires Fetcher and FS")
	}

	if err := d.FS.MkdirAll(dir, 0o755); err != nil {
		return domain.DownloadReport{}, fmt.Errorf("create %s: %w", dir, err)
	}

	stop := logging.Measure(d.Log, "downloading images")
	defer stop()

	var report domain.DownloadReport
	total := len(inv)
	for i, rec := range inv {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		data, contentType, err := d.Fetcher.FetchImage(ctx, rec.SourceURL)
		if err != nil {
			d.Log.Warn().Str("name", rec.Name).Err(err).Msg("download failed")
			report.Failed = append(report.Failed, rec.Name)
			d.progress(i+1, total, rec.Name)
			continue
		}

		name := domain.SanitizeName(rec.Name) + domain.FileExtension(contentType, rec.SourceURL)
		path := filepath.Join(dir, name)
		if err := d.FS.WriteFile(path, data, 0o644); err != nil {
			d.Log.Warn().Str("name", rec.Name).Str("path", path).Err(err).Msg("write failed")
			report.Failed = append(report.Failed, rec.Name)
			d.progress(i+1, total, rec.Name)
			continue
		}

		report.Assets = append(report.Assets, domain.LocalAsset{
			Name:        rec.Name,
			FilePath:    path,
			ContentType: contentType,
		})
		d.Log.Debug().Str("name", rec.Name).Str("path", path).Msg("saved")
		d.progress(i+1, total, rec.Name)
	}
	return report, nil
}

func (d *Downloader) progress(current, total int, name string) {
	if d.OnProgress != nil {
		d.OnProgress(current, total, name)
	}
}
