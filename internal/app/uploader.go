package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"mojiport/internal/domain"
	"mojiport/internal/logging"
)

// Uploader submits assets strictly one at a time. The destination endpoint is
// unofficial and rate-sensitive, so the uploader paces itself with a fixed
// pause between submissions and backs off when told to slow down. Only
// rate-limit signals are retried; every other error settles the asset's
// outcome immediately, and one asset's failure never stops the rest.
type Uploader struct {
	Sink   EmojiSink
	FS     FileSystem
	Policy RetryPolicy

	// Pause is the proactive throttle between consecutive submissions. It is
	// not applied after the final asset.
	Pause time.Duration

	// AlreadyExists reports whether an upload error means the name is already
	// present upstream. Those assets settle as skipped, never failed.
	AlreadyExists func(error) bool

	// RateLimited reports whether an upload error is a rate-limit signal,
	// and the server's wait hint if it sent one.
	RateLimited func(error) (time.Duration, bool)

	// Sleep is swappable in tests. Defaults to time.Sleep.
	Sleep func(time.Duration)

	Log        zerolog.Logger
	OnProgress ProgressFunc
}

// Run uploads every asset and returns one outcome per asset, in input order.
// The error is non-nil only for unusable wiring or a cancelled context;
// per-asset failures live in the report.
func (u *Uploader) Run(ctx context.Context, assets []domain.LocalAsset) (domain.UploadReport, error) {
	if u.Sink == nil || u.FS == nil {
		return nil, errors.New("uploader requires Sink and FS")
	}

	policy := u.Policy
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	sleep := u.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	stop := logging.Measure(u.Log, "uploading emoji")
	defer stop()

	report := make(domain.UploadReport, 0, len(assets))
	total := len(assets)
	for i, asset := range assets {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		if i > 0 && u.Pause > 0 {
			sleep(u.Pause)
		}

		outcome := u.uploadOne(ctx, asset, policy, sleep)
		report = append(report, outcome)
		u.Log.Info().
			Str("name", asset.Name).
			Str("status", outcome.Status.String()).
			Msg("upload")
		if u.OnProgress != nil {
			u.OnProgress(i+1, total, asset.Name)
		}
	}
	return report, nil
}

func (u *Uploader) uploadOne(ctx context.Context, asset domain.LocalAsset, policy RetryPolicy, sleep func(time.Duration)) domain.UploadOutcome {
	image, err := u.FS.ReadFile(asset.FilePath)
	if err != nil {
		u.Log.Warn().Str("name", asset.Name).Str("path", asset.FilePath).Err(err).Msg("read failed")
		return domain.UploadOutcome{Name: asset.Name, Status: domain.StatusFailed, Reason: err.Error()}
	}

	filename := filepath.Base(asset.FilePath)
	var lastDelay time.Duration

	for attempt := 1; ; attempt++ {
		err := u.Sink.AddEmoji(ctx, asset.Name, image, filename)
		if err == nil {
			return domain.UploadOutcome{Name: asset.Name, Status: domain.StatusUploaded}
		}
		if u.AlreadyExists != nil && u.AlreadyExists(err) {
			return domain.UploadOutcome{Name: asset.Name, Status: domain.StatusSkipped}
		}

		hint, limited := time.Duration(0), false
		if u.RateLimited != nil {
			hint, limited = u.RateLimited(err)
		}
		if !limited || attempt >= policy.MaxAttempts {
			u.Log.Warn().Str("name", asset.Name).Int("attempts", attempt).Err(err).Msg("upload failed")
			return domain.UploadOutcome{Name: asset.Name, Status: domain.StatusFailed, Reason: err.Error()}
		}

		// Honor the server hint when it is longer than ours, and never back
		// off for less than the previous wait.
		delay := policy.Delay(attempt)
		if hint > delay {
			delay = hint
		}
		if delay < lastDelay {
			delay = lastDelay
		}
		lastDelay = delay

		u.Log.Debug().
			Str("name", asset.Name).
			Int("attempt", attempt).
			Dur("wait", delay).
			Msg("rate limited, backing off")
		sleep(delay)
	}
}
