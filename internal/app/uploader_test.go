package app

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"mojiport/internal/domain"
)

type limitedErr struct {
	hint time.Duration
}

func (e *limitedErr) Error() string { return "rate limited" }

var errTaken = errors.New("emoji name already taken")

func isTaken(err error) bool {
	return errors.Is(err, errTaken)
}

func rateHint(err error) (time.Duration, bool) {
	var le *limitedErr
	if errors.As(err, &le) {
		return le.hint, true
	}
	return 0, false
}

type fakeSink struct {
	errs  map[string][]error
	names []string
}

func (f *fakeSink) AddEmoji(ctx context.Context, name string, image []byte, filename string) error {
	f.names = append(f.names, name)
	queue := f.errs[name]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	f.errs[name] = queue[1:]
	return err
}

func testUploader(sink *fakeSink, fsys *memFS, slept *[]time.Duration) Uploader {
	return Uploader{
		Sink:          sink,
		FS:            fsys,
		Policy:        RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2},
		AlreadyExists: isTaken,
		RateLimited:   rateHint,
		Sleep:         func(d time.Duration) { *slept = append(*slept, d) },
	}
}

func asset(fsys *memFS, name string) domain.LocalAsset {
	path := "dl/" + name + ".png"
	fsys.files[path] = []byte("image-" + name)
	return domain.LocalAsset{Name: name, FilePath: path, ContentType: "image/png"}
}

func TestUploaderRetriesRateLimitThenSucceeds(t *testing.T) {
	sink := &fakeSink{errs: map[string][]error{
		"party-parrot": {&limitedErr{}, &limitedErr{}},
	}}
	fsys := newMemFS()
	var slept []time.Duration
	u := testUploader(sink, fsys, &slept)

	report, err := u.Run(context.Background(), []domain.LocalAsset{asset(fsys, "party-parrot")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.names) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(sink.names))
	}
	if len(report) != 1 || report[0].Status != domain.StatusUploaded {
		t.Fatalf("unexpected report: %+v", report)
	}
	if want := []time.Duration{time.Second, 2 * time.Second}; !reflect.DeepEqual(slept, want) {
		t.Fatalf("slept = %v, want %v", slept, want)
	}
	for i := 1; i < len(slept); i++ {
		if slept[i] < slept[i-1] {
			t.Fatalf("delays decreased: %v", slept)
		}
	}
}

func TestUploaderStopsAfterMaxAttempts(t *testing.T) {
	sink := &fakeSink{errs: map[string][]error{
		"wave": {&limitedErr{}, &limitedErr{}, &limitedErr{}, &limitedErr{}},
	}}
	fsys := newMemFS()
	var slept []time.Duration
	u := testUploader(sink, fsys, &slept)

	report, err := u.Run(context.Background(), []domain.LocalAsset{asset(fsys, "wave")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.names) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(sink.names))
	}
	if report[0].Status != domain.StatusFailed {
		t.Fatalf("expected failed outcome, got %v", report[0].Status)
	}
	if report[0].Reason == "" {
		t.Fatal("expected a failure reason")
	}
	if len(slept) != 2 {
		t.Fatalf("expected 2 backoffs, got %v", slept)
	}
}

func TestUploaderSkipsExistingNames(t *testing.T) {
	sink := &fakeSink{errs: map[string][]error{
		"a": {errTaken},
		"b": {errTaken},
		"c": {errTaken},
	}}
	fsys := newMemFS()
	var slept []time.Duration
	u := testUploader(sink, fsys, &slept)

	assets := []domain.LocalAsset{asset(fsys, "a"), asset(fsys, "b"), asset(fsys, "c")}
	report, err := u.Run(context.Background(), assets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Skipped() != 3 || report.Failed() != 0 || report.Uploaded() != 0 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	// a duplicate is settled on the first submission, no retries
	if len(sink.names) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(sink.names))
	}
}

func TestUploaderIsolatesFailures(t *testing.T) {
	sink := &fakeSink{errs: map[string][]error{
		"b": {errors.New("rejected by slack: error_bad_name_i18n")},
		"d": {errTaken},
	}}
	fsys := newMemFS()
	var slept []time.Duration
	u := testUploader(sink, fsys, &slept)

	names := []string{"a", "b", "c", "d", "e"}
	assets := make([]domain.LocalAsset, 0, len(names))
	for _, n := range names {
		assets = append(assets, asset(fsys, n))
	}

	report, err := u.Run(context.Background(), assets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report) != len(assets) {
		t.Fatalf("expected %d outcomes, got %d", len(assets), len(report))
	}
	for i, outcome := range report {
		if outcome.Name != names[i] {
			t.Fatalf("outcome %d = %q, want %q", i, outcome.Name, names[i])
		}
	}
	want := []domain.UploadStatus{
		domain.StatusUploaded,
		domain.StatusFailed,
		domain.StatusUploaded,
		domain.StatusSkipped,
		domain.StatusUploaded,
	}
	for i, outcome := range report {
		if outcome.Status != want[i] {
			t.Fatalf("outcome %d = %v, want %v", i, outcome.Status, want[i])
		}
	}
	if got := report.FailedNames(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("failed names = %v, want [b]", got)
	}
}

func TestUploaderPausesBetweenSubmissions(t *testing.T) {
	sink := &fakeSink{}
	fsys := newMemFS()
	var slept []time.Duration
	u := testUploader(sink, fsys, &slept)
	u.Pause = time.Second

	assets := []domain.LocalAsset{asset(fsys, "a"), asset(fsys, "b"), asset(fsys, "c")}
	if _, err := u.Run(context.Background(), assets); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// two pauses for three assets, none after the last
	if want := []time.Duration{time.Second, time.Second}; !reflect.DeepEqual(slept, want) {
		t.Fatalf("slept = %v, want %v", slept, want)
	}
}

func TestUploaderHonorsServerHint(t *testing.T) {
	sink := &fakeSink{errs: map[string][]error{
		"wave": {&limitedErr{hint: 5 * time.Second}, &limitedErr{}},
	}}
	fsys := newMemFS()
	var slept []time.Duration
	u := testUploader(sink, fsys, &slept)

	report, err := u.Run(context.Background(), []domain.LocalAsset{asset(fsys, "wave")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report[0].Status != domain.StatusUploaded {
		t.Fatalf("expected uploaded, got %v", report[0].Status)
	}

	// the hint outgrows the policy delay, and the next wait never shrinks
	if want := []time.Duration{5 * time.Second, 5 * time.Second}; !reflect.DeepEqual(slept, want) {
		t.Fatalf("slept = %v, want %v", slept, want)
	}
}

func TestUploaderFailsUnreadableAsset(t *testing.T) {
	sink := &fakeSink{}
	fsys := newMemFS()
	var slept []time.Duration
	u := testUploader(sink, fsys, &slept)

	assets := []domain.LocalAsset{{Name: "ghost", FilePath: "dl/ghost.png"}}
	report, err := u.Run(context.Background(), assets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report[0].Status != domain.StatusFailed {
		t.Fatalf("expected failed, got %v", report[0].Status)
	}
	if len(sink.names) != 0 {
		t.Fatalf("expected no submissions, got %v", sink.names)
	}
}
