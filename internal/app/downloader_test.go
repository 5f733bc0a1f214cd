package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"mojiport/internal/domain"
)

type memFS struct {
	files    map[string][]byte
	dirs     []string
	mkdirErr error
	writeErr error
	listErr  error
}

func newMemFS() *memFS {
	return &memFS{files: map[string][]byte{}}
}

func (m *memFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.mkdirErr != nil {
		return m.mkdirErr
	}
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *memFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = data
	return nil
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) ListFiles(dir string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var paths []string
	for p := range m.files {
		if filepath.Dir(p) == dir {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

type fetchResult struct {
	data        []byte
	contentType string
	err         error
}

type fakeFetcher struct {
	responses map[string]fetchResult
	calls     int
}

func (f *fakeFetcher) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	f.calls++
	res, ok := f.responses[url]
	if !ok {
		return nil, "", errors.New("unexpected url " + url)
	}
	if res.err != nil {
		return nil, "", res.err
	}
	return res.data, res.contentType, nil
}

func TestDownloaderWritesAssets(t *testing.T) {
	inv := domain.Inventory{
		{Name: "bongo-cat", SourceURL: "https://e.example.com/bongo"},
		{Name: "party-parrot", SourceURL: "https://e.example.com/parrot.gif"},
	}
	fetcher := &fakeFetcher{responses: map[string]fetchResult{
		"https://e.example.com/bongo":      {data: []byte("png-bytes"), contentType: "image/png"},
		"https://e.example.com/parrot.gif": {data: []byte("gif-bytes"), contentType: ""},
	}}
	fsys := newMemFS()

	d := Downloader{Fetcher: fetcher, FS: fsys}
	report, err := d.Run(context.Background(), inv, "dl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Assets) != 2 || len(report.Failed) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if got := string(fsys.files[filepath.Join("dl", "bongo-cat.png")]); got != "png-bytes" {
		t.Fatalf("bongo-cat.png = %q", got)
	}
	// the gif has no content type, so the extension comes from the URL
	if got := string(fsys.files[filepath.Join("dl", "party-parrot.gif")]); got != "gif-bytes" {
		t.Fatalf("party-parrot.gif = %q", got)
	}
	if report.Assets[1].ContentType != "" || report.Assets[0].ContentType != "image/png" {
		t.Fatalf("unexpected content types: %+v", report.Assets)
	}
}

func TestDownloaderRecordsFailuresAndContinues(t *testing.T) {
	inv := domain.Inventory{
		{Name: "a", SourceURL: "https://e.example.com/a.png"},
		{Name: "b", SourceURL: "https://e.example.com/b.png"},
		{Name: "c", SourceURL: "https://e.example.com/c.png"},
	}
	fetcher := &fakeFetcher{responses: map[string]fetchResult{
		"https://e.example.com/a.png": {data: []byte("a")},
		"https://e.example.com/b.png": {err: errors.New("rejected by slack: 404 Not Found")},
		"https://e.example.com/c.png": {data: []byte("c")},
	}}
	fsys := newMemFS()

	d := Downloader{Fetcher: fetcher, FS: fsys}
	report, err := d.Run(context.Background(), inv, "dl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls != 3 {
		t.Fatalf("expected 3 fetches, got %d", fetcher.calls)
	}
	if !reflect.DeepEqual(report.Failed, []string{"b"}) {
		t.Fatalf("failed = %v, want [b]", report.Failed)
	}
	if len(report.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(report.Assets))
	}
}

func TestDownloaderSanitizesFileNames(t *testing.T) {
	inv := domain.Inventory{
		{Name: "party parrot!", SourceURL: "https://e.example.com/p.png"},
	}
	fetcher := &fakeFetcher{responses: map[string]fetchResult{
		"https://e.example.com/p.png": {data: []byte("p"), contentType: "image/png"},
	}}
	fsys := newMemFS()

	d := Downloader{Fetcher: fetcher, FS: fsys}
	report, err := d.Run(context.Background(), inv, "dl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join("dl", "party_parrot_.png")
	if _, ok := fsys.files[want]; !ok {
		t.Fatalf("expected file at %s, have %v", want, fsys.files)
	}
	// the asset keeps the original emoji name for the upload stage
	if report.Assets[0].Name != "party parrot!" {
		t.Fatalf("asset name = %q", report.Assets[0].Name)
	}
}

func TestDownloaderFailsWhenDirCannotBeCreated(t *testing.T) {
	fsys := newMemFS()
	fsys.mkdirErr = errors.New("read-only file system")

	d := Downloader{Fetcher: &fakeFetcher{}, FS: fsys}
	if _, err := d.Run(context.Background(), domain.Inventory{}, "dl"); err == nil {
		t.Fatal("expected an error")
	}
}
