package app

import (
	"context"
	"io/fs"
)

// EmojiSource lists one page of the source workspace's custom emoji catalog.
// An empty next cursor means the catalog is exhausted.
type EmojiSource interface {
	ListPage(ctx context.Context, cursor string) (emoji map[string]string, next string, err error)
}

// ImageFetcher retrieves raw image bytes and the declared content type.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// EmojiSink submits one emoji image to the destination workspace.
type EmojiSink interface {
	AddEmoji(ctx context.Context, name string, image []byte, filename string) error
}

type FileSystem interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
	ReadFile(path string) ([]byte, error)
	ListFiles(dir string) ([]string, error)
}

// ProgressFunc is called after each processed item to report progress.
type ProgressFunc func(current, total int, name string)
