package domain

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

type LocalAsset struct {
	Name        string
	FilePath    string
	ContentType string
}

// DefaultExtension is used when neither the response content type nor the
// source URL reveal the image format.
const DefaultExtension = ".png"

// AssetFromPath rebuilds a LocalAsset from a previously downloaded file,
// deriving the emoji name from the file stem.
func AssetFromPath(p string) LocalAsset {
	name := filepath.Base(p)
	ext := filepath.Ext(name)
	return LocalAsset{
		Name:        strings.TrimSuffix(name, ext),
		FilePath:    p,
		ContentType: ContentTypeForExtension(ext),
	}
}

// FileExtension picks the on-disk extension for a fetched image. The declared
// content type wins, the source URL's path extension is the fallback.
func FileExtension(contentType, sourceURL string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	if u, err := url.Parse(sourceURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); IsImageExtension(ext) {
			return ext
		}
	}
	return DefaultExtension
}

func IsImageExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	default:
		return false
	}
}

func ContentTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
