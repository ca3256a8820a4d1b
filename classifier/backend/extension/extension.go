package extension

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/PlakarKorp/ftype/classifier"
)

const NAME = "extension"

func init() {
	classifier.Register(NAME, NewBackend)
}

// types takes precedence over the system tables, which disagree between
// platforms on the entries below.
var types = map[string]string{
	".c":    "text/x-c",
	".css":  "text/css",
	".csv":  "text/csv",
	".gif":  "image/gif",
	".go":   "text/x-go",
	".gz":   "application/gzip",
	".h":    "text/x-c",
	".htm":  "text/html",
	".html": "text/html",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".js":   "text/javascript",
	".json": "application/json",
	".md":   "text/markdown",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".py":   "text/x-python",
	".rs":   "text/x-rust",
	".sh":   "text/x-shellscript",
	".svg":  "image/svg+xml",
	".tar":  "application/x-tar",
	".toml": "text/x-toml",
	".txt":  "text/plain",
	".xml":  "text/xml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".zip":  "application/zip",
}

type Backend struct {
}

func NewBackend() classifier.Backend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return NAME
}

func (b *Backend) Guess(pathname string) (string, error) {
	ext := strings.ToLower(filepath.Ext(pathname))
	if ext == "" || ext == "." {
		return "", nil
	}
	if mediatype, exists := types[ext]; exists {
		return mediatype, nil
	}
	return mime.TypeByExtension(ext), nil
}
