package filetype

import (
	"io/fs"
	"os"
)

// FileSystem is the subset of filesystem primitives needed to classify an
// entry. It exists so tests can substitute entries the host cannot create,
// such as device nodes.
type FileSystem interface {
	Stat(pathname string) (fs.FileInfo, error)
	Lstat(pathname string) (fs.FileInfo, error)
	Readlink(pathname string) (string, error)
}

// OSFileSystem implements FileSystem on top of the local OS.
type OSFileSystem struct{}

func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (r *OSFileSystem) Stat(pathname string) (fs.FileInfo, error) {
	return os.Stat(pathname)
}

// Lstat returns file info for a path without following symlinks.
func (r *OSFileSystem) Lstat(pathname string) (fs.FileInfo, error) {
	return os.Lstat(pathname)
}

// Readlink reads the target of a symlink.
func (r *OSFileSystem) Readlink(pathname string) (string, error) {
	return os.Readlink(pathname)
}
