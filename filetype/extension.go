package filetype

import (
	"path/filepath"
	"strings"
)

const UnknownExtension = "???"

// Extension returns the text after the last dot of the final path
// component. It never touches the filesystem. Dot-files without another
// dot (".bashrc") have no extension, a name ending with a dot has an empty
// one.
func Extension(pathname string) string {
	name := filepath.Base(pathname)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return UnknownExtension
	}

	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return UnknownExtension
	}
	return name[idx+1:]
}
