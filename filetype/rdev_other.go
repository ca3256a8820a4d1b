//go:build !unix

package filetype

import "io/fs"

func rawDevice(info fs.FileInfo) (uint64, bool) {
	return 0, false
}
