//go:build unix

package filetype

import (
	"io/fs"
	"syscall"
)

func rawDevice(info fs.FileInfo) (uint64, bool) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Rdev), true
	}
	return 0, false
}
