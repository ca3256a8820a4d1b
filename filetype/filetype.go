/*
 * Copyright (c) 2024 Gilles Chehade <gilles@poolp.org>
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package filetype

import (
	"fmt"
	"io/fs"
	"os"
)

// Entry is the metadata-derived description of a single path.
type Entry struct {
	Pathname string
	Kind     Kind
	Size     int64

	// symbolic links only, empty when the link could not be read
	Target string

	// device nodes only
	Major     uint64
	Minor     uint64
	HasDevice bool
}

func (e *Entry) String() string {
	switch e.Kind {
	case KindSymlink:
		if e.Target == "" {
			return "symbolic link"
		}
		return fmt.Sprintf("symbolic link to %s", e.Target)
	case KindBlockDevice:
		if !e.HasDevice {
			return "block special"
		}
		return fmt.Sprintf("block special (%d/%d)", e.Major, e.Minor)
	case KindCharDevice:
		if !e.HasDevice {
			return "character special"
		}
		return fmt.Sprintf("character special (%d/%d)", e.Major, e.Minor)
	case KindFifo:
		return "fifo"
	case KindSocket:
		return "socket"
	case KindDirectory:
		return "directory"
	case KindRegular:
		// content is never sniffed here
		return "ASCII text"
	default:
		return "???"
	}
}

type Classifier struct {
	fs FileSystem
}

func NewClassifier(filesystem FileSystem) *Classifier {
	if filesystem == nil {
		filesystem = NewOSFileSystem()
	}
	return &Classifier{fs: filesystem}
}

// Classify describes pathname from its metadata. Unlike the other
// analyzers it fails loudly: without metadata there is no type to report.
func (c *Classifier) Classify(pathname string) (*Entry, error) {
	info, err := c.fs.Stat(pathname)
	if err != nil {
		return nil, &MetadataError{Pathname: pathname, Cause: err}
	}

	entry := &Entry{
		Pathname: pathname,
		Size:     info.Size(),
	}

	switch mode := info.Mode(); {
	case mode&os.ModeSymlink != 0 || c.isSymlink(pathname):
		entry.Kind = KindSymlink
		if target, err := c.fs.Readlink(pathname); err == nil {
			entry.Target = target
		}
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice == 0:
		entry.Kind = KindBlockDevice
		entry.Major, entry.Minor, entry.HasDevice = deviceNumbers(info)
	case mode&os.ModeCharDevice != 0:
		entry.Kind = KindCharDevice
		entry.Major, entry.Minor, entry.HasDevice = deviceNumbers(info)
	case mode&os.ModeNamedPipe != 0:
		entry.Kind = KindFifo
	case mode&os.ModeSocket != 0:
		entry.Kind = KindSocket
	case mode.IsDir():
		entry.Kind = KindDirectory
	case mode.IsRegular():
		entry.Kind = KindRegular
	default:
		entry.Kind = KindUnknown
	}

	if entry.Kind != KindRegular {
		entry.Size = 0
	}
	return entry, nil
}

// Stat follows links, so the type bit rarely reports a symlink on its own;
// the lstat double check is what actually catches them.
func (c *Classifier) isSymlink(pathname string) bool {
	info, err := c.fs.Lstat(pathname)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

func deviceNumbers(info fs.FileInfo) (uint64, uint64, bool) {
	rdev, ok := rawDevice(info)
	if !ok {
		return 0, 0, false
	}
	return Major(rdev), Minor(rdev), true
}
