/*
 * Copyright (c) 2021 Gilles Chehade <gilles@poolp.org>
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

package classifier

import (
	"fmt"
	"log"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/PlakarKorp/ftype/filetype"
)

const (
	DEFAULT_BACKEND = "extension"

	MimeDirectory = "inode/directory"
	MimeText      = "text/plain"
)

// Backend guesses a media type for a path. An empty result with a nil
// error is a miss and lets the classifier fall back.
type Backend interface {
	Name() string
	Guess(pathname string) (string, error)
}

var muBackends sync.Mutex
var backends map[string]func() Backend = make(map[string]func() Backend)

type Classifier struct {
	backend Backend
	fs      filetype.FileSystem
}

func NewClassifier(name string, filesystem filetype.FileSystem) (*Classifier, error) {
	muBackends.Lock()
	defer muBackends.Unlock()

	if backend, exists := backends[name]; !exists {
		return nil, fmt.Errorf("backend '%s' does not exist", name)
	} else {
		return FromBackend(backend(), filesystem), nil
	}
}

// FromBackend wraps an already constructed backend, bypassing the registry.
func FromBackend(backend Backend, filesystem filetype.FileSystem) *Classifier {
	if filesystem == nil {
		filesystem = filetype.NewOSFileSystem()
	}
	return &Classifier{
		backend: backend,
		fs:      filesystem,
	}
}

func Register(name string, backend func() Backend) {
	muBackends.Lock()
	defer muBackends.Unlock()

	if _, ok := backends[name]; ok {
		log.Fatalf("backend '%s' registered twice", name)
	}
	backends[name] = backend
}

func Backends() []string {
	muBackends.Lock()
	defer muBackends.Unlock()

	ret := make([]string, 0)
	for backendName := range backends {
		ret = append(ret, backendName)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] < ret[j]
	})
	return ret
}

func (cf *Classifier) Backend() string {
	return cf.backend.Name()
}

// Mime always produces a media type: whatever the backend guessed, or a
// directory/plain text fallback when it could not.
func (cf *Classifier) Mime(pathname string) string {
	guess, err := cf.backend.Guess(pathname)
	if err == nil {
		if mediatype := Normalize(guess); mediatype != "" {
			return mediatype
		}
	}
	return cf.fallback(pathname)
}

func (cf *Classifier) fallback(pathname string) string {
	info, err := cf.fs.Stat(pathname)
	if err == nil && info.IsDir() {
		return MimeDirectory
	}
	return MimeText
}

// Normalize drops media type parameters ("; charset=utf-8") and
// lowercases the result.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	mediatype, _, err := mime.ParseMediaType(value)
	if err != nil {
		if idx := strings.IndexByte(value, ';'); idx >= 0 {
			value = value[:idx]
		}
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediatype
}
