/*
 * Copyright (c) 2023 Gilles Chehade <gilles@poolp.org>
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

package pathlist

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/PlakarKorp/ftype/context"
	"github.com/iafan/cwalk"
)

// Expand replaces every root that is a real directory with itself followed
// by everything below it, in lexical order. Other roots, including missing
// ones and symlinks to directories, are kept as given so that they still
// get their own diagnostic or result.
func Expand(ctx *context.Context, roots []string, excluder *Excluder) []string {
	ret := make([]string, 0, len(roots))
	for _, root := range roots {
		ret = append(ret, root)

		info, err := os.Lstat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		ret = append(ret, walk(ctx, root, excluder)...)
	}
	return ret
}

func walk(ctx *context.Context, root string, excluder *Excluder) []string {
	var mu sync.Mutex
	children := make([]string, 0)

	if patterns := excluder.Patterns(); len(patterns) > 0 {
		trace(ctx, "walking %s, excluding %s", root, strings.Join(patterns, ", "))
	} else {
		trace(ctx, "walking %s", root)
	}

	// cwalk invokes the callback from several goroutines
	err := cwalk.Walk(root, func(relpath string, info fs.FileInfo, err error) error {
		if err != nil {
			trace(ctx, "%s: %s", filepath.Join(root, relpath), err)
			return nil
		}
		if relpath == "" || relpath == "." {
			return nil
		}
		if excluder.Match(relpath) {
			trace(ctx, "excluded %s", filepath.Join(root, relpath))
			return nil
		}

		mu.Lock()
		children = append(children, filepath.Join(root, relpath))
		mu.Unlock()
		return nil
	})
	if err != nil {
		if logger := ctx.GetLogger(); logger != nil {
			logger.Warn("%s: %s", root, err)
		}
	}

	sort.Strings(children)
	return children
}

func trace(ctx *context.Context, format string, args ...interface{}) {
	if logger := ctx.GetLogger(); logger != nil {
		logger.Trace("pathlist", format, args...)
	}
}
