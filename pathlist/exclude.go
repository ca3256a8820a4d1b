package pathlist

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Excluder drops walked paths matching any of its patterns. A pattern is
// tried against the path relative to the walked root and against each of
// its components, so ".git" prunes a whole subtree and "*.o" matches at
// any depth.
type Excluder struct {
	patterns []string
	globs    []glob.Glob
}

func NewExcluder(patterns []string) (*Excluder, error) {
	excluder := &Excluder{}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		excluder.patterns = append(excluder.patterns, pattern)
		excluder.globs = append(excluder.globs, g)
	}
	return excluder, nil
}

func (e *Excluder) Patterns() []string {
	if e == nil {
		return nil
	}
	return e.patterns
}

func (e *Excluder) Match(relpath string) bool {
	if e == nil || len(e.globs) == 0 {
		return false
	}

	relpath = filepath.ToSlash(relpath)
	candidates := append([]string{relpath}, strings.Split(relpath, "/")...)
	for _, g := range e.globs {
		for _, candidate := range candidates {
			if candidate != "" && g.Match(candidate) {
				return true
			}
		}
	}
	return false
}
