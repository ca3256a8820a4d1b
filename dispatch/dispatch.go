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

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/PlakarKorp/ftype/classifier"
	"github.com/PlakarKorp/ftype/context"
	"github.com/PlakarKorp/ftype/events"
	"github.com/PlakarKorp/ftype/filetype"
	"github.com/PlakarKorp/ftype/shebang"
)

type Mode int

const (
	ModeType Mode = iota
	ModeMime
	ModeExtension
)

func (m Mode) String() string {
	switch m {
	case ModeType:
		return "type"
	case ModeMime:
		return "mime"
	case ModeExtension:
		return "extension"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

type Options struct {
	Mode Mode

	// zero picks the context default
	MaxConcurrency int

	Brief     bool
	Separator string
	Color     bool

	// type mode only
	ExtendedAttributes bool
}

type Summary struct {
	Paths    int
	NotFound int
	Failed   int

	// total size of the regular files classified in type mode
	Bytes uint64

	ByKind map[string]int
}

type Dispatcher struct {
	ctx     *context.Context
	options Options

	mimes *classifier.Classifier
	fs    filetype.FileSystem
	files *filetype.Classifier

	format formatter
	stdout io.Writer
	stderr io.Writer
}

func New(ctx *context.Context, options Options, mimes *classifier.Classifier, stdout io.Writer, stderr io.Writer) (*Dispatcher, error) {
	if options.MaxConcurrency < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidConcurrency, options.MaxConcurrency)
	}
	if options.MaxConcurrency == 0 {
		options.MaxConcurrency = ctx.GetMaxConcurrency()
	}
	if options.Mode == ModeMime && mimes == nil {
		return nil, ErrNoMimeClassifier
	}

	filesystem := filetype.NewOSFileSystem()
	return &Dispatcher{
		ctx:     ctx,
		options: options,
		mimes:   mimes,
		fs:      filesystem,
		files:   filetype.NewClassifier(filesystem),
		format: formatter{
			brief:     options.Brief,
			separator: options.Separator,
			color:     options.Color,
		},
		stdout: stdout,
		stderr: stderr,
	}, nil
}

func (d *Dispatcher) Options() Options {
	return d.options
}

// Run classifies every distinct path exactly once and returns when all
// lines have been written. Per-path failures are reported on stderr and
// counted in the summary, they never abort the batch.
func (d *Dispatcher) Run(paths []string) (Summary, error) {
	if len(paths) == 0 {
		return Summary{}, ErrNoInput
	}
	paths = Dedup(paths)

	d.trace("%d paths, %d workers, mode %s", len(paths), d.options.MaxConcurrency, d.options.Mode)
	d.ctx.Events().Send(events.StartEvent(len(paths)))

	out := startOutput(d.stdout, d.stderr, d.options.MaxConcurrency*2)
	stats := newCollector(len(paths))

	jobs := make(chan string, d.options.MaxConcurrency)
	var wg sync.WaitGroup
	for w := 0; w < d.options.MaxConcurrency; w++ {
		wg.Add(1)
		go d.worker(jobs, out, stats, &wg)
	}

	for _, pathname := range paths {
		jobs <- pathname
	}
	close(jobs)
	wg.Wait()

	err := out.Close()
	d.ctx.Events().Send(events.DoneEvent())

	if err != nil {
		return stats.summary(), fmt.Errorf("write: %w", err)
	}
	return stats.summary(), nil
}

func (d *Dispatcher) worker(jobs <-chan string, out *output, stats *collector, wg *sync.WaitGroup) {
	defer wg.Done()

	for pathname := range jobs {
		d.process(pathname, out, stats)
	}
}

func (d *Dispatcher) process(pathname string, out *output, stats *collector) {
	d.ctx.Events().Send(events.PathEvent(pathname))

	info, err := d.fs.Stat(pathname)
	if err != nil {
		d.trace("%s: %s", pathname, err)
		out.Diagnostic(d.format.notFound(pathname))
		stats.notFound()
		d.ctx.Events().Send(events.NotFoundEvent(pathname))
		return
	}

	var description, kind string
	var size int64

	switch d.options.Mode {
	case ModeMime:
		t0 := time.Now()
		description = d.mimes.Mime(pathname)
		d.record("classifier.Mime", t0)

	case ModeExtension:
		description = filetype.Extension(pathname)

	default:
		entry, err := d.classify(pathname)
		if err != nil {
			var metadataErr *filetype.MetadataError
			if errors.As(err, &metadataErr) {
				err = metadataErr.Cause
			}
			out.Diagnostic(d.format.metadataError(pathname, err))
			stats.failed()
			d.ctx.Events().Send(events.MetadataErrorEvent(pathname, err))
			return
		}
		description = d.describe(entry, info.Mode().IsRegular())
		kind = entry.Kind.String()
		size = entry.Size
	}

	out.Result(d.format.result(pathname, description))
	stats.result(kind, size)
	d.ctx.Events().Send(events.ResultEvent(pathname, description, kind, size))
}

func (d *Dispatcher) classify(pathname string) (*filetype.Entry, error) {
	t0 := time.Now()
	defer d.record("filetype.Classify", t0)

	return d.files.Classify(pathname)
}

// describe renders entry, prefixed with the script type when the path,
// links followed, is a regular file starting with a shebang.
func (d *Dispatcher) describe(entry *filetype.Entry, regular bool) string {
	description := entry.String()

	if d.options.ExtendedAttributes && entry.Kind == filetype.KindRegular {
		names, err := filetype.ExtendedAttributes(entry.Pathname)
		if err != nil {
			d.ctx.Events().Send(events.WarningEvent(entry.Pathname, err.Error()))
		} else {
			description = withExtendedAttributes(description, names)
		}
	}

	// a fifo or a device would block the worker
	if !regular {
		return description
	}

	t0 := time.Now()
	interpreter, ok := shebang.Detect(entry.Pathname)
	d.record("shebang.Detect", t0)
	if ok {
		description = scriptDescription(interpreter, description)
	}
	return description
}

func (d *Dispatcher) record(event string, t0 time.Time) {
	if p := d.ctx.GetProfiler(); p != nil {
		p.Time(event, t0)
	}
}

func (d *Dispatcher) trace(format string, args ...interface{}) {
	if logger := d.ctx.GetLogger(); logger != nil {
		logger.Trace("dispatch", format, args...)
	}
}

type collector struct {
	mu sync.Mutex
	s  Summary
}

func newCollector(paths int) *collector {
	return &collector{
		s: Summary{
			Paths:  paths,
			ByKind: make(map[string]int),
		},
	}
}

func (c *collector) notFound() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.NotFound++
}

func (c *collector) failed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Failed++
}

func (c *collector) result(kind string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if kind == "" {
		return
	}
	c.s.ByKind[kind]++
	if size > 0 {
		c.s.Bytes += uint64(size)
	}
}

func (c *collector) summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	ret := c.s
	ret.ByKind = make(map[string]int, len(c.s.ByKind))
	for kind, count := range c.s.ByKind {
		ret.ByKind[kind] = count
	}
	return ret
}
