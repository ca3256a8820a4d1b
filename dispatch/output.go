package dispatch

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

type line struct {
	diagnostic bool
	text       string
}

// output serializes every line through a single goroutine, each line being
// one Write followed by a flush, so lines from concurrent workers never
// interleave.
type output struct {
	lines  chan line
	stdout io.Writer
	stderr io.Writer
	wg     sync.WaitGroup

	muErr sync.Mutex
	err   error
}

func startOutput(stdout io.Writer, stderr io.Writer, buffer int) *output {
	o := &output{
		lines:  make(chan line, buffer),
		stdout: stdout,
		stderr: stderr,
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for l := range o.lines {
			w := o.stdout
			if l.diagnostic {
				w = o.stderr
			}
			o.write(w, l.text)
		}
	}()
	return o
}

func (o *output) write(w io.Writer, text string) {
	_, err := io.WriteString(w, text)
	if err == nil {
		if f, ok := w.(flusher); ok {
			err = f.Flush()
		}
	}
	if err != nil {
		o.muErr.Lock()
		if o.err == nil {
			o.err = err
		}
		o.muErr.Unlock()
	}
}

func (o *output) Result(text string) {
	o.lines <- line{text: text}
}

func (o *output) Diagnostic(text string) {
	o.lines <- line{diagnostic: true, text: text}
}

// Close waits for every queued line to be written and returns the first
// write error, if any.
func (o *output) Close() error {
	close(o.lines)
	o.wg.Wait()

	o.muErr.Lock()
	defer o.muErr.Unlock()
	return o.err
}
