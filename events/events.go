package events

import (
	"time"
)

type Event interface {
	Timestamp() time.Time
}

/**/
type Start struct {
	ts time.Time

	Paths int
}

func StartEvent(paths int) Start {
	return Start{ts: time.Now(), Paths: paths}
}
func (e Start) Timestamp() time.Time {
	return e.ts
}

/**/
type Done struct {
	ts time.Time
}

func DoneEvent() Done {
	return Done{ts: time.Now()}
}
func (e Done) Timestamp() time.Time {
	return e.ts
}

/**/
type Warning struct {
	ts time.Time

	Pathname string
	Message  string
}

func WarningEvent(pathname string, message string) Warning {
	return Warning{ts: time.Now(), Pathname: pathname, Message: message}
}
func (e Warning) Timestamp() time.Time {
	return e.ts
}

/**/
type Path struct {
	ts time.Time

	Pathname string
}

func PathEvent(pathname string) Path {
	return Path{ts: time.Now(), Pathname: pathname}
}
func (e Path) Timestamp() time.Time {
	return e.ts
}

/**/
type NotFound struct {
	ts time.Time

	Pathname string
}

func NotFoundEvent(pathname string) NotFound {
	return NotFound{ts: time.Now(), Pathname: pathname}
}
func (e NotFound) Timestamp() time.Time {
	return e.ts
}

/**/
type MetadataError struct {
	ts time.Time

	Pathname string
	Err      error
}

func MetadataErrorEvent(pathname string, err error) MetadataError {
	return MetadataError{ts: time.Now(), Pathname: pathname, Err: err}
}
func (e MetadataError) Timestamp() time.Time {
	return e.ts
}

/**/
type Result struct {
	ts time.Time

	Pathname    string
	Description string

	// set in the default mode only, Size is zero for anything but
	// regular files
	Kind string
	Size int64
}

func ResultEvent(pathname string, description string, kind string, size int64) Result {
	return Result{ts: time.Now(), Pathname: pathname, Description: description, Kind: kind, Size: size}
}
func (e Result) Timestamp() time.Time {
	return e.ts
}
