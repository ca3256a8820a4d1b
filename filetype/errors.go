package filetype

import (
	"errors"
	"fmt"
)

var ErrMetadata = errors.New("cannot read metadata")

// MetadataError is returned when an existing path cannot be stat'ed, for
// instance because it vanished or became unreadable after the existence
// check.
type MetadataError struct {
	Pathname string
	Cause    error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%s of %s: %v", ErrMetadata, e.Pathname, e.Cause)
}

func (e *MetadataError) Unwrap() error {
	return e.Cause
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrMetadata
}
