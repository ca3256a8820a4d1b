package dispatch

import "errors"

var (
	ErrNoInput            = errors.New("no input paths")
	ErrInvalidConcurrency = errors.New("concurrency must not be negative")
	ErrNoMimeClassifier   = errors.New("mime mode requires a mime classifier")
)
