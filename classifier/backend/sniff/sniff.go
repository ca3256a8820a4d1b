package sniff

import (
	"os"

	"github.com/PlakarKorp/ftype/classifier"
	"github.com/gabriel-vasile/mimetype"
)

const NAME = "sniff"

// mimetype reports this when no signature matched
const unknown = "application/octet-stream"

func init() {
	classifier.Register(NAME, NewBackend)
}

type Backend struct {
}

func NewBackend() classifier.Backend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return NAME
}

func (b *Backend) Guess(pathname string) (string, error) {
	// reading a fifo or a device could block forever
	info, err := os.Stat(pathname)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", nil
	}

	mtype, err := mimetype.DetectFile(pathname)
	if err != nil {
		return "", err
	}
	if mtype.Is(unknown) {
		return "", nil
	}
	return mtype.String(), nil
}
