package shebang

import "errors"

var errInvalidLine = errors.New("first line is not valid utf-8")
