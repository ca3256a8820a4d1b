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

package shebang

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	marker = "#!"

	// the first line is never read past this many bytes
	maxLineSize = 4096
)

type ScriptType int8

const (
	Bash ScriptType = iota
	Tcsh
	Csh
	Yash
	Ash
	Ksh
	Zsh
	Sh
	Python
)

var scriptTypes = []string{
	"Bourne-Again shell",
	"Tenex C shell",
	"C shell",
	"Yet-Another shell",
	"Neil Brown's ash",
	"Korn shell",
	"Paul Falstad's zsh",
	"POSIX shell",
	"Python",
}

func (s ScriptType) String() string {
	return scriptTypes[s]
}

// first match wins, so "tcsh" precedes "csh" and "sh" stays last among
// the shells.
var interpreters = []struct {
	substring  string
	scriptType ScriptType
}{
	{"bash", Bash},
	{"tcsh", Tcsh},
	{"csh", Csh},
	{"yash", Yash},
	{"ash", Ash},
	{"ksh", Ksh},
	{"zsh", Zsh},
	{"sh", Sh},
	{"python", Python},
}

// Detect reads the first line of pathname and returns the display name of
// the interpreter named by its shebang. Any failure to open or read the
// file is reported the same way as a file without a shebang.
func Detect(pathname string) (string, bool) {
	fp, err := os.Open(pathname)
	if err != nil {
		return "", false
	}
	defer fp.Close()

	line, err := firstLine(fp)
	if err != nil {
		return "", false
	}
	return Parse(line)
}

func firstLine(fp *os.File) (string, error) {
	rd := bufio.NewReaderSize(fp, maxLineSize)
	buf, err := rd.ReadSlice('\n')
	if err != nil && err != bufio.ErrBufferFull && len(buf) == 0 {
		return "", err
	}
	if err == bufio.ErrBufferFull {
		buf = trimPartialRune(buf)
	}
	buf = bytes.TrimRight(buf, "\r\n")
	if !utf8.Valid(buf) {
		return "", errInvalidLine
	}
	return string(buf), nil
}

// trimPartialRune drops a multibyte sequence cut short by the line limit.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}
			break
		}
	}
	return buf
}

// Parse extracts the interpreter from a shebang line and evaluates it.
func Parse(line string) (string, bool) {
	if !strings.HasPrefix(line, marker) {
		return "", false
	}

	line = strings.TrimLeft(line, "#!")
	line = strings.TrimSpace(line)

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}

	var interpreter string
	if !strings.Contains(line, "/env ") || fields[len(fields)-1] == "env" {
		interpreter = fields[0]
	} else {
		idx := strings.Index(line, "/env ")
		interpreter = strings.TrimSpace(line[idx+len("/env "):])
	}

	return Evaluate(interpreter), true
}

// Evaluate maps an interpreter to its display name, or returns it
// unmodified when it is not a known shell or Python.
func Evaluate(interpreter string) string {
	for _, candidate := range interpreters {
		if strings.Contains(interpreter, candidate.substring) {
			return candidate.scriptType.String()
		}
	}
	return interpreter
}
