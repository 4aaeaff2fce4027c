package session

import (
	"bufio"
	"errors"
	"io"

	"github.com/nvandessel/lasercircuit/internal/models"
)

// maxLineLength bounds how much of one input line is kept. Longer lines
// are drained and rejected, never buffered whole.
const maxLineLength = 64 * 1024

var errLineTooLong = models.Rejectf(models.KindMalformedInput, "line is longer than %d bytes", maxLineLength)

// lineReader reads newline-terminated lines of any length.
type lineReader struct {
	r   *bufio.Reader
	err error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line without its terminator. tooLong reports a
// line over maxLineLength, whose content is dropped. ok is false at end of
// input or on a read error, which Err then returns.
func (lr *lineReader) next() (line string, tooLong, ok bool) {
	var buf []byte
	started := false
	for {
		chunk, isPrefix, err := lr.r.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				lr.err = err
			}
			if started && lr.err == nil {
				return string(buf), tooLong, true
			}
			return "", false, false
		}
		started = true
		if !tooLong {
			if len(buf)+len(chunk) > maxLineLength {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, true
		}
	}
}

// Err returns the first read error other than io.EOF.
func (lr *lineReader) Err() error {
	return lr.err
}
