package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/lazharichir/drawpoker/domain"
)

// LineReader turns an input stream into lines that can be waited on with a
// deadline. A single goroutine owns the scanner, so a timed-out read never
// loses the line typed afterwards: it is the next one returned.
type LineReader struct {
	lines chan string
	err   error
}

func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{lines: make(chan string, 32)}
	go lr.scan(bufio.NewScanner(r))
	return lr
}

func (lr *LineReader) scan(s *bufio.Scanner) {
	defer close(lr.lines)
	for s.Scan() {
		lr.lines <- s.Text()
	}
	lr.err = s.Err()
}

// ReadLine waits for the next trimmed line. It returns domain.ErrTimeout when
// ctx hits its deadline and io.EOF once the input is closed.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.ErrTimeout
		}
		return "", ctx.Err()
	}
}

// Drain discards lines typed ahead, such as input entered after a timeout
// that was meant for the previous seat. It returns how many were dropped.
func (lr *LineReader) Drain() int {
	n := 0
	for {
		select {
		case _, ok := <-lr.lines:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}
