package corpus

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	scannerInitialBuf = 64 * 1024
	scannerMaxBuf     = 1024 * 1024
)

// LineSource is a lazy, finite sequence of raw corpus lines. It is not
// restartable mid-stream; a fresh Open starts over.
type LineSource struct {
	scanner *bufio.Scanner
	closers []io.Closer
}

// Open opens a corpus file for line-by-line reading. Files ending in
// .gz are decompressed transparently.
func Open(path string) (*LineSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}

	var r io.Reader = file
	closers := []io.Closer{file}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		r = gz
		closers = []io.Closer{gz, file}
	}

	return NewLineSource(r, closers...), nil
}

// NewLineSource wraps an already-open reader. Long product descriptions
// overflow the default scanner buffer, so it is raised up front.
func NewLineSource(r io.Reader, closers ...io.Closer) *LineSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scannerInitialBuf), scannerMaxBuf)

	return &LineSource{
		scanner: scanner,
		closers: closers,
	}
}

func (s *LineSource) Next() bool {
	return s.scanner.Scan()
}

func (s *LineSource) Text() string {
	return s.scanner.Text()
}

func (s *LineSource) Err() error {
	return s.scanner.Err()
}

func (s *LineSource) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
