// Package paste wraps a pasted chat transcript — a file, stdin, or an
// in-memory string — as a line source.
package paste

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TigerhawkT3/sto-loot-parser/internal/source"
)

func init() {
	source.Register("paste", func(cfg source.Config) (source.Source, error) {
		return New(cfg.Path)
	})
}

// Transcript is a Source over one pasted chat transcript.
type Transcript struct {
	path string
	r    io.Reader
}

// New creates a Transcript reading from the given file path, or from stdin
// when path is "-".
func New(path string) (*Transcript, error) {
	if path == "" {
		return nil, fmt.Errorf("paste: transcript path not set")
	}
	return &Transcript{path: path}, nil
}

// FromReader creates a Transcript over an arbitrary reader.
func FromReader(r io.Reader) *Transcript {
	return &Transcript{r: r}
}

// FromString creates a Transcript over a literal transcript.
func FromString(s string) *Transcript {
	return &Transcript{r: strings.NewReader(s)}
}

// Lines returns the transcript's lines in order.
func (t *Transcript) Lines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := t.r
	if r == nil {
		if t.path == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(t.path)
			if err != nil {
				return nil, fmt.Errorf("paste: %w", err)
			}
			defer f.Close()
			r = f
		}
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("paste: %w", err)
	}
	return lines, nil
}
