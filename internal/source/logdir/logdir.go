// Package logdir reads the game client's chat log directory. Segments are
// concatenated in ascending filename order, which the client's naming scheme
// makes chronological.
package logdir

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/TigerhawkT3/sto-loot-parser/internal/source"
)

func init() {
	source.Register("logdir", func(cfg source.Config) (source.Source, error) {
		return New(cfg.Dir)
	})
}

// Dir is a Source over the *.log files of one directory.
type Dir struct {
	path    string
	pattern string
}

// Option configures a Dir.
type Option func(*Dir)

// WithPattern sets the filename glob used to select segments. Default: *.log.
func WithPattern(glob string) Option {
	return func(d *Dir) { d.pattern = glob }
}

// New creates a Dir source for the given directory.
func New(path string, opts ...Option) (*Dir, error) {
	if path == "" {
		return nil, fmt.Errorf("logdir: directory not set")
	}
	d := &Dir{path: path, pattern: "*.log"}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Lines reads every matching segment in filename order and returns their
// concatenated lines.
func (d *Dir) Lines(ctx context.Context) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(d.path, d.pattern))
	if err != nil {
		return nil, fmt.Errorf("logdir: %w", err)
	}
	sort.Strings(paths)

	var lines []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segment, err := readLines(p)
		if err != nil {
			return nil, err
		}
		lines = append(lines, segment...)
	}
	return lines, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("logdir: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("logdir: reading %s: %w", path, err)
	}
	return lines, nil
}
