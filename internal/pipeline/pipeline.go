// Package pipeline drives ingestion: it feeds raw lines from a source
// through the parser into a collection.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TigerhawkT3/sto-loot-parser/internal/loot"
	"github.com/TigerhawkT3/sto-loot-parser/internal/parse"
	"github.com/TigerhawkT3/sto-loot-parser/internal/source"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Lines   int // lines read from the source
	Matched int // lines recognized as loot messages
	Skipped int // unrecognized chatter, dropped silently
	Failed  int // matched lines with malformed fragments
}

// Pipeline connects a source and a parser into an ingestion run.
type Pipeline struct {
	source source.Source
	parser *parse.Parser
	strict bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// Strict makes a malformed matched line abort the run instead of being
// counted and skipped.
func Strict() Option {
	return func(p *Pipeline) { p.strict = true }
}

// New creates a Pipeline from the given components.
func New(src source.Source, parser *parse.Parser, opts ...Option) *Pipeline {
	p := &Pipeline{source: src, parser: parser}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reads the source to exhaustion and returns the populated collection.
// The whole batch is ingested before any querying; there is no interleaving.
func (p *Pipeline) Run(ctx context.Context) (*loot.Collection, Stats, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	lines, err := p.source.Lines(ctx)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("pipeline: %w", err)
	}

	col := loot.NewCollection()
	stats := Stats{Lines: len(lines)}
	for i, line := range lines {
		ev, ok, err := p.parser.ParseLine(line)
		if err != nil {
			if p.strict {
				return nil, stats, fmt.Errorf("pipeline: line %d: %w", i+1, err)
			}
			stats.Failed++
			log.Warn("skipping malformed line", "line", i+1, "err", err)
			continue
		}
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Matched++
		col.Add(ev)
	}

	log.Info("ingestion complete",
		"lines", stats.Lines,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
	return col, stats, nil
}
