// Package parse turns raw chat-log lines into loot Events. One composite
// pattern recognizes every supported message shape; the builder resolves
// timestamps, quantities, and the gain/loss decomposition.
package parse

import "github.com/TigerhawkT3/sto-loot-parser/internal/model"

// Parser combines the line matcher and event builder for one mode.
type Parser struct {
	matcher *Matcher
	builder *Builder
	mode    Mode
}

// New creates a Parser for the given mode and reference context.
func New(mode Mode, ref Reference) *Parser {
	return &Parser{
		matcher: NewMatcher(mode),
		builder: NewBuilder(ref),
		mode:    mode,
	}
}

// ParseLine parses one line. ok is false when the line is not a loot message
// (normal chatter, not an error). A non-nil error means the line matched but
// carried malformed fragments.
func (p *Parser) ParseLine(line string) (ev model.Event, ok bool, err error) {
	frags, ok := p.matcher.Match(line)
	if !ok {
		return model.Event{}, false, nil
	}
	ev, err = p.builder.Build(frags, p.mode)
	if err != nil {
		return model.Event{}, true, err
	}
	return ev, true, nil
}
