package stoloot

import (
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/loot"
	"github.com/TigerhawkT3/sto-loot-parser/internal/parse"
)

// Filter is an operator-specified attribute-to-predicate mapping. See the
// package documentation for the supported keys and value forms.
type Filter = map[string]any

// DayRow is one day of per-item totals.
type DayRow struct {
	Day    time.Time
	Totals map[string]int64
}

// Pair is one reconstructed wager→payout sequence from the dabo minigame.
type Pair struct {
	Bet    Event
	Payout Event
}

// Parser accumulates parsed events and answers queries over them.
type Parser struct {
	parser *parse.Parser
	col    *loot.Collection
	opts   options
}

// New creates a Parser for the given mode.
func New(mode Mode, opts ...Option) *Parser {
	o := options{year: time.Now().Year(), location: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}

	pm := parse.ModePasted
	if mode == GameLog {
		pm = parse.ModeGameLog
	}
	return &Parser{
		parser: parse.New(pm, parse.Reference{Year: o.year, Location: o.location}),
		col:    loot.NewCollection(),
		opts:   o,
	}
}

// ParseLine parses a single line without adding it to the collection. ok is
// false for lines that are not loot messages.
func (p *Parser) ParseLine(line string) (Event, bool, error) {
	ev, ok, err := p.parser.ParseLine(line)
	if err != nil || !ok {
		return Event{}, ok, err
	}
	return fromInternal(ev), true, nil
}

// ParseLines parses each line and appends the recognized events, returning
// how many were added. Unrecognized chatter is skipped. Malformed matched
// lines are skipped too unless WithStrict was set.
func (p *Parser) ParseLines(lines []string) (int, error) {
	added := 0
	for _, line := range lines {
		ev, ok, err := p.parser.ParseLine(line)
		if err != nil {
			if p.opts.strict {
				return added, err
			}
			continue
		}
		if !ok {
			continue
		}
		p.col.Add(ev)
		added++
	}
	return added, nil
}

// Len returns the number of accumulated events.
func (p *Parser) Len() int {
	return p.col.Len()
}

// Events returns every accumulated event in encounter order.
func (p *Parser) Events() []Event {
	return p.collect(nil)
}

// Loot returns the events matching the filter, in encounter order.
func (p *Parser) Loot(f Filter) ([]Event, error) {
	pred, err := p.compile(f)
	if err != nil {
		return nil, err
	}
	return p.collect(pred), nil
}

// Winners returns the matching broadcast events.
func (p *Parser) Winners(f Filter) ([]Event, error) {
	pred, err := p.compile(f)
	if err != nil {
		return nil, err
	}
	var out []Event
	for ev := range p.col.Winners(pred) {
		out = append(out, fromInternal(ev))
	}
	return out, nil
}

// TotalsByDay returns per-day totals for the matching events.
func (p *Parser) TotalsByDay(f Filter) ([]DayRow, error) {
	pred, err := p.compile(f)
	if err != nil {
		return nil, err
	}
	days, err := p.col.TotalsByDay(pred, loot.BucketOptions{})
	if err != nil {
		return nil, err
	}
	return dayRows(days), nil
}

// CumulativeTotals returns running per-day totals for the matching events.
func (p *Parser) CumulativeTotals(f Filter) ([]DayRow, error) {
	pred, err := p.compile(f)
	if err != nil {
		return nil, err
	}
	days, err := p.col.CumulativeTotals(pred, loot.BucketOptions{})
	if err != nil {
		return nil, err
	}
	return dayRows(days), nil
}

// AverageTotals returns the per-item daily average over the matching events.
func (p *Parser) AverageTotals(f Filter) (map[string]int64, error) {
	pred, err := p.compile(f)
	if err != nil {
		return nil, err
	}
	averages := p.col.AverageTotals(pred, loot.BucketOptions{})
	out := make(map[string]int64, averages.Len())
	for _, label := range averages.Labels() {
		out[label] = averages.Get(label)
	}
	return out, nil
}

// Dabo returns positional wager/payout pairs from the matching events.
func (p *Parser) Dabo(f Filter) ([]Pair, error) {
	pred, err := p.compile(f)
	if err != nil {
		return nil, err
	}
	var out []Pair
	for _, pair := range p.col.Dabo(pred) {
		out = append(out, Pair{Bet: fromInternal(pair.Bet), Payout: fromInternal(pair.Payout)})
	}
	return out, nil
}

// MostCommon returns the most frequent item label among the matching events.
// ok is false when nothing matched.
func (p *Parser) MostCommon(f Filter) (label string, count int64, ok bool, err error) {
	pred, err := p.compile(f)
	if err != nil {
		return "", 0, false, err
	}
	label, count, ok = p.col.Frequencies(pred).MostCommon()
	return label, count, ok, nil
}

func (p *Parser) compile(f Filter) (*loot.Predicate, error) {
	if f == nil {
		return nil, nil
	}
	return loot.Filter(f).Compile(p.opts.regex)
}

func (p *Parser) collect(pred *loot.Predicate) []Event {
	var out []Event
	for ev := range p.col.Loot(pred) {
		out = append(out, fromInternal(ev))
	}
	return out
}

func dayRows(days []loot.DayTotals) []DayRow {
	out := make([]DayRow, 0, len(days))
	for _, day := range days {
		totals := make(map[string]int64, day.Totals.Len())
		for _, label := range day.Totals.Labels() {
			totals[label] = day.Totals.Get(label)
		}
		out = append(out, DayRow{Day: day.Day, Totals: totals})
	}
	return out
}
