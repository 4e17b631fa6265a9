package loot

import (
	"errors"
	"iter"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

// ErrEmptyQuery reports an aggregation over a filter that matched nothing.
// Averages and day buckets fail this way instead of returning a misleading
// zero.
var ErrEmptyQuery = errors.New("no events matched")

// Side selects which movement of an event a reduction operates on.
type Side int

const (
	Gain Side = iota
	Loss
)

func (s Side) value(ev model.Event) int64 {
	if s == Gain {
		return ev.GainValue
	}
	return ev.LossValue
}

// Loot returns a lazy sequence of the events matching p, in insertion order.
// The sequence is re-iterable; each iteration rescans the collection. A nil
// predicate matches everything.
func (c *Collection) Loot(p *Predicate) iter.Seq[model.Event] {
	return func(yield func(model.Event) bool) {
		for _, ev := range c.events {
			if p.Matches(ev) && !yield(ev) {
				return
			}
		}
	}
}

// Winners returns the matching events naming a broadcast winner.
func (c *Collection) Winners(p *Predicate) iter.Seq[model.Event] {
	return func(yield func(model.Event) bool) {
		for ev := range c.Loot(p) {
			if ev.IsBroadcast() && !yield(ev) {
				return
			}
		}
	}
}

// Frequencies tallies every non-empty gain and loss label across the
// matching events.
func (c *Collection) Frequencies(p *Predicate) *Counter {
	freq := NewCounter()
	for ev := range c.Loot(p) {
		if ev.HasGain() {
			freq.Add(ev.GainItem, 1)
		}
		if ev.HasLoss() {
			freq.Add(ev.LossItem, 1)
		}
	}
	return freq
}

// Count returns the number of matching events.
func (c *Collection) Count(p *Predicate) int {
	n := 0
	for range c.Loot(p) {
		n++
	}
	return n
}

// Total sums the chosen side's value over the matching events.
func (c *Collection) Total(p *Predicate, side Side) int64 {
	var total int64
	for ev := range c.Loot(p) {
		total += side.value(ev)
	}
	return total
}

// Average returns the mean of the chosen side's value per matching event.
// It fails with ErrEmptyQuery when nothing matched.
func (c *Collection) Average(p *Predicate, side Side) (float64, error) {
	var total int64
	n := 0
	for ev := range c.Loot(p) {
		total += side.value(ev)
		n++
	}
	if n == 0 {
		return 0, ErrEmptyQuery
	}
	return float64(total) / float64(n), nil
}

// Counter is an insertion-ordered multiset of labels with int64 weights.
type Counter struct {
	order  []string
	counts map[string]int64
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

// Add increases label's count by n, registering the label on first sight.
func (c *Counter) Add(label string, n int64) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label] += n
}

// Get returns label's count, zero when absent.
func (c *Counter) Get(label string) int64 {
	return c.counts[label]
}

// Has reports whether label is present.
func (c *Counter) Has(label string) bool {
	_, seen := c.counts[label]
	return seen
}

// Delete removes label entirely.
func (c *Counter) Delete(label string) {
	if _, seen := c.counts[label]; !seen {
		return
	}
	delete(c.counts, label)
	for i, l := range c.order {
		if l == label {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Labels returns the labels in first-insertion order. The returned slice is
// shared; callers must not modify it.
func (c *Counter) Labels() []string {
	return c.order
}

// Len returns the number of distinct labels.
func (c *Counter) Len() int {
	return len(c.order)
}

// Clone returns an independent copy.
func (c *Counter) Clone() *Counter {
	out := NewCounter()
	for _, label := range c.order {
		out.Add(label, c.counts[label])
	}
	return out
}

// Merge adds every count of other into c.
func (c *Counter) Merge(other *Counter) {
	for _, label := range other.order {
		c.Add(label, other.counts[label])
	}
}

// MostCommon returns the label with the highest count. Ties go to the
// earliest-inserted label. ok is false for an empty counter.
func (c *Counter) MostCommon() (label string, count int64, ok bool) {
	for i, l := range c.order {
		if i == 0 || c.counts[l] > count {
			label, count = l, c.counts[l]
		}
	}
	return label, count, len(c.order) > 0
}

// LeastCommon returns the label with the lowest count, earliest insertion
// breaking ties. ok is false for an empty counter.
func (c *Counter) LeastCommon() (label string, count int64, ok bool) {
	for i, l := range c.order {
		if i == 0 || c.counts[l] < count {
			label, count = l, c.counts[l]
		}
	}
	return label, count, len(c.order) > 0
}
