// Package loot holds the in-memory event collection and its query engine.
// A collection is filled once by ingestion and then queried read-only; every
// query recomputes its view from scratch.
package loot

import (
	"iter"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

// Collection is an append-only ordered sequence of Events. Insertion order is
// encounter order in the source text, which is assumed chronological.
type Collection struct {
	events []model.Event
}

// NewCollection creates a Collection holding the given events.
func NewCollection(events ...model.Event) *Collection {
	return &Collection{events: events}
}

// Add appends one event.
func (c *Collection) Add(ev model.Event) {
	c.events = append(c.events, ev)
}

// Extend appends all of other's events in order.
func (c *Collection) Extend(other *Collection) {
	c.events = append(c.events, other.events...)
}

// Concat returns a new Collection holding c's events followed by other's.
// Neither input is modified.
func (c *Collection) Concat(other *Collection) *Collection {
	merged := make([]model.Event, 0, len(c.events)+len(other.events))
	merged = append(merged, c.events...)
	merged = append(merged, other.events...)
	return &Collection{events: merged}
}

// Len returns the number of events.
func (c *Collection) Len() int {
	return len(c.events)
}

// All iterates over every event in insertion order.
func (c *Collection) All() iter.Seq[model.Event] {
	return func(yield func(model.Event) bool) {
		for _, ev := range c.events {
			if !yield(ev) {
				return
			}
		}
	}
}
