package loot

import (
	"slices"
	"testing"
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

var day0 = time.Date(2016, 5, 5, 0, 0, 0, 0, time.UTC)

// gain builds a plain gain event offset from day0.
func gain(item string, value int64, offset time.Duration) model.Event {
	return model.Event{
		Timestamp:   day0.Add(offset),
		Interaction: model.InteractionReceived,
		GainItem:    item,
		GainValue:   value,
	}
}

// loss builds a pure loss event offset from day0.
func loss(item string, value int64, offset time.Duration) model.Event {
	return model.Event{
		Timestamp:   day0.Add(offset),
		Interaction: model.InteractionLost,
		LossItem:    item,
		LossValue:   value,
	}
}

func items(c *Collection, p *Predicate) []string {
	var out []string
	for ev := range c.Loot(p) {
		label := ev.GainItem
		if label == "" {
			label = ev.LossItem
		}
		out = append(out, label)
	}
	return out
}

func TestCollectionOrder(t *testing.T) {
	c := NewCollection()
	c.Add(gain("A", 1, 0))
	c.Add(loss("B", -1, time.Minute))
	c.Add(gain("C", 2, 2*time.Minute))

	got := items(c, nil)
	want := []string{"A", "B", "C"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestCollectionExtend(t *testing.T) {
	a := NewCollection(gain("A", 1, 0))
	b := NewCollection(gain("B", 1, time.Minute), gain("C", 1, 2*time.Minute))

	a.Extend(b)
	if a.Len() != 3 {
		t.Fatalf("Len = %d, want 3", a.Len())
	}
	if got := items(a, nil); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("order = %v", got)
	}
	if b.Len() != 2 {
		t.Errorf("Extend must not modify its argument, Len = %d", b.Len())
	}
}

func TestCollectionConcat(t *testing.T) {
	a := NewCollection(gain("A", 1, 0))
	b := NewCollection(gain("B", 1, time.Minute))

	merged := a.Concat(b)
	if got := items(merged, nil); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("order = %v", got)
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Error("Concat must not modify its inputs")
	}

	merged.Add(gain("C", 1, 2*time.Minute))
	if a.Len() != 1 {
		t.Error("appending to the concatenation leaked into an input")
	}
}

func TestLootIsReIterable(t *testing.T) {
	c := NewCollection(gain("A", 1, 0), gain("B", 1, time.Minute))
	seq := c.Loot(nil)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected both passes to yield 2 events, got %d and %d", len(first), len(second))
	}
}
