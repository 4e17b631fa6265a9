package loot

import (
	"errors"
	"testing"
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

const day = 24 * time.Hour

func TestDayBuckets(t *testing.T) {
	c := NewCollection(
		gain("A", 1, 0),
		gain("B", 2, time.Hour),
		gain("C", 3, day),
		gain("D", 4, day+time.Hour),
		gain("E", 5, 3*day),
	)

	buckets, err := c.DayBuckets(nil, BucketOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}

	// Anchors are the first member's timestamp, members stay contiguous, and
	// concatenating all buckets reproduces the filtered sequence.
	var rebuilt []model.Event
	for _, b := range buckets {
		if !b.Start.Equal(b.Events[0].Timestamp) {
			t.Errorf("bucket anchor %v != first member %v", b.Start, b.Events[0].Timestamp)
		}
		rebuilt = append(rebuilt, b.Events...)
	}
	if len(rebuilt) != c.Len() {
		t.Fatalf("rebuilt %d events, want %d", len(rebuilt), c.Len())
	}
	i := 0
	for ev := range c.All() {
		if rebuilt[i] != ev {
			t.Fatalf("event %d reordered", i)
		}
		i++
	}
}

func TestDayBucketsSplitOnFullDate(t *testing.T) {
	// Same day-of-month in different months must start a new bucket; keying
	// on day-of-month alone was a defect in an earlier iteration.
	c := NewCollection(
		gain("A", 1, 0),
		gain("B", 1, 31*day), // June 5th, same day-of-month as day0
	)
	buckets, err := c.DayBuckets(nil, BucketOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
}

func TestDayBucketsEmptyFails(t *testing.T) {
	c := NewCollection()
	if _, err := c.DayBuckets(nil, BucketOptions{}); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestDayBucketsUTC(t *testing.T) {
	// 23:00 in UTC+2 is 21:00 UTC; 01:00 the next local day is 23:00 UTC —
	// still the same UTC day, so one bucket.
	zone := time.FixedZone("UTC+2", 2*60*60)
	c := NewCollection(
		model.Event{Timestamp: time.Date(2016, 5, 5, 23, 0, 0, 0, zone), GainItem: "A", GainValue: 1},
		model.Event{Timestamp: time.Date(2016, 5, 6, 1, 0, 0, 0, zone), GainItem: "B", GainValue: 1},
	)

	local, err := c.DayBuckets(nil, BucketOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(local) != 2 {
		t.Fatalf("local buckets = %d, want 2", len(local))
	}

	utc, err := c.DayBuckets(nil, BucketOptions{UTC: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(utc) != 1 {
		t.Fatalf("utc buckets = %d, want 1", len(utc))
	}
}

func soldEvent(offset time.Duration) model.Event {
	return model.Event{
		Timestamp:   day0.Add(offset),
		Interaction: model.InteractionSold,
		LossItem:    "Industrial Replicators", LossValue: -1,
		GainItem: "Energy Credits", GainValue: 1000,
	}
}

func TestTotalsByDay(t *testing.T) {
	c := NewCollection(
		gain("Energy Credits", 100, 0),
		loss("Pass Token", -2, time.Hour),
		soldEvent(2*time.Hour),
		gain("Energy Credits", 50, day),
	)

	days, err := c.TotalsByDay(nil, BucketOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}

	d0 := days[0].Totals
	if got := d0.Get("Energy Credits"); got != 1100 {
		t.Errorf("day 0 Energy Credits = %d, want 1100", got)
	}
	if got := d0.Get("Pass Token"); got != -2 {
		t.Errorf("day 0 Pass Token = %d, want -2", got)
	}
	// Without IncludeSaleLosses the sold item's -1 is not summed.
	if d0.Has("Industrial Replicators") {
		t.Error("sale loss summed without IncludeSaleLosses")
	}
	if d0.Has("") {
		t.Error("empty-label accumulator not removed")
	}

	if got := days[1].Totals.Get("Energy Credits"); got != 50 {
		t.Errorf("day 1 Energy Credits = %d, want 50", got)
	}
}

func TestTotalsByDayIncludeSaleLosses(t *testing.T) {
	c := NewCollection(soldEvent(0))
	days, err := c.TotalsByDay(nil, BucketOptions{IncludeSaleLosses: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := days[0].Totals.Get("Industrial Replicators"); got != -1 {
		t.Errorf("Industrial Replicators = %d, want -1", got)
	}
}

func TestCumulativeTotalsArePrefixSums(t *testing.T) {
	c := NewCollection(
		gain("Energy Credits", 100, 0),
		gain("Energy Credits", 50, day),
		gain("Dilithium", 25, day+time.Hour),
		gain("Energy Credits", 10, 2*day),
	)

	cumulative, err := c.CumulativeTotals(nil, BucketOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perDay, err := c.TotalsByDay(nil, BucketOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cumulative) != len(perDay) {
		t.Fatalf("row counts differ: %d vs %d", len(cumulative), len(perDay))
	}

	running := NewCounter()
	for k := range perDay {
		running.Merge(perDay[k].Totals)
		for _, label := range running.Labels() {
			if got := cumulative[k].Totals.Get(label); got != running.Get(label) {
				t.Errorf("row %d %s = %d, want %d", k, label, got, running.Get(label))
			}
		}
	}

	// Rows are snapshots: later days must not leak into earlier rows.
	if cumulative[0].Totals.Has("Dilithium") {
		t.Error("row 0 contains a later day's label")
	}
}

func TestAverageTotalsTruncates(t *testing.T) {
	c := NewCollection(
		gain("Energy Credits", 100, 0),
		gain("Energy Credits", 1, day),
	)
	averages := c.AverageTotals(nil, BucketOptions{})
	if got := averages.Get("Energy Credits"); got != 50 {
		t.Errorf("average = %d, want 50 (integer truncation)", got)
	}
}

func TestAverageTotalsEmpty(t *testing.T) {
	c := NewCollection()
	averages := c.AverageTotals(nil, BucketOptions{})
	if averages.Len() != 0 {
		t.Fatalf("expected an empty table, got %v", averages.Labels())
	}
}
