package loot

import (
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

// DayBucket is a contiguous run of time-ordered events sharing a calendar
// day. Start is the first member's timestamp.
type DayBucket struct {
	Start  time.Time
	Events []model.Event
}

// DayTotals is one day's per-item value table, anchored at the bucket start.
type DayTotals struct {
	Day    time.Time
	Totals *Counter
}

// BucketOptions tunes day bucketing and the totals derived from it.
type BucketOptions struct {
	// UTC normalizes each event's timestamp to UTC before comparing calendar
	// days, so sources from different zones bucket consistently.
	UTC bool
	// IncludeSaleLosses also sums the loss side of events that granted
	// something (i.e. sales). Pure-loss events are always summed.
	IncludeSaleLosses bool
}

func dayOf(ts time.Time, utc bool) (int, time.Month, int) {
	if utc {
		ts = ts.UTC()
	}
	return ts.Date()
}

// DayBuckets scans the matching events once, in order, starting a new bucket
// whenever the full calendar date changes. The collection is assumed
// time-ordered; no sort is performed. Fails with ErrEmptyQuery when nothing
// matched.
func (c *Collection) DayBuckets(p *Predicate, opts BucketOptions) ([]DayBucket, error) {
	var buckets []DayBucket
	for ev := range c.Loot(p) {
		y, m, d := dayOf(ev.Timestamp, opts.UTC)
		if len(buckets) > 0 {
			last := &buckets[len(buckets)-1]
			ly, lm, ld := dayOf(last.Start, opts.UTC)
			if y == ly && m == lm && d == ld {
				last.Events = append(last.Events, ev)
				continue
			}
		}
		buckets = append(buckets, DayBucket{Start: ev.Timestamp, Events: []model.Event{ev}})
	}
	if len(buckets) == 0 {
		return nil, ErrEmptyQuery
	}
	return buckets, nil
}

// TotalsByDay sums each bucket's gains by gain label and, for events that
// granted nothing or when IncludeSaleLosses is set, losses by loss label.
func (c *Collection) TotalsByDay(p *Predicate, opts BucketOptions) ([]DayTotals, error) {
	buckets, err := c.DayBuckets(p, opts)
	if err != nil {
		return nil, err
	}

	days := make([]DayTotals, 0, len(buckets))
	for _, bucket := range buckets {
		totals := NewCounter()
		for _, ev := range bucket.Events {
			totals.Add(ev.GainItem, ev.GainValue)
			if !ev.HasGain() || opts.IncludeSaleLosses {
				totals.Add(ev.LossItem, ev.LossValue)
			}
		}
		// Events with an empty side accumulate under the empty label.
		totals.Delete("")
		days = append(days, DayTotals{Day: bucket.Start, Totals: totals})
	}
	return days, nil
}

// CumulativeTotals merges each day's totals into a growing table, yielding
// one snapshot per day. Row k holds the sums for days 0..k inclusive.
func (c *Collection) CumulativeTotals(p *Predicate, opts BucketOptions) ([]DayTotals, error) {
	days, err := c.TotalsByDay(p, opts)
	if err != nil {
		return nil, err
	}

	running := NewCounter()
	out := make([]DayTotals, 0, len(days))
	for _, day := range days {
		running.Merge(day.Totals)
		out = append(out, DayTotals{Day: day.Day, Totals: running.Clone()})
	}
	return out, nil
}

// AverageTotals divides the final cumulative table by the number of day
// buckets, integer-truncated. Zero buckets yield an empty table rather than
// a division error.
func (c *Collection) AverageTotals(p *Predicate, opts BucketOptions) *Counter {
	days, err := c.TotalsByDay(p, opts)
	if err != nil {
		return NewCounter()
	}

	final := NewCounter()
	for _, day := range days {
		final.Merge(day.Totals)
	}
	averages := NewCounter()
	for _, label := range final.Labels() {
		averages.Add(label, final.Get(label)/int64(len(days)))
	}
	return averages
}
