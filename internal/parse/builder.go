package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

// ErrBadFragment reports a matched line whose numeric or date/time fragments
// are malformed. Lines that fail this way are exposed to the caller rather
// than silently coerced; the ingestion driver decides whether to skip them.
var ErrBadFragment = errors.New("malformed fragment")

// Reference supplies the external clock context for event construction.
// Pasted chat timestamps carry no year, so the caller must provide one.
// Location applies to every constructed timestamp; nil means UTC.
type Reference struct {
	Year     int
	Location *time.Location
}

// Builder turns matched fragments into Events.
type Builder struct {
	ref Reference
}

// NewBuilder returns a Builder using the given reference context.
func NewBuilder(ref Reference) *Builder {
	if ref.Location == nil {
		ref.Location = time.UTC
	}
	return &Builder{ref: ref}
}

// Build constructs one Event from matched fragments.
func (b *Builder) Build(frags Fragments, mode Mode) (model.Event, error) {
	ts, err := b.buildTimestamp(frags, mode)
	if err != nil {
		return model.Event{}, err
	}

	quantity, err := resolveQuantity(frags.Quantity, frags.Item)
	if err != nil {
		return model.Event{}, err
	}

	item := normalizeItem(frags.Item)

	ev := model.Event{
		Timestamp:   ts,
		Interaction: frags.Verb,
		Winner:      frags.Subject,
	}

	switch frags.Verb {
	case model.InteractionLost, model.InteractionDiscarded,
		model.InteractionSpent, model.InteractionBet:
		ev.LossItem = item
		ev.LossValue = -quantity
	case model.InteractionSold:
		// One line encodes two movements: the sold item (count unreported,
		// recorded as -1) and the sale price received.
		sold, price, ok := cutLast(item, " for ")
		if !ok {
			return model.Event{}, fmt.Errorf("%w: sold line %q has no price", ErrBadFragment, frags.Item)
		}
		amountText, currency, ok := strings.Cut(price, " ")
		if !ok {
			return model.Event{}, fmt.Errorf("%w: sale price %q has no currency", ErrBadFragment, price)
		}
		amount, err := parseAmount(amountText)
		if err != nil {
			return model.Event{}, err
		}
		ev.LossItem = sold
		ev.LossValue = -1
		ev.GainItem = currency
		ev.GainValue = amount
	case model.InteractionNoWin:
		// Zero-value gain, kept only so dabo pairing sees the outcome.
		ev.GainItem = item
		ev.GainValue = 0
	default:
		ev.GainItem = item
		ev.GainValue = quantity
	}

	return ev, nil
}

// buildTimestamp resolves the timestamp fragments. Game log headers carry
// full precision; pasted chat fragments are combined with the reference year
// and default missing pieces to month 1, day 1, 00:00.
func (b *Builder) buildTimestamp(frags Fragments, mode Mode) (time.Time, error) {
	if mode == ModeGameLog && frags.Stamp != "" {
		return b.parseStamp(frags.Stamp)
	}

	month, day := 1, 1
	if frags.Date != "" {
		monthText, dayText, ok := strings.Cut(frags.Date, "/")
		if !ok {
			return time.Time{}, fmt.Errorf("%w: date %q", ErrBadFragment, frags.Date)
		}
		var err error
		if month, err = parseClamped(monthText, 1, 12, "month"); err != nil {
			return time.Time{}, err
		}
		if day, err = parseClamped(dayText, 1, 31, "day"); err != nil {
			return time.Time{}, err
		}
	}

	hour, minute := 0, 0
	if frags.Time != "" {
		hourText, minuteText, ok := strings.Cut(frags.Time, ":")
		if !ok {
			return time.Time{}, fmt.Errorf("%w: time %q", ErrBadFragment, frags.Time)
		}
		var err error
		if hour, err = parseClamped(hourText, 0, 23, "hour"); err != nil {
			return time.Time{}, err
		}
		if minute, err = parseClamped(minuteText, 0, 59, "minute"); err != nil {
			return time.Time{}, err
		}
	}

	return time.Date(b.ref.Year, time.Month(month), day, hour, minute, 0, 0, b.ref.Location), nil
}

// parseStamp decodes a fixed-width yyyymmddhhmmss record header.
func (b *Builder) parseStamp(stamp string) (time.Time, error) {
	if len(stamp) != 14 {
		return time.Time{}, fmt.Errorf("%w: record header %q", ErrBadFragment, stamp)
	}
	year, err := strconv.Atoi(stamp[0:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: record header %q", ErrBadFragment, stamp)
	}
	month, err := parseClamped(stamp[4:6], 1, 12, "month")
	if err != nil {
		return time.Time{}, err
	}
	day, err := parseClamped(stamp[6:8], 1, 31, "day")
	if err != nil {
		return time.Time{}, err
	}
	hour, err := parseClamped(stamp[8:10], 0, 23, "hour")
	if err != nil {
		return time.Time{}, err
	}
	minute, err := parseClamped(stamp[10:12], 0, 59, "minute")
	if err != nil {
		return time.Time{}, err
	}
	second, err := parseClamped(stamp[12:14], 0, 59, "second")
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, b.ref.Location), nil
}

// resolveQuantity applies the ordered fallback chain: the explicit fragment
// wins when non-zero, then a trailing " x N" suffix on the item text, then 1.
func resolveQuantity(explicit, item string) (int64, error) {
	q, err := parseAmount(strings.TrimSpace(explicit))
	if err != nil {
		return 0, err
	}
	if q != 0 {
		return q, nil
	}

	parts := strings.Split(item, " x ")
	if len(parts) > 1 {
		suffix := strings.Join(parts[1:], "")
		q, err = parseAmount(strings.TrimSpace(suffix))
		if err != nil {
			return 0, err
		}
		if q != 0 {
			return q, nil
		}
	}
	return 1, nil
}

// normalizeItem strips the quantity suffix, trailing punctuation, and the
// trailing German participle from broadcast lines.
func normalizeItem(item string) string {
	item, _, _ = strings.Cut(item, " x ")
	item = strings.TrimRight(item, "!.")
	if base, _, ok := cutLast(item, " erhalten"); ok {
		item = base
	}
	return item
}

// parseAmount parses an integer with thousands separators stripped.
// The empty string parses as 0.
func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q", ErrBadFragment, s)
	}
	return n, nil
}

// cutLast is strings.Cut around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

func parseClamped(s string, lo, hi int, field string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s %q", ErrBadFragment, field, s)
	}
	return n, nil
}
