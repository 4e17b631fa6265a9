package loot

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

// ErrUnknownKey reports a filter key outside the supported vocabulary.
var ErrUnknownKey = errors.New("unknown filter key")

// Filter is an operator-specified mapping from attribute name to predicate
// value. Attribute keys (interaction, winner, gain_item, loss_item, and the
// cross-cutting item) accept a string for an exact match, a []string for set
// membership, or — in regex mode — a string holding a search pattern.
// Reserved keys narrow ranges: min_date/max_date take time.Time,
// min_gain/max_gain/min_loss/max_loss take integers. Omitted keys are no-ops.
type Filter map[string]any

// attribute keys understood by Compile, besides the reserved range keys.
var attrKeys = map[string]bool{
	"interaction": true,
	"winner":      true,
	"gain_item":   true,
	"loss_item":   true,
	"item":        true,
}

type textMatch func(string) bool

// Predicate is a compiled Filter. The zero bounds are unrestrictive, so a
// nil *Predicate matches everything.
type Predicate struct {
	attrs    map[string]textMatch
	minDate  time.Time
	maxDate  time.Time
	minGain  int64
	maxGain  int64
	minLoss  int64
	maxLoss  int64
	hasMinD  bool
	hasMaxD  bool
}

// Compile validates the filter and produces a Predicate. When regexMode is
// set, string attribute values are compiled as unanchored search patterns.
func (f Filter) Compile(regexMode bool) (*Predicate, error) {
	p := &Predicate{
		attrs:   make(map[string]textMatch),
		minGain: math.MinInt64,
		maxGain: math.MaxInt64,
		minLoss: math.MinInt64,
		maxLoss: math.MaxInt64,
	}

	for key, value := range f {
		switch key {
		case "min_date", "max_date":
			t, ok := value.(time.Time)
			if !ok {
				return nil, fmt.Errorf("filter %s: want time.Time, got %T", key, value)
			}
			if key == "min_date" {
				p.minDate, p.hasMinD = t, true
			} else {
				p.maxDate, p.hasMaxD = t, true
			}
		case "min_gain", "max_gain", "min_loss", "max_loss":
			n, err := toInt64(value)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", key, err)
			}
			switch key {
			case "min_gain":
				p.minGain = n
			case "max_gain":
				p.maxGain = n
			case "min_loss":
				p.minLoss = n
			case "max_loss":
				p.maxLoss = n
			}
		default:
			if !attrKeys[key] {
				return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
			}
			m, err := compileText(value, regexMode)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", key, err)
			}
			p.attrs[key] = m
		}
	}
	return p, nil
}

func compileText(value any, regexMode bool) (textMatch, error) {
	switch v := value.(type) {
	case string:
		if regexMode {
			re, err := regexp.Compile(v)
			if err != nil {
				return nil, err
			}
			return re.MatchString, nil
		}
		return func(s string) bool { return s == v }, nil
	case []string:
		set := make(map[string]bool, len(v))
		for _, s := range v {
			set[s] = true
		}
		return func(s string) bool { return set[s] }, nil
	default:
		return nil, fmt.Errorf("want string or []string, got %T", value)
	}
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("want integer, got %T", value)
	}
}

// Matches reports whether ev passes every supplied attribute predicate and
// falls inside all range bounds. Filters are conjunctive.
func (p *Predicate) Matches(ev model.Event) bool {
	if p == nil {
		return true
	}
	if p.hasMinD && ev.Timestamp.Before(p.minDate) {
		return false
	}
	if p.hasMaxD && ev.Timestamp.After(p.maxDate) {
		return false
	}
	if ev.GainValue < p.minGain || ev.GainValue > p.maxGain {
		return false
	}
	if ev.LossValue < p.minLoss || ev.LossValue > p.maxLoss {
		return false
	}
	for key, match := range p.attrs {
		switch key {
		case "interaction":
			if !match(ev.Interaction) {
				return false
			}
		case "winner":
			if !match(ev.Winner) {
				return false
			}
		case "gain_item":
			if !match(ev.GainItem) {
				return false
			}
		case "loss_item":
			if !match(ev.LossItem) {
				return false
			}
		case "item":
			if !match(ev.GainItem) && !match(ev.LossItem) {
				return false
			}
		}
	}
	return true
}

// ParseSpec builds a Filter from a textual specification of the form
// "key=value;key=value". Attribute values containing "|" become membership
// sets unless regexMode is set; range keys parse as integers; date keys parse
// as whitespace-separated "year month day [hour minute second]" in loc.
func ParseSpec(spec string, regexMode bool, loc *time.Location) (Filter, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := Filter{}
	for _, pair := range strings.Split(spec, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("filter spec %q: missing '='", pair)
		}
		key = strings.TrimSpace(key)

		switch key {
		case "min_date", "max_date":
			t, err := parseSpecDate(value, loc)
			if err != nil {
				return nil, fmt.Errorf("filter spec %s: %w", key, err)
			}
			f[key] = t
		case "min_gain", "max_gain", "min_loss", "max_loss":
			n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("filter spec %s: %w", key, err)
			}
			f[key] = n
		default:
			if !regexMode && strings.Contains(value, "|") {
				var set []string
				for _, item := range strings.Split(value, "|") {
					if item != "" {
						set = append(set, item)
					}
				}
				f[key] = set
			} else {
				f[key] = value
			}
		}
	}
	return f, nil
}

func parseSpecDate(s string, loc *time.Location) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 || len(fields) > 6 {
		return time.Time{}, fmt.Errorf("want 3 to 6 numeric fields, got %q", s)
	}
	nums := make([]int, 6)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return time.Time{}, err
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], nums[3], nums[4], nums[5], 0, loc), nil
}
