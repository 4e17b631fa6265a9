package stoloot

import "time"

// Mode selects the message vocabulary variant.
type Mode int

const (
	// Pasted parses lines copied from the in-game chat window.
	Pasted Mode = iota
	// GameLog parses lines from the client's chat log files.
	GameLog
)

type options struct {
	year     int
	location *time.Location
	regex    bool
	strict   bool
}

// Option configures a Parser.
type Option func(*options)

// WithYear sets the reference year used to complete pasted chat timestamps,
// which carry no year of their own. Default: the current year.
func WithYear(year int) Option {
	return func(o *options) { o.year = year }
}

// WithLocation sets the timezone attached to every constructed timestamp.
// Default: UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// WithRegex makes string filter values compile as search patterns instead of
// exact matches.
func WithRegex() Option {
	return func(o *options) { o.regex = true }
}

// WithStrict makes ParseLines fail on a malformed matched line instead of
// skipping it.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}
