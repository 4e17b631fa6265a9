package parse

import "regexp"

// Mode selects the vocabulary variant of the line matcher.
type Mode int

const (
	// ModePasted matches lines copied out of the in-game chat window,
	// optionally prefixed with a bracketed [M/D H:MM] timestamp.
	ModePasted Mode = iota
	// ModeGameLog matches lines from the client's chat log files, which carry
	// a 14-digit numeric record header and a [System] channel marker.
	ModeGameLog
)

// Fragments holds the textual pieces captured from one matched line. Which
// fields are non-empty encodes the shape that matched: a verb line sets Verb,
// the bare acquisition marker sets neither Verb nor Subject, and a broadcast
// announcement sets Subject.
type Fragments struct {
	Date     string // "3/19" from a [3/19 12:41] prefix
	Time     string // "12:41" from a [3/19 12:41] prefix
	Stamp    string // 14-digit yyyymmddhhmmss header (ModeGameLog only)
	Verb     string // interaction verb from the closed vocabulary
	Subject  string // broadcast winner name
	Quantity string // explicit leading quantity, e.g. "1,470 "
	Item     string // trailing item/description text
}

// The message body shared by both modes. All shapes are alternatives of one
// anchored pattern so they share prefix handling; see Fragments for how the
// matched alternative is encoded.
const body = `(?:\[(?:NumericReceived|ItemReceived|NumericLost|GameplayAnnounce|Default)\] )?` +
	`(?:You (lost|received|sold|placed a bet of|won|discarded|spent|refined|didn't win any)` +
	`|Items? acquired:` +
	`|(.+?) (?:has acquired an?|hat ein(?:en|e)?))` +
	` ([0-9,]+ )?(.*)$`

var (
	// Pasted chat: both halves of the timestamp prefix are optional, as is the
	// channel marker ([System], [Minigame], ...).
	pastedRe = regexp.MustCompile(`^(?:\[(\d+/\d+)? ?(\d+:\d+)?\] )?(?:\[[^\]]+\] )?` + body)

	// Chat log file: numeric record header, then the System channel marker.
	gamelogRe = regexp.MustCompile(`^(\d{14}) (?:\[System\] )?` + body)
)

// Matcher applies the composite loot pattern for one vocabulary variant.
type Matcher struct {
	mode Mode
	re   *regexp.Regexp
}

// NewMatcher returns a Matcher for the given mode.
func NewMatcher(mode Mode) *Matcher {
	re := pastedRe
	if mode == ModeGameLog {
		re = gamelogRe
	}
	return &Matcher{mode: mode, re: re}
}

// Match applies the pattern to one line. It returns the captured fragments
// and true, or the zero Fragments and false when the line is not a loot
// message. Unmatched lines are not an error; logs are mostly chatter.
func (m *Matcher) Match(line string) (Fragments, bool) {
	groups := m.re.FindStringSubmatch(line)
	if groups == nil {
		return Fragments{}, false
	}

	if m.mode == ModeGameLog {
		return Fragments{
			Stamp:    groups[1],
			Verb:     groups[2],
			Subject:  groups[3],
			Quantity: groups[4],
			Item:     groups[5],
		}, true
	}
	return Fragments{
		Date:     groups[1],
		Time:     groups[2],
		Verb:     groups[3],
		Subject:  groups[4],
		Quantity: groups[5],
		Item:     groups[6],
	}, true
}
