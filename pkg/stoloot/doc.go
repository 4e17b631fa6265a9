// Package stoloot is the public API for parsing Star Trek Online loot
// messages and querying the resulting event collection.
//
// A Parser is created for one vocabulary mode (pasted chat or game log
// files) and one reference clock context, fed lines, and then queried:
//
//	p := stoloot.New(stoloot.Pasted, stoloot.WithYear(2016))
//	if _, err := p.ParseLines(lines); err != nil { ... }
//	totals, err := p.TotalsByDay(stoloot.Filter{"interaction": "won"})
//
// Filters are maps from attribute name (interaction, winner, gain_item,
// loss_item, item) to an exact value, a []string membership set, or — with
// WithRegex — a search pattern, plus the reserved range keys min_date,
// max_date, min_gain, max_gain, min_loss, and max_loss.
package stoloot
