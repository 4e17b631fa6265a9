package loot

import "github.com/TigerhawkT3/sto-loot-parser/internal/model"

// DaboPair reconstructs one wager→payout sequence from the betting minigame.
type DaboPair struct {
	Bet    model.Event // the gainless wager
	Payout model.Event // the outcome, possibly a zero-value "didn't win any"
}

// daboInteractions are the event categories the minigame produces.
var daboInteractions = map[string]bool{
	model.InteractionBet:   true,
	model.InteractionWon:   true,
	model.InteractionNoWin: true,
}

// Dabo restricts the matching events to bet/won/didn't-win-any interactions,
// partitions them into wagers (no gain) and payouts (some gain, possibly
// zero-valued), and pairs them positionally: wager i with payout i. Bets and
// outcomes are assumed to interleave 1:1 in encounter order; the unmatched
// tail of the longer side is dropped.
func (c *Collection) Dabo(p *Predicate) []DaboPair {
	var bets, payouts []model.Event
	for ev := range c.Loot(p) {
		if !daboInteractions[ev.Interaction] {
			continue
		}
		if ev.HasGain() {
			payouts = append(payouts, ev)
		} else {
			bets = append(bets, ev)
		}
	}

	n := min(len(bets), len(payouts))
	pairs := make([]DaboPair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, DaboPair{Bet: bets[i], Payout: payouts[i]})
	}
	return pairs
}
