package model

import (
	"fmt"
	"time"
)

// Interaction values form the closed vocabulary of recognized loot verbs.
// The empty string covers the bare "Item(s) acquired:" marker and broadcast
// announcements, both of which carry no verb of their own.
const (
	InteractionReceived  = "received"
	InteractionLost      = "lost"
	InteractionDiscarded = "discarded"
	InteractionSpent     = "spent"
	InteractionBet       = "placed a bet of"
	InteractionWon       = "won"
	InteractionNoWin     = "didn't win any"
	InteractionSold      = "sold"
	InteractionRefined   = "refined"
)

// Event is one recognized game occurrence, normalized into gain/loss/winner
// fields. Events are built once by the parser and never mutated afterward.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Interaction string    `json:"interaction,omitempty"`
	Winner      string    `json:"winner,omitempty"`
	GainItem    string    `json:"gain_item,omitempty"`
	GainValue   int64     `json:"gain_value,omitempty"`
	LossItem    string    `json:"loss_item,omitempty"`
	LossValue   int64     `json:"loss_value,omitempty"`
}

// HasGain reports whether the event granted anything.
func (e Event) HasGain() bool { return e.GainItem != "" }

// HasLoss reports whether the event consumed anything.
func (e Event) HasLoss() bool { return e.LossItem != "" }

// IsBroadcast reports whether the event is a server-wide announcement naming
// a third party who obtained a rare item.
func (e Event) IsBroadcast() bool { return e.Winner != "" }

// String renders a one-line human-readable summary. Broadcasts report the
// winner; everything else reports the gain and loss sides. This is a display
// convenience, not an interchange format.
func (e Event) String() string {
	if e.IsBroadcast() {
		return fmt.Sprintf("%s won %s.", e.Winner, e.GainItem)
	}

	gain := "No gains."
	if e.HasGain() {
		gain = fmt.Sprintf("Gained %s x%d.", e.GainItem, e.GainValue)
	}
	loss := "No losses."
	if e.HasLoss() {
		loss = fmt.Sprintf("Lost %s x%d.", e.LossItem, -e.LossValue)
	}

	return fmt.Sprintf("%s: %s %s", e.Timestamp.Format("2006-01-02 15:04:05"), gain, loss)
}
