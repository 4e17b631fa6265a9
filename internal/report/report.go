// Package report renders query results as tab-separated tables, matching the
// export views of the original tool: winners, totals by day, cumulative
// totals, daily averages, and dabo pairs.
package report

import (
	"fmt"
	"io"
	"iter"
	"sort"
	"strconv"

	"github.com/TigerhawkT3/sto-loot-parser/internal/loot"
	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

const dayFormat = "2006-01-02"

// Events writes each event's one-line summary.
func Events(w io.Writer, events iter.Seq[model.Event]) error {
	for ev := range events {
		if _, err := fmt.Fprintln(w, ev); err != nil {
			return err
		}
	}
	return nil
}

// Winners writes timestamp, item, and winner for each broadcast event.
func Winners(w io.Writer, events iter.Seq[model.Event]) error {
	for ev := range events {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
			ev.Timestamp.Format("2006-01-02 15:04:05"), ev.GainItem, ev.Winner)
		if err != nil {
			return err
		}
	}
	return nil
}

// TotalsByDay writes one row per day: the date followed by that day's total
// for each item. Columns are the sorted union of every day's labels; days
// without a given item leave the cell empty.
func TotalsByDay(w io.Writer, days []loot.DayTotals) error {
	return dayTable(w, days)
}

// CumulativeTotals writes the running totals table, one row per day.
func CumulativeTotals(w io.Writer, days []loot.DayTotals) error {
	return dayTable(w, days)
}

func dayTable(w io.Writer, days []loot.DayTotals) error {
	headerSet := map[string]bool{}
	for _, day := range days {
		for _, label := range day.Totals.Labels() {
			headerSet[label] = true
		}
	}
	headers := make([]string, 0, len(headerSet))
	for label := range headerSet {
		headers = append(headers, label)
	}
	sort.Strings(headers)

	if err := writeRow(w, "Date", headers); err != nil {
		return err
	}
	for _, day := range days {
		cells := make([]string, 0, len(headers))
		for _, label := range headers {
			if !day.Totals.Has(label) {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, strconv.FormatInt(day.Totals.Get(label), 10))
		}
		if err := writeRow(w, day.Day.Format(dayFormat), cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, first string, rest []string) error {
	if _, err := io.WriteString(w, first); err != nil {
		return err
	}
	for _, cell := range rest {
		if _, err := io.WriteString(w, "\t"+cell); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// AverageTotals writes item and per-day average pairs in table order.
func AverageTotals(w io.Writer, averages *loot.Counter) error {
	for _, label := range averages.Labels() {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", label, averages.Get(label)); err != nil {
			return err
		}
	}
	return nil
}

// Dabo writes one wager/payout value pair per line.
func Dabo(w io.Writer, pairs []loot.DaboPair) error {
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(w, "%d\t%d\n", pair.Bet.LossValue, pair.Payout.GainValue); err != nil {
			return err
		}
	}
	return nil
}
