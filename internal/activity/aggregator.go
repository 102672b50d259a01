// Package activity derives daily/weekly statistics and the contribution
// heatmap from the daily-log domain. All aggregation is a full scan of the
// small in-memory log collection; there is no query engine.
package activity

import (
	"context"
	"sort"
	"time"

	"lifetracker/internal/store"
)

// dateFormat matches the domain-wide calendar-date string format.
const dateFormat = "2006-01-02"

type Aggregator struct {
	store *store.Store

	Now func() time.Time
}

func NewAggregator(st *store.Store) *Aggregator {
	return &Aggregator{store: st, Now: time.Now}
}

// DatedLog pairs a day log with its date for ordered results.
type DatedLog struct {
	Date string
	Log  *store.DayLog
}

// LogsForRange returns the day logs with start <= date <= end, ordered by
// date. Plain string comparison is valid because dates are zero-padded ISO.
func (a *Aggregator) LogsForRange(ctx context.Context, start, end string) ([]DatedLog, error) {
	logs, err := a.store.Logs(ctx)
	if err != nil {
		return nil, err
	}
	var out []DatedLog
	for date, l := range logs {
		if date >= start && date <= end {
			out = append(out, DatedLog{Date: date, Log: l})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// LogEnergy appends an energy entry to today's log. Entries are append-only
// and multiple per day are expected.
func (a *Aggregator) LogEnergy(ctx context.Context, hour int, timeSlot, energy string) error {
	logs, err := a.store.Logs(ctx)
	if err != nil {
		return err
	}
	today := a.Now().Format(dateFormat)
	entry := logs[today]
	if entry == nil {
		entry = &store.DayLog{}
		logs[today] = entry
	}
	entry.EnergyEntries = append(entry.EnergyEntries, &store.EnergyEntry{
		Hour:     hour,
		TimeSlot: timeSlot,
		Energy:   energy,
	})
	return a.store.SaveLogs(ctx, logs)
}

// LogReading records the host reader app's day totals into today's log. The
// numbers are whole-day aggregates, so a later call overwrites the earlier
// snapshot rather than adding to it.
func (a *Aggregator) LogReading(ctx context.Context, rl *store.ReadingLog) error {
	if rl == nil {
		return nil
	}
	logs, err := a.store.Logs(ctx)
	if err != nil {
		return err
	}
	today := a.Now().Format(dateFormat)
	entry := logs[today]
	if entry == nil {
		entry = &store.DayLog{}
		logs[today] = entry
	}
	entry.Reading = rl
	return a.store.SaveLogs(ctx, logs)
}
