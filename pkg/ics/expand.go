package ics

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/logger"
	"tableflip.dev/spreads/pkg/period"
)

const maxOccurrencesPerEvent = 1000

// Expand turns parsed VEVENTs into journal events for the days [from, to].
// Recurring events produce one event per occurrence; instance overrides
// replace the occurrence they name. Each event keeps its UID as Source.
func Expand(events []VEvent, from, to time.Time, cal period.Calendar, now time.Time) ([]*entry.Event, error) {
	from = cal.StartOfDay(from)
	until := cal.End(period.Day, to)
	if until.Before(from) {
		return nil, fmt.Errorf("ics: window ends before it starts")
	}

	overrides := make(map[string][]time.Time)
	for _, ev := range events {
		if ev.Recurrence != nil {
			overrides[ev.UID] = append(overrides[ev.UID], *ev.Recurrence)
		}
	}

	out := make([]*entry.Event, 0)
	for _, ev := range events {
		if ev.RRule == "" || ev.Recurrence != nil {
			if !overlaps(ev.Start, ev.End, from, until) {
				continue
			}
			e, err := toEntry(ev, ev.Start, ev.End, cal, now)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
			continue
		}

		r, err := rrule.StrToRRule(ev.RRule)
		if err != nil {
			logger.Warn("ics: bad RRULE", "uid", ev.UID, "rrule", ev.RRule, "err", err)
			continue
		}
		r.DTStart(ev.Start)
		var set rrule.Set
		set.RRule(r)
		for _, ex := range ev.ExDates {
			set.ExDate(ex.In(ev.Start.Location()))
		}
		for _, rid := range overrides[ev.UID] {
			set.ExDate(rid.In(ev.Start.Location()))
		}

		dur := ev.End.Sub(ev.Start)
		// Include occurrences that started before the window but still run into it.
		times := set.Between(from.Add(-dur).In(ev.Start.Location()), until.In(ev.Start.Location()), true)
		if len(times) > maxOccurrencesPerEvent {
			logger.Warn("ics: occurrences truncated", "uid", ev.UID, "cap", maxOccurrencesPerEvent)
			times = times[:maxOccurrencesPerEvent]
		}
		for _, start := range times {
			end := start.Add(dur)
			if !overlaps(start, end, from, until) {
				continue
			}
			e, err := toEntry(ev, start, end, cal, now)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// toEntry maps [start, end) onto the days it touches.
func toEntry(ev VEvent, start, end time.Time, cal period.Calendar, now time.Time) (*entry.Event, error) {
	last := start
	if end.After(start) {
		last = end.Add(-time.Nanosecond)
	}
	if ev.AllDay {
		// All-day dates are floating; keep the calendar date as written.
		start = cal.Date(start.Year(), start.Month(), start.Day())
		last = cal.Date(last.Year(), last.Month(), last.Day())
	}
	title := ev.Summary
	if title == "" {
		title = ev.UID
	}
	e, err := entry.NewEvent(title, start, last, cal, now)
	if err != nil {
		return nil, fmt.Errorf("ics: %s: %w", ev.UID, err)
	}
	e.Source = ev.UID
	return e, nil
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aEnd.After(aStart) {
		aEnd = aStart.Add(time.Nanosecond)
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
