// Package ics imports calendar events from iCalendar files.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/spreads/pkg/logger"
)

// VEvent is the subset of a VEVENT the importer needs.
type VEvent struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool

	RRule   string
	ExDates []time.Time
	// Recurrence is the RECURRENCE-ID of an instance override.
	Recurrence *time.Time
}

// Parse reads every VEVENT from r. Events without a UID are skipped.
func Parse(r io.Reader) ([]VEvent, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parse: %w", err)
	}
	events := make([]VEvent, 0)
	for _, comp := range cal.Events() {
		ev, err := parseVEvent(comp)
		if err != nil {
			logger.Warn("ics: skip vevent", "err", err)
			continue
		}
		events = append(events, ev)
	}
	logger.Debug("ics: parsed", "events", len(events))
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (VEvent, error) {
	var out VEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("%s: missing DTSTART", out.UID)
	}
	if vs, ok := dtStart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		out.AllDay = true
	}
	if !strings.Contains(dtStart.Value, "T") {
		out.AllDay = true
	}

	start, err := ve.GetStartAt()
	if err != nil {
		if start, err = parseICSTime(dtStart.Value); err != nil {
			return out, fmt.Errorf("%s: DTSTART: %w", out.UID, err)
		}
	}
	out.Start = start

	end, err := ve.GetEndAt()
	if err != nil {
		if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
			end, err = parseICSTime(p.Value)
		}
	}
	if err != nil || end.Before(start) {
		end = start
		if out.AllDay {
			end = start.AddDate(0, 0, 1)
		}
	}
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}
	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseICSTime(p.Value); err == nil {
			out.Recurrence = &t
		}
	}
	return out, nil
}

// parseICSTime parses the basic DATE and DATE-TIME forms.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}
