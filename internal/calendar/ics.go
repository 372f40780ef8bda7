// Package calendar renders the publish queue as an iCalendar document so the
// timeline can be subscribed to from any calendar client.
package calendar

import (
	"strings"
	"time"
)

const (
	prodID        = "-//FluxContent//Content Calendar//EN"
	eventDuration = 30 * time.Minute
)

type Event struct {
	UID         string
	Summary     string
	Description string
	URL         string
	Start       time.Time
}

// FormatTime renders a timestamp in the basic UTC form iCalendar expects.
func FormatTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// Generate produces a VCALENDAR document with one fixed-duration VEVENT per
// entry. Lines are CRLF-joined per RFC 5545.
func Generate(events []Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	stamp := FormatTime(now)
	for _, ev := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+ev.UID,
			"DTSTART:"+FormatTime(ev.Start),
			"DTEND:"+FormatTime(ev.Start.Add(eventDuration)),
			"SUMMARY:"+escape(ev.Summary),
			"DESCRIPTION:"+escape(ev.Description),
		)
		if ev.URL != "" {
			lines = append(lines, "URL:"+ev.URL)
		}
		lines = append(lines,
			"CREATED:"+stamp,
			"LAST-MODIFIED:"+stamp,
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

// escape handles the text characters RFC 5545 requires to be backslashed.
func escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
