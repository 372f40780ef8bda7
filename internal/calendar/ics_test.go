package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "20250314T092653Z", FormatTime(ts))

	// Non-UTC inputs are normalized.
	loc := time.FixedZone("UTC+2", 2*3600)
	local := time.Date(2025, 3, 14, 9, 26, 53, 0, loc)
	assert.Equal(t, "20250314T072653Z", FormatTime(local))
}

func TestGenerate(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)

	ics := Generate([]Event{
		{
			UID:         "fluxcontent-1@fluxcontent.app",
			Summary:     "Publish Summer Launch on buffer",
			Description: "Content: Summer Launch\nPlatform: buffer",
			Start:       start,
		},
		{
			UID:     "fluxcontent-2@fluxcontent.app",
			Summary: "Publish Teaser on webhook",
			Start:   start.Add(2 * time.Hour),
			URL:     "https://app.example/queue/2",
		},
	}, now)

	lines := strings.Split(ics, "\r\n")
	require.Equal(t, "BEGIN:VCALENDAR", lines[0])
	require.Equal(t, "END:VCALENDAR", lines[len(lines)-1])
	assert.Contains(t, lines, "PRODID:-//FluxContent//Content Calendar//EN")

	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(ics, "END:VEVENT"))

	// Fixed 30-minute window.
	assert.Contains(t, lines, "DTSTART:20250601T120000Z")
	assert.Contains(t, lines, "DTEND:20250601T123000Z")

	// Newlines in descriptions are escaped, not emitted raw.
	assert.Contains(t, ics, `DESCRIPTION:Content: Summer Launch\nPlatform: buffer`)

	assert.Contains(t, lines, "URL:https://app.example/queue/2")
	assert.Contains(t, lines, "CREATED:20250530T080000Z")
}

func TestGenerateEmpty(t *testing.T) {
	ics := Generate(nil, time.Now())
	assert.NotContains(t, ics, "VEVENT")
	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(ics, "\r\nEND:VCALENDAR"))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\,b\;c\\d\ne`, escape("a,b;c\\d\ne"))
}
