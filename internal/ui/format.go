package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timegrid/internal/schedule"
)

// rowOverhead is the width of everything on a row except the title:
// "  ● HH:MM-HH:MM  xxxxxxxx  " plus a duration suffix.
const rowOverhead = 36

// FormatDuration formats d as hours and minutes, e.g. "1h30m".
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes <= 0 {
		return "0m"
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}

// shortID returns the first block of a uuid.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func clockRange(s *schedule.Schedule) string {
	return schedule.FormatClock(s.Start) + "-" + schedule.FormatClock(s.End)
}

// stateSymbol marks locked and finished schedules.
func stateSymbol(s *schedule.Schedule, now time.Time) string {
	switch {
	case s.Resizable:
		return "■"
	case s.End.Before(now):
		return "✓"
	default:
		return "●"
	}
}

// printScheduleRow prints one schedule with its title truncated to width.
func printScheduleRow(w io.Writer, s *schedule.Schedule, now time.Time, width int) {
	c := colorBlock
	switch {
	case s.Resizable:
		c = colorLocked
	case s.End.Before(now):
		c = colorPast
	}

	title := s.Title
	if limit := width - rowOverhead; limit > 3 {
		title = ansi.Truncate(title, limit, "...")
	}

	fmt.Fprintf(w, "  %s %s  %s  %s  %s\n",
		c.Sprint(stateSymbol(s, now)),
		clockRange(s),
		formatMuted(shortID(s.ID)),
		c.Sprint(title),
		formatMuted(FormatDuration(s.Duration())),
	)
}

// printSchedules prints schedules grouped by local date with a per-day total.
func printSchedules(w io.Writer, schedules []*schedule.Schedule, now time.Time, width int) {
	var (
		current string
		total   time.Duration
		dayTime time.Duration
	)
	flush := func() {
		if current != "" {
			fmt.Fprintf(w, "  %s\n", formatMuted("total "+FormatDuration(dayTime)))
		}
	}

	for _, s := range schedules {
		date := s.Start.Local().Format("Mon 2006-01-02")
		if date != current {
			flush()
			if current != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, formatHeader("=== "+date+" ==="))
			current = date
			dayTime = 0
		}
		printScheduleRow(w, s, now, width)
		dayTime += s.Duration()
		total += s.Duration()
	}
	flush()

	fmt.Fprintf(w, "\n%s\n", formatStats(fmt.Sprintf("%d schedules, %s", len(schedules), FormatDuration(total))))
}

// schedulesText formats schedules one per line for the clipboard.
func schedulesText(schedules []*schedule.Schedule) string {
	var b strings.Builder
	for _, s := range schedules {
		fmt.Fprintf(&b, "%s %s %s\n", schedule.FormatDate(s.Start), clockRange(s), s.Title)
	}
	return b.String()
}
