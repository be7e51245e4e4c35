package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timegrid/internal/schedule"
)

const columnSeparator = "│"

// cell is one rendered body line of one day column.
type cell struct {
	text  string
	style lipgloss.Style
	set   bool
}

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(), m.renderDayHeaders())
	lines = append(lines, m.renderBody()...)
	lines = append(lines, m.renderStatus(), m.renderHelp())
	return strings.Join(lines, "\n")
}

func (m Model) renderTitle() string {
	l := m.eng.layout
	title := m.styles.TitleStyle.Render("timegrid")

	var rng string
	if l.DayCount() == 1 {
		rng = l.Start().Format("Mon Jan 2, 2006")
	} else {
		rng = fmt.Sprintf("%s - %s", l.Start().Format("Jan 2"), l.End().Format("Jan 2, 2006"))
	}
	if m.loading {
		rng += "  loading..."
	}
	line := title + m.styles.RangeStyle.Render(rng)
	return m.pad(line, m.styles.RangeStyle)
}

func (m Model) renderDayHeaders() string {
	l := m.eng.layout
	w := l.ColWidth() - 1
	today := schedule.TruncateToDay(m.now())

	var b strings.Builder
	b.WriteString(m.styles.TimeColumnStyle.Render(strings.Repeat(" ", gutterWidth)))
	for day := range l.DayCount() {
		date := l.Start().AddDate(0, 0, day)
		label := date.Format("Mon 2")
		style := m.styles.DayHeaderStyle
		if date.Equal(today) {
			style = m.styles.DayHeaderTodayStyle
		}
		b.WriteString(style.Width(w).MaxWidth(w).Render(ansi.Truncate(label, w, "")))
		b.WriteString(m.styles.ColumnSeparator.Render(columnSeparator))
	}
	return m.pad(b.String(), m.styles.EmptyCellStyle)
}

func (m Model) renderBody() []string {
	l := m.eng.layout
	w := l.ColWidth() - 1
	now := m.now()
	today := schedule.TruncateToDay(now)

	columns := make([][]cell, l.DayCount())
	for day := range columns {
		columns[day] = m.dayCells(day, now)
	}

	lines := make([]string, l.BodyHeight())
	for line := range lines {
		var b strings.Builder
		b.WriteString(m.styles.TimeColumnStyle.Render(m.gutterLabel(line)))

		for day, cells := range columns {
			c := cells[line]
			date := l.Start().AddDate(0, 0, day)
			if !c.set {
				c = m.emptyCell(day, line, now)
			}
			b.WriteString(c.style.Width(w).MaxWidth(w).Render(ansi.Truncate(c.text, w, "…")))

			sep := m.styles.ColumnSeparator
			if date.Equal(today) {
				sep = m.styles.TodaySeparator
			}
			b.WriteString(sep.Render(columnSeparator))
		}
		lines[line] = m.pad(b.String(), m.styles.EmptyCellStyle)
	}
	return lines
}

// gutterLabel returns the clock label for the first line of each hour.
func (m Model) gutterLabel(line int) string {
	l := m.eng.layout
	t := l.LineTime(0, line)
	if line > 0 && l.LineTime(0, line-1).Hour() == t.Hour() {
		return strings.Repeat(" ", gutterWidth)
	}
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return fmt.Sprintf("%-*s", gutterWidth, schedule.FormatClock(hour))
}

// emptyCell renders a free line. The current time is marked in today's
// column and hour boundaries are shaded.
func (m Model) emptyCell(day, line int, now time.Time) cell {
	l := m.eng.layout
	start := l.LineTime(day, line)
	if !now.Before(start) && now.Before(l.LineTime(day, line+1)) {
		return cell{text: strings.Repeat("─", l.ColWidth()-1), style: m.styles.NowMarkerStyle}
	}
	if line > 0 && start.Hour() != l.LineTime(day, line-1).Hour() {
		return cell{style: m.styles.HourCellStyle}
	}
	return cell{style: m.styles.EmptyCellStyle}
}

// dayCells lays out the schedules and the guide of one column.
func (m Model) dayCells(day int, now time.Time) []cell {
	e := m.eng
	l := e.layout
	cells := make([]cell, l.BodyHeight())
	date := l.Start().AddDate(0, 0, day)

	resizing := ""
	if e.guide.Kind() == GuideResize {
		resizing = e.guide.ScheduleID()
	}

	alt := false
	for _, s := range e.store.Between(date, date.AddDate(0, 0, 1)) {
		if s.ID == resizing {
			continue
		}
		first, last, _, _, ok := l.Segment(day, s.Range())
		if !ok {
			continue
		}

		style := m.styles.BlockStyle
		switch {
		case s.ID == e.selected:
			style = m.styles.BlockSelected
		case s.Resizable:
			style = m.styles.BlockLockedStyle
		case s.End.Before(now):
			style = m.styles.BlockPastStyle
		case alt:
			style = m.styles.BlockAltStyle
		}
		alt = !alt

		for line := first; line <= last; line++ {
			cells[line] = cell{style: style, set: true}
		}
		cells[first].text = " " + s.Title
		if last > first {
			cells[first+1].text = " " + clockRange(s.Range())
		}
	}

	if e.guide.Visible() && e.guide.Day() == day {
		r := e.guide.Range()
		if first, last, _, _, ok := l.Segment(day, r); ok {
			for line := first; line <= last; line++ {
				cells[line] = cell{style: m.styles.GuideStyle, set: true}
			}
			cells[first].text = " " + clockRange(r)
		}
	}
	return cells
}

func (m Model) renderStatus() string {
	style := m.styles.StatusStyle
	if m.statusErr {
		style = m.styles.StatusErrorStyle
	}
	msg := m.statusMsg
	if msg == "" {
		if s, ok := m.eng.store.Get(m.eng.selected); ok {
			msg = fmt.Sprintf("%s  %s %s", s.Title, schedule.FormatDate(s.Start), clockRange(s.Range()))
		}
	}
	return m.pad(style.Render(ansi.Truncate(" "+msg, m.width, "…")), style)
}

func (m Model) renderHelp() string {
	var h string
	if m.help.ShowAll {
		var all []key.Binding
		for _, group := range m.keys.FullHelp() {
			all = append(all, group...)
		}
		h = m.help.ShortHelpView(all)
	} else {
		h = m.help.View(m.keys)
	}
	return m.pad(" "+ansi.Truncate(h, m.width-1, "…"), m.styles.HelpStyle)
}

// pad fills line up to the terminal width with style's background.
func (m Model) pad(line string, style lipgloss.Style) string {
	if w := lipgloss.Width(line); w < m.width {
		line += style.Render(strings.Repeat(" ", m.width-w))
	}
	return line
}

func clockRange(r schedule.Range) string {
	return schedule.FormatClock(r.Start) + "-" + schedule.FormatClock(r.End)
}
