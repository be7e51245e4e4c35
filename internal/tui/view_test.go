package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func asciiProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

func TestViewBeforeResize(t *testing.T) {
	m := *New(nil, nil)
	t.Cleanup(m.Close)

	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestViewLayout(t *testing.T) {
	asciiProfile(t)
	m, _, _ := newTestModel(t, testSchedule("a", at(9, 0), at(10, 0)))

	lines := strings.Split(m.View(), "\n")
	if len(lines) != testHeight {
		t.Fatalf("View has %d lines, want %d", len(lines), testHeight)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != testWidth {
			t.Errorf("line %d width = %d, want %d: %q", i, w, testWidth, line)
		}
	}

	if !strings.Contains(lines[0], "timegrid") || !strings.Contains(lines[0], "Mar 10 - Mar 16, 2025") {
		t.Errorf("title = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Mon 10") || !strings.Contains(lines[1], "Sun 16") {
		t.Errorf("headers = %q", lines[1])
	}

	body := lines[headerLines:]
	if !strings.HasPrefix(body[18], "09:00") {
		t.Errorf("line 18 gutter = %q, want 09:00", body[18])
	}
	if !strings.HasPrefix(body[19], "      ") {
		t.Errorf("line 19 gutter should be blank: %q", body[19])
	}
	if !strings.Contains(body[18], "Block a") {
		t.Errorf("line 18 should show the title: %q", body[18])
	}
	if !strings.Contains(body[19], "09:00-10:00") {
		t.Errorf("line 19 should show the time range: %q", body[19])
	}
}

func TestViewShowsDragGuide(t *testing.T) {
	asciiProfile(t)
	m, _, _ := newTestModel(t)

	m = update(t, m, mouse(tea.MouseActionPress, 8, 18))
	m = update(t, m, mouse(tea.MouseActionMotion, 8, 20))

	body := strings.Split(m.View(), "\n")[headerLines:]
	if !strings.Contains(body[18], "09:00-10:30") {
		t.Errorf("guide label missing: %q", body[18])
	}
}

func TestViewHidesBlockWhileResizing(t *testing.T) {
	asciiProfile(t)
	m, _, _ := newTestModel(t, testSchedule("a", at(9, 0), at(10, 0)))

	m = update(t, m, mouse(tea.MouseActionPress, 8, 19))
	m = update(t, m, mouse(tea.MouseActionMotion, 8, 21))

	view := m.View()
	if strings.Contains(view, "Block a") {
		t.Error("the resized block should be replaced by its preview")
	}
	body := strings.Split(view, "\n")[headerLines:]
	if !strings.Contains(body[18], "09:00-11:00") {
		t.Errorf("resize preview missing: %q", body[18])
	}
}

func TestStatusLineShowsSelection(t *testing.T) {
	asciiProfile(t)
	m, _, _ := newTestModel(t, testSchedule("a", at(9, 0), at(10, 0)))
	m.eng.selected = "a"

	lines := strings.Split(m.View(), "\n")
	status := lines[len(lines)-2]
	if !strings.Contains(status, "Block a") || !strings.Contains(status, "2025-03-10 09:00-10:00") {
		t.Errorf("status = %q", status)
	}
}
