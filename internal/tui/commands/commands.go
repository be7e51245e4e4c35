// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/schedule"
)

// SchedulesLoadedMsg is sent when the visible date range is loaded.
type SchedulesLoadedMsg struct {
	Start     time.Time
	Schedules []*schedule.Schedule
}

// Action names a persisted mutation.
type Action string

const (
	ActionCreate Action = "created"
	ActionUpdate Action = "updated"
	ActionDelete Action = "deleted"
)

// ScheduleSavedMsg is sent when a mutation reached the repository.
type ScheduleSavedMsg struct {
	ID     string
	Action Action
}

// ErrMsg is sent when an error occurs. Reload asks the model to resync the
// in-memory collection with the repository.
type ErrMsg struct {
	Err    error
	Reload bool
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadRange loads the schedules for days starting at start.
func LoadRange(repo schedule.Repository, start time.Time, days int) tea.Cmd {
	return func() tea.Msg {
		end := start.AddDate(0, 0, days-1)
		schedules, err := repo.ListSchedulesByDateRange(context.Background(), start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading schedules: %w", err)}
		}
		return SchedulesLoadedMsg{Start: start, Schedules: schedules}
	}
}

// CreateSchedule persists a schedule already added to the collection.
func CreateSchedule(repo schedule.Repository, s *schedule.Schedule) tea.Cmd {
	s = s.Clone()
	return func() tea.Msg {
		if err := repo.CreateSchedule(context.Background(), s); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating schedule: %w", err), Reload: true}
		}
		return ScheduleSavedMsg{ID: s.ID, Action: ActionCreate}
	}
}

// UpdateSchedule persists changes already applied to the collection.
func UpdateSchedule(repo schedule.Repository, id string, changes schedule.Changes) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpdateSchedule(context.Background(), id, changes); err != nil {
			return ErrMsg{Err: fmt.Errorf("updating schedule: %w", err), Reload: true}
		}
		return ScheduleSavedMsg{ID: id, Action: ActionUpdate}
	}
}

// DeleteSchedule removes a schedule from the repository.
func DeleteSchedule(repo schedule.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteSchedule(context.Background(), id); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting schedule: %w", err), Reload: true}
		}
		return ScheduleSavedMsg{ID: id, Action: ActionDelete}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied to clipboard"}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
