package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/interaction"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/schedule"
	"github.com/javiermolinar/timegrid/internal/timer"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
)

// engine owns the mutable interaction state shared by every copy of the
// value-typed Model: the pointer source, both controllers, the guide and
// the schedule collection. Bus callbacks append commands to pending; the
// model drains them after each Update.
type engine struct {
	repo   schedule.Repository
	log    *zap.Logger
	layout *Layout
	store  *schedule.Collection

	source   *pointer.Source
	creation *interaction.Creation
	resize   *interaction.Resize
	guide    *Guide

	loop    *timer.Loop // nil when a custom scheduler is injected
	pending []tea.Cmd

	selected string
}

type engineConfig struct {
	repo   schedule.Repository
	log    *zap.Logger
	layout *Layout
	cfg    interaction.Config
	sched  timer.Scheduler
	now    func() time.Time
}

func newEngine(ec engineConfig) *engine {
	e := &engine{
		repo:   ec.repo,
		log:    ec.log,
		layout: ec.layout,
		store:  schedule.NewCollection(),
		source: pointer.NewSource(),
		guide:  NewGuide(),
	}

	sched := ec.sched
	if sched == nil {
		e.loop = timer.NewLoop()
		sched = e.loop
	}
	e.source.DoubleClickWindow = ec.cfg.ClickDelay
	if ec.now != nil {
		e.source.Now = ec.now
	}

	e.creation = interaction.NewCreation(e.layout,
		interaction.WithCreationLogger(e.log.Named("creation")),
		interaction.WithCreationScheduler(sched),
		interaction.WithCreationConfig(ec.cfg),
		interaction.WithHoverCheck(e.checkPosition),
		interaction.WithClickCheck(e.checkPosition),
	)
	e.resize = interaction.NewResize(e.layout, e.store,
		interaction.WithResizeLogger(e.log.Named("resize")),
		interaction.WithResizeScheduler(sched),
		interaction.WithResizeCheck(e.checkResize),
		interaction.WithRestoreDelay(ec.cfg.RestoreDelay),
		interaction.WithHandlerSource(e.source),
	)

	e.source.Register(e.creation)
	e.source.Register(e.resize)
	e.source.Register(&selection{e: e})

	e.guide.Attach(e.creation.Bus(), e.resize.Bus())
	interaction.On(e.creation.Bus(), e.commitCreate)
	interaction.On(e.resize.Bus(), e.commitUpdate)
	e.logEvents()

	return e
}

// commitCreate turns a creation gesture into a schedule. Overlapping ranges
// are refused here because double clicks bypass the click predicate.
func (e *engine) commitCreate(ev interaction.BeforeCreateSchedule) {
	s, err := schedule.New(schedule.DefaultTitle, ev.Start, ev.End)
	if err != nil {
		e.setStatus(fmt.Sprintf("Cannot create schedule: %v", err))
		return
	}
	if e.store.Overlapping(s.Range(), "") {
		e.setStatus("Cannot create schedule: " + schedule.ErrOverlap.Error())
		return
	}
	if err := e.store.Add(s); err != nil {
		e.setStatus(fmt.Sprintf("Cannot create schedule: %v", err))
		return
	}

	e.selected = s.ID
	e.log.Debug("schedule created",
		zap.String("id", s.ID),
		zap.String("trigger", string(ev.Trigger)),
		zap.Time("start", s.Start),
		zap.Time("end", s.End))
	e.pending = append(e.pending, commands.CreateSchedule(e.repo, s))
}

// commitUpdate applies a resize to the collection and persists it.
func (e *engine) commitUpdate(ev interaction.BeforeUpdateSchedule) {
	if ev.Schedule == nil {
		return
	}
	updated, err := e.store.Update(ev.Schedule.ID, ev.Changes)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			e.log.Debug("resized schedule vanished", zap.String("id", ev.Schedule.ID))
		}
		e.setStatus(fmt.Sprintf("Cannot resize schedule: %v", err))
		return
	}

	e.log.Debug("schedule resized",
		zap.String("id", updated.ID),
		zap.String("type", ev.Type),
		zap.Time("start", updated.Start),
		zap.Time("end", updated.End))
	e.pending = append(e.pending, commands.UpdateSchedule(e.repo, updated.ID, ev.Changes))
}

// checkPosition accepts hover and click previews on free cells, shortening
// the preview when the next schedule starts within one cell.
func (e *engine) checkPosition(pos gridtime.Position) (interaction.Condition, bool) {
	cell := e.layout.Options().CellDuration()
	start := pos.NearestGridTimeY
	end := start.Add(cell)

	if e.store.Overlapping(schedule.Range{Start: start, End: start.Add(1)}, "") {
		return interaction.Condition{}, false
	}
	if next, ok := e.store.NextStartAfter(start, ""); ok && next.Before(end) {
		end = next
	}
	return interaction.Condition{EndTime: end, Delta: end.Sub(start)}, true
}

// checkResize stops a resized edge at the neighbouring schedule.
func (e *engine) checkResize(c interaction.ResizeCheck) interaction.ResizeVerdict {
	s := c.Schedule
	switch c.Direction {
	case interaction.DirectionBottom:
		if next, ok := e.store.NextStartAfter(s.Start, s.ID); ok && c.Proposed.End.After(next) {
			return interaction.OverrideMinutes(int(next.Sub(s.Start).Minutes()))
		}
	case interaction.DirectionTop:
		if prev, ok := e.store.PrevEndBefore(s.Start, s.ID); ok && c.Proposed.Start.Before(prev) {
			return interaction.OverrideMinutes(int(prev.Sub(s.Start).Minutes()))
		}
	}
	return interaction.Allow
}

// deleteSelected removes the selected schedule.
func (e *engine) deleteSelected() tea.Cmd {
	if e.selected == "" {
		return nil
	}
	id := e.selected
	e.selected = ""
	if !e.store.Remove(id) {
		return nil
	}
	e.log.Debug("schedule deleted", zap.String("id", id))
	return commands.DeleteSchedule(e.repo, id)
}

func (e *engine) setStatus(msg string) {
	e.pending = append(e.pending, func() tea.Msg { return commands.StatusMsgCmd{Msg: msg} })
}

// drain returns the commands queued by bus callbacks and timers.
func (e *engine) drain() tea.Cmd {
	cmds := e.pending
	e.pending = nil
	if e.loop != nil {
		cmds = append(cmds, e.loop.Drain())
	}
	return tea.Batch(cmds...)
}

// destroy tears the controllers down.
func (e *engine) destroy() {
	e.guide.Detach()
	e.creation.Destroy()
	e.resize.Destroy()
}

// selection tracks the schedule the user last clicked.
type selection struct {
	e *engine
}

func (s *selection) OnClick(g pointer.Gesture) {
	switch g.Target.Kind {
	case pointer.KindScheduleBlock, pointer.KindTopHandle, pointer.KindBottomHandle:
		s.e.selected = g.Target.ScheduleID
	case pointer.KindDayColumn:
		s.e.selected = ""
	}
}

// cancelGestures drops hover and click previews before the columns change.
// It reports false while a press is in progress.
func (e *engine) cancelGestures() bool {
	if e.source.Pressed() {
		return false
	}
	e.source.Leave()
	e.guide.Hide()
	return true
}
