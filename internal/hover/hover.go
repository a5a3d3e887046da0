// Package hover coordinates pointer enter/leave events with the tooltip and
// its drill-down chart.
package hover

import (
	"context"
	"errors"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/drilldown"
	"github.com/kpumuk/gapscope/internal/extent"
	"github.com/kpumuk/gapscope/internal/logger"
	"github.com/kpumuk/gapscope/internal/scene"
)

// DefaultFadeDelay is how long the tooltip lingers after the pointer leaves.
const DefaultFadeDelay = 250 * time.Millisecond

// Opacity of the tooltip while it is shown.
const Opacity = 0.9

// Source yields the full time series of one entity.
type Source interface {
	Series(entity string) []dataset.Row
}

// State is the hover state. The zero value is Idle.
type State struct {
	Active bool
	Entity string
}

// EnterMsg reports the pointer entering the marker of Entity.
type EnterMsg struct {
	Entity string
}

// LeaveMsg reports the pointer leaving a marker.
type LeaveMsg struct{}

// FadeOutMsg is delivered when a scheduled fade-out fires.
type FadeOutMsg struct {
	ID int
}

// fadeTimer is the handle of the pending fade-out. Only the message carrying
// the current id may hide the tooltip.
type fadeTimer struct {
	id      int
	pending bool
}

// Model is the hover controller.
type Model struct {
	source  Source
	surface scene.Surface
	opts    drilldown.Options
	delay   time.Duration
	log     logger.Logger

	state   State
	visible bool
	series  []dataset.Row
	timer   fadeTimer
	nextID  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates an idle hover controller drawing into an in-memory surface.
func New(opts ...Option) Model {
	m := Model{
		surface: scene.NewRecorder(),
		opts:    drilldown.DefaultOptions(),
		delay:   DefaultFadeDelay,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithSource sets the table the series are read from.
func WithSource(src Source) Option {
	return func(m *Model) {
		m.source = src
	}
}

// WithSurface sets the tooltip surface.
func WithSurface(s scene.Surface) Option {
	return func(m *Model) {
		m.surface = s
	}
}

// WithOptions sets the drill-down layout.
func WithOptions(o drilldown.Options) Option {
	return func(m *Model) {
		m.opts = o.Clamped()
	}
}

// WithDelay sets the fade-out delay.
func WithDelay(d time.Duration) Option {
	return func(m *Model) {
		m.delay = d
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// SetSource replaces the table the series are read from.
func (m *Model) SetSource(src Source) {
	m.source = src
}

// SetSurface replaces the tooltip surface and redraws the shown entity on
// it. A pending fade-out is left untouched.
func (m *Model) SetSurface(s scene.Surface) {
	m.surface = s
	if m.state.Active {
		m.show(m.state.Entity)
	}
}

// State returns the current hover state.
func (m Model) State() State {
	return m.state
}

// Visible reports whether the tooltip is faded in.
func (m Model) Visible() bool {
	return m.visible
}

// Opacity returns the tooltip opacity, 0 when hidden.
func (m Model) Opacity() float64 {
	if m.visible {
		return Opacity
	}
	return 0
}

// Pending reports whether a fade-out is scheduled.
func (m Model) Pending() bool {
	return m.timer.pending
}

// Series returns a copy of the series shown in the tooltip.
func (m Model) Series() []dataset.Row {
	return slices.Clone(m.series)
}

// Options returns the drill-down layout.
func (m Model) Options() drilldown.Options {
	return m.opts
}

// Update handles hover messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EnterMsg:
		m.cancelFade()
		m.show(msg.Entity)
		return m, nil

	case LeaveMsg:
		if !m.state.Active {
			return m, nil
		}
		return m, m.scheduleFade()

	case FadeOutMsg:
		if !m.timer.pending || msg.ID != m.timer.id {
			m.log.Debug(context.Background(), "stale fade-out ignored", logger.Int("id", msg.ID))
			return m, nil
		}
		m.timer.pending = false
		m.log.Debug(context.Background(), "tooltip hidden", logger.String("entity", m.state.Entity))
		m.state = State{}
		m.visible = false
	}
	return m, nil
}

func (m *Model) cancelFade() {
	if m.timer.pending {
		m.log.Debug(context.Background(), "fade-out cancelled", logger.Int("id", m.timer.id))
	}
	m.timer = fadeTimer{}
}

func (m *Model) scheduleFade() tea.Cmd {
	m.nextID++
	m.timer = fadeTimer{id: m.nextID, pending: true}
	id := m.nextID
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return FadeOutMsg{ID: id}
	})
}

func (m *Model) show(entity string) {
	var rows []dataset.Row
	if m.source != nil {
		rows = m.source.Series(entity)
	}

	pair, err := drilldown.Fit(rows, m.opts)
	if err != nil {
		if errors.Is(err, extent.ErrEmptyInput) {
			m.log.Debug(context.Background(), "drill-down suppressed", logger.String("entity", entity), logger.Error(err))
		} else {
			m.log.Warn(context.Background(), "drill-down failed", logger.String("entity", entity), logger.Error(err))
		}
		m.surface.Clear()
		m.state = State{}
		m.visible = false
		m.series = nil
		return
	}
	if pair.X.IsFlat() || pair.Y.IsFlat() {
		m.log.Debug(context.Background(), "degenerate drill-down domain", logger.String("entity", entity))
	}

	drilldown.Render(m.surface, rows, pair, m.opts)
	m.state = State{Active: true, Entity: entity}
	m.visible = true
	m.series = drilldown.Sorted(rows)
	m.log.Debug(context.Background(), "tooltip shown", logger.String("entity", entity), logger.Int("points", len(rows)))
}
