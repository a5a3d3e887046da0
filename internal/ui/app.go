// Package ui renders the Bubble Tea application UI.
package ui

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/gapscope/internal/config"
	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/drilldown"
	"github.com/kpumuk/gapscope/internal/format"
	"github.com/kpumuk/gapscope/internal/hover"
	"github.com/kpumuk/gapscope/internal/logger"
	"github.com/kpumuk/gapscope/internal/mathutil"
	"github.com/kpumuk/gapscope/internal/plot"
	"github.com/kpumuk/gapscope/internal/scale"
	"github.com/kpumuk/gapscope/internal/surface/termsurface"
	"github.com/kpumuk/gapscope/internal/ui/charts"
	"github.com/kpumuk/gapscope/internal/ui/components/errorpopup"
	"github.com/kpumuk/gapscope/internal/ui/components/help"
	"github.com/kpumuk/gapscope/internal/ui/components/statusbar"
	"github.com/kpumuk/gapscope/internal/ui/components/tooltip"
	"github.com/kpumuk/gapscope/internal/ui/theme"
)

// tooltipLift is how far above the pointer the tooltip opens, in logical
// pixels.
const tooltipLift = 28

// hitReach is how many cells around the pointer count as over a marker.
const hitReach = 1

// Loader fetches the table.
type Loader func(ctx context.Context) (*dataset.Table, error)

// dataLoadedMsg carries the table once the load finished.
type dataLoadedMsg struct {
	table *dataset.Table
}

// dataErrorMsg indicates the load failed.
type dataErrorMsg struct {
	err error
}

// App is the main application model. It owns the table, the current time
// slice, the primary scale pair and the hover controller.
type App struct {
	keys    KeyMap
	width   int
	height  int
	ready   bool
	styles  theme.Styles
	log     logger.Logger
	load    Loader
	columns dataset.Columns

	plotOpts  plot.Options
	drillOpts drilldown.Options
	fadeDelay time.Duration

	table   *dataset.Table
	years   []int
	year    int
	pair    scale.Pair
	loadErr error

	plotSurface *termsurface.Surface
	tipSurface  *termsurface.Surface
	hover       hover.Model
	pointerX    int
	pointerY    int

	spinner    spinner.Model
	errorPopup errorpopup.Model
	help       help.Model
	statusbar  statusbar.Model
}

// Option is used to set options in New.
type Option func(*App)

// WithLoader replaces the data loader.
func WithLoader(l Loader) Option {
	return func(a *App) {
		a.load = l
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// New creates a new App instance.
func New(cfg *config.Config, opts ...Option) App {
	styles := theme.NewStyles()
	a := App{
		keys:      DefaultKeyMap(),
		styles:    styles,
		log:       logger.Named("ui"),
		columns:   cfg.Columns,
		plotOpts:  cfg.PlotOptions(),
		drillOpts: cfg.DrilldownOptions(),
		fadeDelay: cfg.FadeDelay,
		year:      cfg.Year,
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		errorPopup: errorpopup.New(
			errorpopup.WithStyles(errorpopup.Styles{
				Title:   styles.ErrorTitle,
				Message: styles.ViewMuted,
				Border:  styles.ErrorBorder,
			}),
			errorpopup.WithTitle("Data Load Failed"),
			errorpopup.WithHint("Press r to retry, q to quit"),
		),
		help: help.New(
			help.WithStyles(help.Styles{
				Title:   styles.TooltipTitle,
				Border:  styles.TooltipBorder,
				Section: styles.ViewTitle,
				Key:     styles.StatusKey,
				Desc:    styles.ViewMuted,
			}),
		),
		statusbar: statusbar.New(
			statusbar.WithStyles(statusbar.Styles{
				Bar:  styles.StatusBar,
				Key:  styles.StatusKey,
				Item: styles.StatusItem,
				Year: styles.StatusYear,
			}),
		),
	}
	source, columns := cfg.Source, cfg.Columns
	a.spinner.Style = styles.ViewMuted
	a.load = func(ctx context.Context) (*dataset.Table, error) {
		return dataset.Load(ctx, source, columns)
	}
	for _, opt := range opts {
		opt(&a)
	}
	a.hover = hover.New(
		hover.WithOptions(a.drillOpts),
		hover.WithDelay(a.fadeDelay),
		hover.WithLogger(a.log.Named("hover")),
	)
	a.syncStatus()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

// loading reports whether a load is in flight.
func (a App) loading() bool {
	return a.table == nil && a.loadErr == nil
}

// loadCmd runs the loader off the event loop.
func (a App) loadCmd() tea.Cmd {
	load := a.load
	return func() tea.Msg {
		table, err := load(context.Background())
		if err != nil {
			return dataErrorMsg{err: err}
		}
		return dataLoadedMsg{table: table}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case dataLoadedMsg:
		a.setTable(msg.table)

	case dataErrorMsg:
		a.loadErr = msg.err
		a.log.Error(context.Background(), "data load failed", logger.Error(msg.err))

	case copiedMsg:
		if msg.err != nil {
			a.log.Warn(context.Background(), "clipboard write failed", logger.Error(msg.err))
			a.statusbar.SetStatus("copy failed")
		} else {
			a.statusbar.SetStatus("copied " + msg.entity)
		}

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.help.Toggle()

		case key.Matches(msg, a.keys.PrevYear):
			cmds = append(cmds, a.stepYear(-1))

		case key.Matches(msg, a.keys.NextYear):
			cmds = append(cmds, a.stepYear(1))

		case key.Matches(msg, a.keys.Yank):
			state := a.hover.State()
			cmds = append(cmds, copySeriesCmd(state.Entity, a.hover.Series(), a.columns))

		case key.Matches(msg, a.keys.Retry):
			a.loadErr = nil
			cmds = append(cmds, a.loadCmd(), a.spinner.Tick)
		}

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		a.pointerX, a.pointerY = mouse.X, mouse.Y
		cmds = append(cmds, a.pointerMoved())

	case spinner.TickMsg:
		if a.loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case hover.FadeOutMsg:
		a.hover, _ = a.hover.Update(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
	}

	a.syncStatus()
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a App) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion

	if !a.ready {
		v.SetContent("Initializing...")
		return v
	}

	v.SetContent(lipgloss.JoinVertical(
		lipgloss.Left,
		a.content(),
		a.statusbar.View(),
	))
	return v
}

func (a App) contentHeight() int {
	return max(a.height-a.statusbar.Height(), 1)
}

func (a App) content() string {
	view := a.baseContent()
	if panel := a.help.View(); panel != "" {
		x, y := a.help.Origin(lipgloss.Width(panel), lipgloss.Height(panel))
		view = charts.Overlay(view, panel, x, y)
	}
	return view
}

func (a App) baseContent() string {
	height := a.contentHeight()

	if a.loadErr != nil {
		popup := a.errorPopup
		popup.SetSize(a.width, height)
		popup.SetMessage(a.loadErr.Error())
		popup.SetBackground(charts.RenderCentered(a.width, height, ""))
		return popup.View()
	}
	if a.table == nil || a.plotSurface == nil {
		return charts.RenderCentered(a.width, height, a.spinner.View()+a.styles.ViewMuted.Render(" Loading data..."))
	}

	view := a.plotSurface.View()
	if a.hover.Visible() {
		box := a.tooltipBox()
		x, y := a.tooltipOrigin(box.Width(), box.Height())
		view = charts.Overlay(view, box.View(), x, y)
	}
	return view
}

func (a App) tooltipBox() tooltip.Model {
	cols, rows := a.tipSurface.Size()
	meta := ""
	if series := a.hover.Series(); len(series) > 0 {
		last := series[len(series)-1]
		meta = fmt.Sprintf("%d-%d · %s", series[0].TimeSlice, last.TimeSlice, format.ShortNumber(last.Size))
	}
	return tooltip.New(
		tooltip.WithStyles(tooltip.Styles{
			Title:  a.styles.TooltipTitle,
			Meta:   a.styles.TooltipMeta,
			Border: a.styles.TooltipBorder,
		}),
		tooltip.WithSize(cols+2, rows+2),
		tooltip.WithTitle(a.hover.State().Entity),
		tooltip.WithMeta(meta),
		tooltip.WithContent(a.tipSurface.View()),
	)
}

// tooltipOrigin places the tooltip at the pointer, lifted by tooltipLift and
// kept inside the content area.
func (a App) tooltipOrigin(width, height int) (int, int) {
	lift := mathutil.RoundInt(tooltipLift * float64(a.contentHeight()) / a.plotOpts.Height)
	x := mathutil.Clamp(a.pointerX, 0, max(a.width-width, 0))
	y := mathutil.Clamp(a.pointerY-lift, 0, max(a.contentHeight()-height, 0))
	return x, y
}

// pointerMoved turns pointer motion into hover enter/leave messages.
func (a *App) pointerMoved() tea.Cmd {
	if a.table == nil || a.plotSurface == nil {
		return nil
	}
	state := a.hover.State()
	entity, over := a.plotSurface.HitNear(a.pointerX, a.pointerY, hitReach)

	var msg tea.Msg
	switch {
	case over && (entity != state.Entity || !state.Active || a.hover.Pending()):
		msg = hover.EnterMsg{Entity: entity}
	case !over && state.Active && !a.hover.Pending():
		msg = hover.LeaveMsg{}
	default:
		return nil
	}
	var cmd tea.Cmd
	a.hover, cmd = a.hover.Update(msg)
	return cmd
}

func (a *App) setTable(t *dataset.Table) {
	a.table = t
	a.loadErr = nil
	a.years = t.TimeSlices()
	switch {
	case len(a.years) == 0:
		a.year = 0
	case a.year == 0:
		a.year = a.years[len(a.years)-1]
	case !t.HasTimeSlice(a.year):
		a.log.Warn(context.Background(), "time slice not in data, using latest", logger.Int("year", a.year))
		a.year = a.years[len(a.years)-1]
	}
	a.hover.SetSource(t)
	a.log.Info(context.Background(), "data loaded",
		logger.Int("rows", t.Len()),
		logger.Int("skipped", t.Skipped()),
		logger.Int("time_slices", len(a.years)),
	)
	a.redrawPlot()
}

// stepYear moves to the neighbouring time slice present in the table. The
// markers move, so the pointer is hit-tested again.
func (a *App) stepYear(delta int) tea.Cmd {
	if len(a.years) == 0 {
		return nil
	}
	i := 0
	for j, y := range a.years {
		if y == a.year {
			i = j
			break
		}
	}
	next := mathutil.Clamp(i+delta, 0, len(a.years)-1)
	if a.years[next] == a.year {
		return nil
	}
	a.year = a.years[next]
	a.redrawPlot()
	return a.pointerMoved()
}

func (a *App) resize() {
	a.statusbar.SetWidth(a.width)
	height := a.contentHeight()
	a.help.SetSize(a.width, height)
	a.plotSurface = termsurface.New(a.width, height, a.plotOpts.Width, a.plotOpts.Height,
		termsurface.WithStyles(a.surfaceStyles()))

	cols := mathutil.RoundInt(a.drillOpts.Width * float64(a.width) / a.plotOpts.Width)
	rows := mathutil.RoundInt(a.drillOpts.Height * float64(height) / a.plotOpts.Height)
	cols = mathutil.Clamp(cols, 16, max(a.width-2, 16))
	rows = mathutil.Clamp(rows, 8, max(height-2, 8))
	a.tipSurface = termsurface.New(cols, rows, a.drillOpts.Width, a.drillOpts.Height,
		termsurface.WithStyles(a.surfaceStyles()))
	a.hover.SetSurface(a.tipSurface)

	a.redrawPlot()
}

func (a *App) redrawPlot() {
	if err := a.renderPlot(); err != nil {
		a.log.Debug(context.Background(), "plot not rendered", logger.Int("year", a.year), logger.Error(err))
	}
}

// renderPlot fits the current slice and draws it. It refuses to run before
// the table is loaded.
func (a *App) renderPlot() error {
	if a.table == nil {
		return plot.ErrNotLoaded
	}
	if a.plotSurface == nil {
		return nil
	}
	rows := a.table.Slice(a.year)
	opts := a.plotOpts
	opts.Title = fmt.Sprintf("%s (%d)", opts.Title, a.year)

	pair, err := plot.Fit(rows, opts)
	if err != nil {
		a.plotSurface.Clear()
		return fmt.Errorf("fit %d: %w", a.year, err)
	}
	if pair.X.IsFlat() || pair.Y.IsFlat() {
		a.log.Debug(context.Background(), "degenerate plot domain", logger.Int("year", a.year), logger.Error(scale.ErrDegenerateDomain))
	}
	a.pair = pair
	plot.Render(a.plotSurface, rows, pair, opts)
	return nil
}

func (a App) surfaceStyles() termsurface.Styles {
	return termsurface.Styles{
		Axis:   a.styles.ChartAxis,
		Tick:   a.styles.ChartTick,
		Marker: a.styles.ChartMarker,
		Label:  a.styles.ChartLabel,
		Path:   a.styles.ChartPath,
		Title:  a.styles.ChartTitle,
	}
}

// hoverSummary describes the hovered entity's row in the current slice.
func (a App) hoverSummary() string {
	entity := a.hover.State().Entity
	if entity == "" || a.table == nil {
		return entity
	}
	for _, r := range a.table.Slice(a.year) {
		if r.Entity == entity {
			return fmt.Sprintf("%s: %s %s, %s %s, %s",
				entity,
				a.plotOpts.XTitle, format.Measure(r.MetricX),
				a.plotOpts.YTitle, format.Measure(r.MetricY),
				format.ShortNumber(r.Size),
			)
		}
	}
	return entity
}

func (a *App) syncStatus() {
	a.keys.Yank.SetEnabled(a.hover.Visible())
	a.keys.Retry.SetEnabled(a.loadErr != nil)
	a.keys.PrevYear.SetEnabled(len(a.years) > 1)
	a.keys.NextYear.SetEnabled(len(a.years) > 1)

	a.statusbar.SetYear(a.year)
	a.statusbar.SetHovered(a.hoverSummary())
	a.statusbar.SetBindings(a.keys.ShortHelp())
	a.help.SetSections(a.keys.HelpSections())
}
