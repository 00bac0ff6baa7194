// Package tui is the terminal visualizer: a live force layout of the current
// network drawn on a character canvas, with search, filter keys, mouse drag,
// zoom and a detail pane for the selected professional.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/talentgraph/pkg/interaction"
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
	"github.com/dd0wney/talentgraph/pkg/visualization"
)

const (
	frameInterval = 33 * time.Millisecond
	searchTimeout = 2 * time.Minute

	// maxMinStrength bounds the ] key; no demo or live edge gets near it.
	maxMinStrength = 20

	// hitCells is the grab radius around a node glyph, in screen columns.
	hitCells = 1.5
	zoomStep = 1.25
	panCells = 4

	detailWidth = 34
	// canvasTop is the first terminal row inside the canvas border: title,
	// tabs, then the border itself.
	canvasTop  = 3
	canvasLeft = 1
	// chromeRows is everything below the canvas: its bottom border, the
	// input line, status and help.
	chromeRows = 4
)

var tuiZoomRange = interaction.ZoomRange{Min: 0.02, Max: 4}

var connectionCycle = []network.ConnectionType{
	network.ConnectionAll,
	network.ConnectionSkill,
	network.ConnectionCompany,
	network.ConnectionLocation,
}

type tab int

const (
	graphTab tab = iota
	peopleTab
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputSkill
	inputLocation
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type searchDoneMsg struct {
	query  string
	result *session.Result
	err    error
}

func searchCmd(sess *session.Session, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		res, err := sess.Search(ctx, query)
		return searchDoneMsg{query: query, result: res, err: err}
	}
}

// Model is the bubbletea model. The simulation and controller are pointers
// shared between copies; bubbletea only ever holds the latest copy.
type Model struct {
	sess   *session.Session
	layout visualization.LayoutConfig

	snap session.Snapshot
	view network.View
	sim  *visualization.Simulation
	ctrl *interaction.Controller

	tab       tab
	mode      inputMode
	input     textinput.Model
	people    table.Model
	peopleIDs []string
	help      help.Model
	keys      keyMap

	width  int
	height int

	pending    int
	autoFit    bool
	panning    bool
	panFrom    interaction.Point
	message    string
	messageErr bool
}

// New builds a model over sess, loading the demo network when the session is
// empty.
func New(sess *session.Session, layout visualization.LayoutConfig) Model {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 22},
			{Title: "Username", Width: 16},
			{Title: "Location", Width: 20},
			{Title: "Skills", Width: 6},
			{Title: "Links", Width: 5},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#06B6D4")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#3B82F6")).
		Bold(false)
	t.SetStyles(s)

	m := Model{
		sess:   sess,
		layout: layout,
		ctrl: interaction.NewController(nil,
			interaction.WithZoomRange(tuiZoomRange),
			interaction.WithNodeRadius(hitCells)),
		input:  ti,
		people: t,
		help:   help.New(),
		keys:   keys,
	}

	if _, err := sess.Graph(); err != nil {
		if _, err := sess.LoadDemo(); err != nil {
			m.setError(err)
		}
	}
	if err := m.rebuild(); err != nil {
		m.setError(err)
	}
	return m
}

// Run starts the program on the alternate screen with mouse support and
// blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, sess *session.Session, layout visualization.LayoutConfig) error {
	p := tea.NewProgram(New(sess, layout),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.people.SetHeight(max(m.canvasRows()-2, 3))
		if m.autoFit {
			m.fit()
		}
		return m, nil

	case tickMsg:
		if m.sim != nil && !m.sim.Settled() {
			m.sim.Step()
			if m.autoFit {
				m.fit()
			}
		}
		return m, tickCmd()

	case searchDoneMsg:
		return m.searchDone(msg), nil

	case tea.MouseMsg:
		return m.mouse(msg), nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		return m.submit(mode, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(mode inputMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case inputSearch:
		if value == "" {
			m.setMessage("Enter a name, skill or company to search", true)
			return m, nil
		}
		m.pending++
		m.setMessage(fmt.Sprintf("Searching Torre for %q...", value), false)
		return m, searchCmd(m.sess, value)
	case inputSkill:
		f := m.sess.Filter()
		f.Skill = value
		m.applyFilter(f)
	case inputLocation:
		f := m.sess.Filter()
		f.Location = value
		m.applyFilter(f)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		if m.tab == graphTab {
			m.tab = peopleTab
		} else {
			m.tab = graphTab
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Search):
		query := ""
		if m.snap.Graph != nil && m.snap.Graph.Origin == network.OriginSearch {
			query = m.snap.Graph.Query
		}
		return m, m.openInput(inputSearch, "Search professionals", query)

	case key.Matches(msg, m.keys.Skill):
		return m, m.openInput(inputSkill, "Filter by skill", m.sess.Filter().Skill)

	case key.Matches(msg, m.keys.Location):
		return m, m.openInput(inputLocation, "Filter by location", m.sess.Filter().Location)

	case key.Matches(msg, m.keys.Type):
		f := m.sess.Filter()
		f.ConnectionType = nextConnectionType(f.ConnectionType)
		m.applyFilter(f)
		return m, nil

	case key.Matches(msg, m.keys.Stronger):
		f := m.sess.Filter()
		if f.MinStrength < maxMinStrength {
			f.MinStrength++
			m.applyFilter(f)
		}
		return m, nil

	case key.Matches(msg, m.keys.Weaker):
		f := m.sess.Filter()
		if f.MinStrength > 1 {
			f.MinStrength--
			m.applyFilter(f)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.sess.ResetFilter()
		if err := m.rebuild(); err != nil {
			m.setError(err)
		} else {
			m.setMessage("Filters cleared", false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Demo):
		if _, err := m.sess.LoadDemo(); err != nil {
			m.setError(err)
			return m, nil
		}
		if err := m.rebuild(); err != nil {
			m.setError(err)
		} else {
			m.setMessage("Demo network loaded", false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.ctrl.ClearSelection()
		return m, nil
	}

	if m.tab == peopleTab {
		if key.Matches(msg, m.keys.Enter) {
			i := m.people.Cursor()
			if i >= 0 && i < len(m.peopleIDs) {
				if err := m.ctrl.Select(m.peopleIDs[i]); err == nil {
					m.tab = graphTab
				}
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.people, cmd = m.people.Update(msg)
		return m, cmd
	}

	cols, rows := m.canvasSize()
	center := interaction.Point{X: float64(cols) / 2, Y: float64(rows*rowAspect) / 2}
	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(zoomStep, center)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(1/zoomStep, center)
	case key.Matches(msg, m.keys.Fit):
		m.autoFit = true
		m.fit()
	case key.Matches(msg, m.keys.Up):
		m.pan(0, panCells*rowAspect)
	case key.Matches(msg, m.keys.Down):
		m.pan(0, -panCells*rowAspect)
	case key.Matches(msg, m.keys.Left):
		m.pan(panCells, 0)
	case key.Matches(msg, m.keys.Right):
		m.pan(-panCells, 0)
	case key.Matches(msg, m.keys.Next):
		m.selectNext()
	}
	return m, nil
}

func (m Model) mouse(msg tea.MouseMsg) Model {
	if m.tab != graphTab || m.sim == nil || m.mode != inputNone {
		return m
	}
	p, inside := m.canvasPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inside {
				m.zoom(zoomStep, p)
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.zoom(1/zoomStep, p)
			}
		case tea.MouseButtonLeft:
			if !inside {
				return m
			}
			if id, ok := m.ctrl.Click(p); ok {
				if err := m.ctrl.DragStart(id); err != nil {
					m.setError(err)
					return m
				}
				m.autoFit = false
				return m
			}
			m.panning, m.panFrom = true, p
		}

	case tea.MouseActionMotion:
		if _, ok := m.ctrl.Dragging(); ok {
			if err := m.ctrl.DragMove(p); err != nil {
				m.setError(err)
			}
			return m
		}
		if m.panning {
			m.pan(p.X-m.panFrom.X, p.Y-m.panFrom.Y)
			m.panFrom = p
			return m
		}
		if inside {
			m.ctrl.HoverAt(p)
		}

	case tea.MouseActionRelease:
		if _, ok := m.ctrl.Dragging(); ok {
			if err := m.ctrl.DragEnd(); err != nil {
				m.setError(err)
			}
		}
		m.panning = false
	}
	return m
}

func (m Model) searchDone(msg searchDoneMsg) Model {
	if m.pending > 0 {
		m.pending--
	}
	switch {
	case errors.Is(msg.err, session.ErrSuperseded):
		return m
	case msg.err != nil:
		m.setError(fmt.Errorf("search %q: %w", msg.query, msg.err))
		return m
	}
	if err := m.rebuild(); err != nil {
		m.setError(err)
		return m
	}
	if msg.result.Reason.IsFallback() {
		m.setMessage(msg.result.Advisory, true)
	} else {
		m.setMessage(fmt.Sprintf("Found %d professionals and %d connections",
			len(msg.result.Graph.Nodes), len(msg.result.Graph.Edges)), false)
	}
	return m
}

// rebuild re-reads the session and restarts the layout on the visible view.
// A filter change on the same snapshot keeps positions and the selection; a
// new snapshot starts fresh and is framed automatically.
func (m *Model) rebuild() error {
	snap := m.sess.Snapshot()
	view := snap.View()

	sameGraph := m.sim != nil && m.snap.Graph != nil && snap.Graph != nil && m.snap.Graph.ID == snap.Graph.ID
	var opts []visualization.Option
	if sameGraph {
		opts = append(opts, visualization.WithPositions(m.sim.Positions()))
	}
	sim, err := visualization.NewSimulation(view.Nodes, view.Edges, m.layout, opts...)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	selected := m.ctrl.State().Selected
	m.ctrl.SetSimulator(sim)
	if sameGraph && selected != "" {
		// a node the new filter hides drops out of the selection
		if err := m.ctrl.Select(selected); err != nil && !errors.Is(err, interaction.ErrUnknownNode) {
			return err
		}
	}

	m.snap, m.view, m.sim = snap, view, sim
	if !sameGraph {
		m.autoFit = true
	}
	if m.autoFit {
		m.fit()
	}
	m.refreshPeople()
	return nil
}

func (m *Model) applyFilter(f network.FilterConfig) {
	if err := m.sess.SetFilter(f); err != nil {
		m.setError(err)
		return
	}
	if err := m.rebuild(); err != nil {
		m.setError(err)
		return
	}
	m.message = ""
}

func (m *Model) refreshPeople() {
	links := make(map[string]int, len(m.view.Nodes))
	for _, e := range m.view.Edges {
		links[e.Source]++
		links[e.Target]++
	}
	rows := make([]table.Row, 0, len(m.view.Nodes))
	ids := make([]string, 0, len(m.view.Nodes))
	for _, n := range m.view.Nodes {
		rows = append(rows, table.Row{
			n.Name,
			"@" + n.Username,
			n.Location,
			fmt.Sprintf("%d", len(n.Skills)),
			fmt.Sprintf("%d", links[n.ID]),
		})
		ids = append(ids, n.ID)
	}
	m.people.SetRows(rows)
	m.peopleIDs = ids
	if m.people.Cursor() >= len(rows) {
		m.people.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) selectNext() {
	ids := m.sim.NodeIDs()
	if len(ids) == 0 {
		return
	}
	next := 0
	if cur := m.ctrl.State().Selected; cur != "" {
		for i, id := range ids {
			if id == cur {
				next = (i + 1) % len(ids)
				break
			}
		}
	}
	if err := m.ctrl.Select(ids[next]); err != nil {
		m.setError(err)
	}
}

func (m *Model) fit() {
	if m.sim == nil || m.sim.Len() == 0 {
		return
	}
	cols, rows := m.canvasSize()
	m.ctrl.ZoomToFit(m.sim.Bounds(), float64(cols), float64(rows*rowAspect), 2)
	m.syncRadius()
}

func (m *Model) zoom(factor float64, at interaction.Point) {
	m.ctrl.ZoomAt(factor, at)
	m.autoFit = false
	m.syncRadius()
}

func (m *Model) pan(dx, dy float64) {
	m.ctrl.Pan(dx, dy)
	m.autoFit = false
}

// syncRadius keeps the grab radius at a fixed screen size.
func (m *Model) syncRadius() {
	if k := m.ctrl.Viewport().K; k > 0 {
		m.ctrl.SetNodeRadius(hitCells / k)
	}
}

func (m *Model) openInput(mode inputMode, placeholder, value string) tea.Cmd {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) setMessage(msg string, isErr bool) {
	m.message, m.messageErr = msg, isErr
}

func (m *Model) setError(err error) {
	m.setMessage(err.Error(), true)
}

// canvasSize is the drawable grid in cells.
func (m Model) canvasSize() (cols, rows int) {
	cols = m.width - detailWidth - 4
	if cols < 10 {
		cols = 10
	}
	return cols, m.canvasRows()
}

func (m Model) canvasRows() int {
	rows := m.height - canvasTop - chromeRows
	if rows < 5 {
		rows = 5
	}
	return rows
}

// canvasPoint maps a terminal cell to canvas screen coordinates.
func (m Model) canvasPoint(x, y int) (interaction.Point, bool) {
	cols, rows := m.canvasSize()
	cx, cy := x-canvasLeft, y-canvasTop
	inside := cx >= 0 && cy >= 0 && cx < cols && cy < rows
	return interaction.Point{X: float64(cx), Y: float64(cy * rowAspect)}, inside
}

func nextConnectionType(t network.ConnectionType) network.ConnectionType {
	for i, c := range connectionCycle {
		if c == t {
			return connectionCycle[(i+1)%len(connectionCycle)]
		}
	}
	return network.ConnectionAll
}
