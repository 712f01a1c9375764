// Package tui provides a Bubble Tea terminal user interface for the art gallery.
package tui

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/handiism/art-gallery/internal/filter"
	"github.com/handiism/art-gallery/internal/gallery"
	"github.com/handiism/art-gallery/internal/render"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

const (
	cardZonePrefix = "card-"
	defaultWidth   = 80
)

var zoneOnce sync.Once

// Focus tells which part of the screen receives keys.
type Focus int

const (
	FocusGallery Focus = iota
	FocusSearch
)

// Message types
type (
	// LoadedMsg is sent when a catalog load or reload finishes.
	LoadedMsg struct {
		Result gallery.Result
		Err    error
	}

	// CatalogChangedMsg is sent when the watched catalog file changes.
	CatalogChangedMsg struct{}
)

// Options configures the Model.
type Options struct {
	// CardWidth is the outer width of one card.
	CardWidth int

	// Changes, if set, signals catalog file changes that trigger a reload.
	Changes <-chan struct{}
}

// Model is the Bubble Tea model for the gallery.
type Model struct {
	ctrl    *gallery.Controller
	res     gallery.Result
	search  textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    KeyMap

	// styleIdx indexes res.Styles; -1 selects all styles.
	styleIdx int
	focus    Focus
	cursor   int
	loading  bool
	err      error

	cardWidth int
	changes   <-chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model driving ctrl. The catalog is loaded
// when the program starts.
func NewModel(ctrl *gallery.Controller, opts Options) Model {
	zoneOnce.Do(zone.NewGlobal)

	ti := textinput.New()
	ti.Placeholder = "Search title, artist, mood, style"
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		ctrl:      ctrl,
		res:       ctrl.Begin(),
		loading:   true,
		search:    ti,
		spinner:   sp,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		styleIdx:  -1,
		cardWidth: opts.CardWidth,
		changes:   opts.Changes,
		ctx:       ctx,
		cancel:    cancel,
		width:     defaultWidth,
	}
}

// Init starts the catalog load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.load(false)}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Result returns the presentation state currently shown.
func (m Model) Result() gallery.Result {
	return m.res
}

// Focus returns the focused part of the screen.
func (m Model) Focus() Focus {
	return m.focus
}

// Cursor returns the index of the focused card.
func (m Model) Cursor() int {
	return m.cursor
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		if m.focus == FocusSearch {
			return m.updateSearch(msg)
		}
		return m.updateGallery(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		m.show(msg.Result)
		m.syncStyle()
		return m, nil

	case CatalogChangedMsg:
		m.loading = true
		return m, tea.Batch(m.load(true), waitForChange(m.changes))
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Apply):
		m.focus = FocusGallery
		m.search.Blur()
		m.show(m.ctrl.Apply(m.query()))
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Leave):
		m.focus = FocusGallery
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Style):
		m.cycleStyle()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.show(m.ctrl.InputChanged(value))
	}
	return m, cmd
}

func (m Model) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.terminal().Columns(m.width)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Style):
		m.cycleStyle()
		m.show(m.ctrl.Apply(m.query()))
		m.cursor = 0

	case key.Matches(msg, m.keys.ShowAll):
		m.search.SetValue("")
		m.styleIdx = -1
		m.show(m.ctrl.ShowAll())
		m.cursor = 0

	case key.Matches(msg, m.keys.Random):
		res, _ := m.ctrl.Key(msg.String())
		m.show(res)
		m.cursorToHighlight()

	case key.Matches(msg, m.keys.Select):
		m.selectAt(m.cursor)

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols)
	}

	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for i, card := range m.res.Gallery.Cards {
		if z := zone.Get(cardZoneID(card.ID)); z != nil && z.InBounds(msg) {
			m.cursor = i
			m.selectAt(i)
			break
		}
	}
	return m, nil
}

// load runs a catalog load as a command; the fetch is the only blocking step.
func (m Model) load(reload bool) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		var res gallery.Result
		var err error
		if reload {
			res, err = ctrl.Reload(ctx)
		} else {
			res, err = ctrl.Load(ctx)
		}
		return LoadedMsg{Result: res, Err: err}
	})
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return CatalogChangedMsg{}
	}
}

func (m *Model) show(res gallery.Result) {
	m.res = res
	if n := len(res.Gallery.Cards); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) selectAt(i int) {
	if i < 0 || i >= len(m.res.Gallery.Cards) {
		return
	}
	res, err := m.ctrl.Select(m.res.Gallery.Cards[i].ID)
	if err == nil {
		m.show(res)
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.res.Gallery.Cards)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *Model) cursorToHighlight() {
	for i, card := range m.res.Gallery.Cards {
		if card.Highlighted {
			m.cursor = i
			return
		}
	}
}

func (m *Model) cycleStyle() {
	m.styleIdx++
	if m.styleIdx >= len(m.res.Styles) {
		m.styleIdx = -1
	}
}

// syncStyle keeps the style selection valid after the catalog changed.
func (m *Model) syncStyle() {
	if m.styleIdx >= len(m.res.Styles) {
		m.styleIdx = -1
	}
}

func (m Model) styleName() string {
	if m.styleIdx < 0 || m.styleIdx >= len(m.res.Styles) {
		return filter.StyleAll
	}
	return m.res.Styles[m.styleIdx]
}

func (m Model) query() filter.Query {
	return filter.Query{Text: m.search.Value(), Style: m.styleName()}
}

func (m Model) terminal() render.Terminal {
	return render.NewTerminal(m.cardWidth, m.res.Palette)
}

func cardZoneID(id int) string {
	return cardZonePrefix + strconv.Itoa(id)
}

// View renders the UI.
func (m Model) View() string {
	term := m.terminal()
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Art Gallery"))
	if !m.res.Theme.IsZero() {
		b.WriteString(dimStyle.Render("  " + m.res.Theme.Name))
	}
	b.WriteString("\n\n")

	// Search bar
	b.WriteString(m.search.View())
	b.WriteString("  ")
	style := "All styles"
	if name := m.styleName(); name != filter.StyleAll {
		style = name
	}
	if m.focus == FocusSearch {
		b.WriteString(activeStyle.Render("Style: " + style))
	} else {
		b.WriteString(subtitleStyle.Render("Style: " + style))
	}
	b.WriteString("\n\n")

	// Status
	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	if m.err != nil && m.res.Status == gallery.StatusLoadFailed {
		b.WriteString(errorStyle.Render(m.res.Status))
	} else {
		b.WriteString(term.Status(m.res.Status))
	}
	b.WriteString("\n\n")

	// Cards
	cursor := -1
	if m.focus == FocusGallery {
		cursor = m.cursor
	}
	b.WriteString(term.Cards(m.res.Gallery, m.width, cursor, func(id int, card string) string {
		return zone.Mark(cardZoneID(id), card)
	}))
	b.WriteString("\n\n")

	// Details
	b.WriteString(term.Details(m.res.Details, min(m.width, 72)))
	b.WriteString("\n\n")

	// Footer
	bindings := m.keys.galleryHelp()
	if m.focus == FocusSearch {
		bindings = m.keys.searchHelp()
	}
	b.WriteString(m.help.ShortHelpView(bindings))

	return zone.Scan(b.String())
}
