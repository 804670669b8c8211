package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"media-gallery/internal/autoscroll"
	"media-gallery/internal/carousel"
	"media-gallery/internal/logging"
	"media-gallery/internal/session"
	"media-gallery/internal/settings"
	"media-gallery/internal/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// rowPixels is the viewport distance of one grid row, so autoscroll
	// speeds mean the same thing here as in a browser.
	rowPixels = 100.0
	// cellLines is the terminal height of one grid cell including borders.
	cellLines = 4
	// chromeLines are the title, status and help lines around the grid.
	chromeLines = 4
	speedStep   = 10
	refreshRate = 100 * time.Millisecond
)

type loadDoneMsg struct {
	path string
	took time.Duration
	err  error
}

type refreshMsg time.Time

// Model is the bubbletea model of the terminal gallery.
type Model struct {
	session  *session.Session
	viewport *autoscroll.Tracker
	themes   *theme.Provider

	width  int
	height int

	input   textinput.Model
	spin    spinner.Model
	loading bool
	initial string

	state  session.State
	page   session.GridPage
	cursor int
	editor *session.SettingsEditor
	status string
	err    string
}

// New returns a model driving s. vp must be the viewport s autoscrolls and
// themes the setter s was created with. A non-empty dir is ingested on start.
func New(s *session.Session, vp *autoscroll.Tracker, themes *theme.Provider, dir string) *Model {
	ti := textinput.New()
	ti.Prompt = "Directory: "
	ti.Placeholder = "/path/to/photos"
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		session:  s,
		viewport: vp,
		themes:   themes,
		input:    ti,
		spin:     sp,
		initial:  dir,
		state:    s.State(),
	}
}

// Init starts the refresh loop and, if a directory was given, its ingestion.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, refreshTick()}
	if m.initial != "" {
		m.input.SetValue(m.initial)
		cmds = append(cmds, m.startLoad(m.initial))
	}
	return tea.Batch(cmds...)
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m *Model) startLoad(path string) tea.Cmd {
	m.loading = true
	m.err = ""
	m.status = fmt.Sprintf("Loading %s ...", path)
	return tea.Batch(m.spin.Tick, m.loadGallery(path))
}

// loadGallery ingests path off the UI goroutine.
func (m *Model) loadGallery(path string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		start := time.Now()
		err := s.LoadPath(context.Background(), path)
		return loadDoneMsg{path: path, took: time.Since(start), err: err}
	}
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, m.width-len(m.input.Prompt)-2)
		m.refresh()
		return m, nil

	case refreshMsg:
		m.refresh()
		return m, refreshTick()

	case loadDoneMsg:
		m.loading = false
		if msg.err != nil {
			logging.Warn("Loading %s failed: %v", msg.path, msg.err)
			m.err = msg.err.Error()
			m.status = ""
		} else {
			m.err = ""
			m.cursor = 0
			m.input.Blur()
			m.status = fmt.Sprintf("Loaded %s in %v", msg.path, msg.took.Round(time.Millisecond))
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch {
		case m.loading:
		case !m.state.Loaded:
			cmd = m.homeKey(msg)
		case m.editor != nil:
			m.editorKey(msg.String())
		case m.state.Carousel.Open:
			cmd = m.carouselKey(msg.String())
		default:
			cmd = m.galleryKey(msg.String())
		}
		m.refresh()
		return m, cmd
	}

	if !m.state.Loaded {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) homeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return tea.Quit
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return nil
		}
		return m.startLoad(path)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) galleryKey(key string) tea.Cmd {
	cols := max(m.state.Columns, 1)
	var err error
	switch key {
	case "q":
		return tea.Quit
	case "left":
		m.moveCursor(-1)
	case "right":
		m.moveCursor(1)
	case "up":
		m.moveCursor(-cols)
	case "down":
		m.moveCursor(cols)
	case "enter":
		err = m.openSelected()
	case "s":
		m.cursor = 0
		err = m.session.Shuffle()
	case "o":
		err = m.session.ResetOrder()
	case "2", "3", "4":
		err = m.session.SetColumns(int(key[0] - '0'))
	case "a":
		err = m.session.SetAutoscroll(!m.state.Autoscroll)
	case "f":
		m.cursor = 0
		err = m.session.UpdateSettings(settings.Patch{FlattenFiles: settings.Pointer(!m.state.Settings.FlattenFiles)})
	case "t":
		err = m.session.UpdateSettings(settings.Patch{Theme: settings.Pointer(m.state.Settings.Theme.Next())})
	case "+", "=":
		err = m.session.UpdateSettings(settings.Patch{AutoscrollSpeed: settings.Pointer(m.state.Settings.AutoscrollSpeed + speedStep)})
	case "-":
		err = m.session.UpdateSettings(settings.Patch{AutoscrollSpeed: settings.Pointer(m.state.Settings.AutoscrollSpeed - speedStep)})
	case "e":
		m.editor = m.session.EditSettings()
	case "h":
		m.session.NavigateHome()
		m.input.SetValue("")
		m.status = ""
		return m.input.Focus()
	}
	m.setError(err)
	return nil
}

func (m *Model) openSelected() error {
	for _, c := range m.page.Cells {
		if c.Slot != m.cursor {
			continue
		}
		if c.Placeholder {
			m.status = c.Label + " (press f to show its files)"
			return nil
		}
		return m.session.OpenCarousel(c.Position)
	}
	return nil
}

func (m *Model) carouselKey(key string) tea.Cmd {
	var err error
	switch key {
	case "q":
		return tea.Quit
	case "left":
		m.session.PressKey(carousel.KeyLeft)
	case "right":
		m.session.PressKey(carousel.KeyRight)
	case "esc":
		m.session.PressKey(carousel.KeyEscape)
	case " ":
		if m.state.Carousel.Playing {
			err = m.session.CarouselPause()
		} else {
			_, err = m.session.CarouselPlay()
		}
	}
	m.setError(err)
	return nil
}

func (m *Model) editorKey(key string) {
	e := m.editor
	draft := e.Draft()
	var err error
	switch key {
	case "+", "=":
		err = e.SetSpeed(draft.AutoscrollSpeed + speedStep)
	case "-":
		err = e.SetSpeed(draft.AutoscrollSpeed - speedStep)
	case "f":
		err = e.SetFlatten(!draft.FlattenFiles)
	case "t":
		err = e.SetTheme(draft.Theme.Next())
	case "c":
		err = e.Clear()
	case "enter":
		err = e.Commit()
		m.editor = nil
		m.status = "Settings saved"
	case "esc":
		err = e.Discard()
		m.editor = nil
		m.status = "Settings discarded"
	}
	m.setError(err)
}

func (m *Model) setError(err error) {
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
}

func (m *Model) visibleRows() int {
	return max(1, (m.height-chromeLines)/cellLines)
}

// moveCursor moves the selection by delta cells and scrolls it into view.
func (m *Model) moveCursor(delta int) {
	total := m.page.Total
	if total == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), total-1)

	cols := max(m.state.Columns, 1)
	rows := m.visibleRows()
	pos := m.viewport.Position()
	first := int(pos.Offset / rowPixels)
	row := m.cursor / cols
	switch {
	case row < first:
		pos.Offset = float64(row) * rowPixels
	case row >= first+rows:
		pos.Offset = float64(row-rows+1) * rowPixels
	default:
		return
	}
	m.viewport.Set(pos)
}

// refresh reloads the session state and the visible grid window, and
// reports the window size to the viewport autoscroll drives.
func (m *Model) refresh() {
	m.state = m.session.State()
	if !m.state.Loaded {
		m.page = session.GridPage{}
		m.cursor = 0
		return
	}

	cols := max(m.state.Columns, 1)
	rows := m.visibleRows()
	pos := m.viewport.Position()
	first := int(pos.Offset / rowPixels)

	page, err := m.session.Grid(first*cols, rows*cols)
	if err != nil {
		m.setError(err)
		return
	}
	m.page = page

	totalRows := math.Ceil(float64(page.Total) / float64(cols))
	m.viewport.Set(autoscroll.Position{
		Height: float64(rows) * rowPixels,
		Extent: totalRows * rowPixels,
		Offset: pos.Offset,
	})
	if m.cursor >= page.Total {
		m.cursor = max(page.Total-1, 0)
	}
}
