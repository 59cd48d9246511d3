package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/side-by-side/internal/config"
	"github.com/treykane/side-by-side/internal/logging"
	"github.com/treykane/side-by-side/internal/split"
)

// paneID identifies one of the two content panes.
type paneID int

const (
	paneLeft paneID = iota
	paneRight
)

func (p paneID) String() string {
	if p == paneLeft {
		return "left"
	}
	return "right"
}

func (p paneID) other() paneID {
	if p == paneLeft {
		return paneRight
	}
	return paneLeft
}

// pane is one side of the split: a file and the viewport showing it.
type pane struct {
	path     string
	title    string
	viewport viewport.Model
	loading  bool

	// Debounced render bookkeeping
	renderSeq    int
	pendingWidth int
}

func (p *pane) setContent(content string) {
	p.viewport.SetContent(content)
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	cfg config.Config

	// Divider state. geometry and ratios mirror the last Update applied
	// from the controller.
	split    *split.Controller
	window   *windowWatcher
	geometry split.DividerGeometry
	ratios   split.PaneRatios
	drag     dragState

	panes [2]pane
	focus paneID

	// Layout sizing
	width  int
	height int

	status   string
	showHelp bool
	help     help.Model

	keys         keyMap
	keyForAction map[string][]string
	keyToAction  map[string]string

	renderCache map[string]renderCacheEntry
	files       *fileWatcher

	// now is the gesture clock; tests replace it.
	now func() time.Time
}

// New prepares the UI model for the given files. Either path may be empty,
// in which case that pane shows a placeholder.
func New(cfg config.Config, leftPath, rightPath string) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	controller, err := split.New(split.Options{
		Divider: split.DividerSize{
			Width:  float64(cfg.Divider.Width),
			Height: float64(cfg.Divider.Height),
		},
		DoubleTapWindow: cfg.DoubleTapWindow(),
		Basis:           split.WeightBasisViewport,
		Clamp: split.ClampPolicy{
			Enabled:   cfg.MinPaneWidth > 0,
			MinWeight: float64(cfg.MinPaneWidth),
		},
		Logger: logging.New("split"),
	})
	if err != nil {
		return nil, fmt.Errorf("create split controller: %w", err)
	}

	m := &Model{
		cfg:         cfg,
		split:       controller,
		window:      newWindowWatcher(),
		help:        help.New(),
		status:      "Ready",
		renderCache: map[string]renderCacheEntry{},
		now:         time.Now,
	}
	for id, path := range []string{leftPath, rightPath} {
		p, err := newPane(path)
		if err != nil {
			return nil, err
		}
		m.panes[id] = p
	}
	m.loadKeybindings()

	if cfg.WatchFiles {
		files, err := newFileWatcher(m.panes[paneLeft].path, m.panes[paneRight].path)
		if err != nil {
			// Panes still work without live reload.
			m.setStatusError("File watching unavailable", err)
		}
		m.files = files
	}
	return m, nil
}

func newPane(path string) (pane, error) {
	p := pane{viewport: viewport.New(0, 0), title: "(empty)"}
	if path == "" {
		p.setContent(mutedStyle.Render("No file"))
		return p, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return pane{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	p.path = abs
	p.title = filepath.Base(abs)
	p.setContent("Loading...")
	return p, nil
}

// Init starts file watching. Panes render once the first window size is
// known.
func (m *Model) Init() tea.Cmd {
	return m.files.waitCmd()
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case renderRequestMsg:
		return m.handleRenderRequest(msg)
	case renderResultMsg:
		return m.handleRenderResult(msg)
	case fileChangedMsg:
		return m.handleFileChanged(msg)
	case fileWatchErrMsg:
		return m.handleFileWatchErr(msg)
	}
	return m, nil
}

// Close deregisters the split controller from the window watcher and stops
// file watching. Call it after the program exits.
func (m *Model) Close() error {
	m.split.Close()
	return m.files.Close()
}

// handleWindowResize initializes the split on the first size and resets it
// on every later change.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	v := m.contentViewport()
	if !m.split.Initialized() {
		m.window.current = v
		if err := m.split.Watch(m.window, m.applySplitUpdate); err != nil {
			m.setStatusError("Split layout unavailable", err, "width", msg.Width, "height", msg.Height)
			return m, nil
		}
		m.geometry = m.split.Geometry()
		m.ratios = m.split.Ratios()
	} else if m.window.notify(v) && m.drag.active {
		m.drag.stale = true
	}

	m.applyLayout(m.calculateLayout())
	return m, m.requestRenderAll()
}

// applySplitUpdate mirrors a controller update into the model. Updates
// without a change carry nothing to apply.
func (m *Model) applySplitUpdate(u split.Update) {
	if u.Diagnostic != nil {
		appLog.Debug("split event ignored", "error", u.Diagnostic)
	}
	if !u.Changed {
		return
	}
	m.geometry = u.Geometry
	m.ratios = u.Ratios
	m.applyLayout(m.calculateLayout())
}

// resetSplit restores the default divider position for the current size.
func (m *Model) resetSplit() (tea.Model, tea.Cmd) {
	if !m.split.Initialized() {
		return m, nil
	}
	u, err := m.split.Reset()
	if err != nil {
		m.setStatusError("Split reset failed", err)
		return m, nil
	}
	m.applySplitUpdate(u)
	m.status = "Split reset"
	return m, m.requestRenderAll()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		if m.drag.active {
			return m.cancelDrag()
		}
		if m.showHelp {
			m.toggleHelp()
		}
		return m, nil
	}

	vp := &m.panes[m.focus].viewport
	switch m.actionForKey(msg.String()) {
	case actionQuit:
		return m, tea.Quit
	case actionResetSplit:
		return m.resetSplit()
	case actionFocusToggle:
		m.focus = m.focus.other()
		m.status = "Focus: " + m.panes[m.focus].title
	case actionScrollUp:
		vp.LineUp(ScrollStep)
	case actionScrollDown:
		vp.LineDown(ScrollStep)
	case actionScrollPageUp:
		vp.ViewUp()
	case actionScrollPageDown:
		vp.ViewDown()
	case actionHelp:
		m.toggleHelp()
	}
	return m, nil
}

func (m *Model) toggleHelp() {
	m.showHelp = !m.showHelp
}

// ratioLabel formats the split as left/right percentages.
func (m *Model) ratioLabel() string {
	left := m.ratios.Fraction() * 100
	return fmt.Sprintf("%.0f%% / %.0f%%", left, 100-left)
}
