// Package tui is an interactive, live updating agenda view.
package tui

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/window"
)

// Model renders one view of the agenda and redraws it when the store
// changes on disk.
type Model struct {
	svc       *app.Service
	ctx       context.Context
	view      window.View
	anchor    time.Time
	resources []string

	viewport viewport.Model
	width    int
	height   int
	status   string
	// color is off in tests so rendered content can be matched.
	color bool

	watchCh     <-chan store.Change
	watchCancel context.CancelFunc
}

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

const footer = "h/l previous/next · t today · v view · j/k scroll · q quit"

// New returns a model showing view around anchor. A zero anchor means today.
func New(ctx context.Context, svc *app.Service, view window.View, anchor time.Time, resources []string) *Model {
	if anchor.IsZero() {
		anchor = svc.Now()
	}
	return &Model{
		svc:       svc,
		ctx:       ctx,
		view:      view,
		anchor:    anchor,
		resources: resources,
		viewport:  viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
		width:     80,
		height:    21,
		color:     true,
	}
}

type watchStartedMsg struct {
	ch     <-chan store.Change
	cancel context.CancelFunc
	err    error
}

type watchChangeMsg struct {
	change store.Change
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if c, ok := <-ch; ok {
			return watchChangeMsg{change: c}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Init renders the first frame and starts watching the store.
func (m *Model) Init() tea.Cmd {
	m.render()
	return startWatchCmd(m.ctx, m.svc)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(max(1, msg.Width))
		m.viewport.SetHeight(max(1, msg.Height-1))
		m.render()
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "watch: " + msg.err.Error()
			break
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchChangeMsg:
		if err := m.svc.Reload(m.ctx); err != nil {
			m.status = "reload: " + err.Error()
		} else {
			m.render()
		}
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		if m.handleKey(msg.String()) {
			m.stopWatch()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey applies navigation keys and reports whether to quit.
func (m *Model) handleKey(key string) bool {
	switch key {
	case "q", "ctrl+c", "esc":
		return true
	case "h", "left":
		m.anchor = step(m.view, m.anchor, -1)
	case "l", "right":
		m.anchor = step(m.view, m.anchor, 1)
	case "t":
		m.anchor = m.svc.Now()
	case "v":
		m.view = nextView(m.view)
	default:
		return false
	}
	m.render()
	m.viewport.GotoTop()
	return false
}

func (m *Model) render() {
	var buf bytes.Buffer
	p := printers.New(&buf)
	if m.color {
		p.ForceColor()
	}
	p.Width = m.width
	p.Location = m.svc.Location()

	w, items, err := m.svc.Layout(m.ctx, m.view, m.anchor, m.resources)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	p.Layout(w, items)
	m.viewport.SetContent(buf.String())
}

func (m *Model) View() string {
	bottom := footerStyle.Render(footer)
	if m.status != "" {
		bottom = statusStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), bottom)
}

// step moves anchor by n periods of view.
func step(view window.View, anchor time.Time, n int) time.Time {
	switch view {
	case window.ViewWeek:
		return anchor.AddDate(0, 0, 7*n)
	case window.ViewMonth:
		return anchor.AddDate(0, n, 0)
	default:
		return anchor.AddDate(0, 0, n)
	}
}

func nextView(v window.View) window.View {
	views := window.AllViews()
	for i, candidate := range views {
		if candidate == v {
			return views[(i+1)%len(views)]
		}
	}
	return views[0]
}

// Run starts the program full screen and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service, view window.View, anchor time.Time, resources []string) error {
	p := tea.NewProgram(New(ctx, svc, view, anchor, resources), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
