// Package dashboard is the live terminal dashboard. It re-renders on every
// store change and refreshes the collections on demand or on a timer.
package dashboard

import (
	"strings"
	"time"

	"jansctl/internal/actions"
	"jansctl/internal/store"
	"jansctl/internal/views"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab is a dashboard page.
type Tab int

const (
	TabReports Tab = iota
	TabLogging
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type stateChangedMsg struct{}

type tickMsg time.Time

// Model is the bubbletea model of the dashboard.
type Model struct {
	store    *store.Store
	changes  chan struct{}
	interval time.Duration
	keys     KeyMap

	state store.State
	tab   Tab
	width int

	unsubscribe func()
}

// Option configures a Model.
type Option func(*Model)

// WithInterval refreshes the collections every d. Zero disables it.
func WithInterval(d time.Duration) Option {
	return func(m *Model) { m.interval = d }
}

// WithTab selects the initial tab.
func WithTab(t Tab) Option {
	return func(m *Model) { m.tab = t }
}

// New subscribes a dashboard to st. Call Close when the program exits.
func New(st *store.Store, opts ...Option) *Model {
	m := &Model{
		store:   st,
		changes: make(chan struct{}, 1),
		keys:    DefaultKeyMap(),
		state:   st.State(),
	}
	for _, opt := range opts {
		opt(m)
	}

	// Coalesce notifications; the model reads the latest state anyway.
	m.unsubscribe = st.Subscribe(func(actions.Action, store.State) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	return m
}

// Close unsubscribes from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) refresh() {
	for _, act := range views.RefreshActions(m.store.State()) {
		m.store.Dispatch(act)
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

func (m *Model) tick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model. It triggers the first refresh.
func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tea.Batch(waitForChange(m.changes), m.tick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.state = m.store.State()
		return m, waitForChange(m.changes)

	case tickMsg:
		m.refresh()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			if m.tab == TabReports {
				m.tab = TabLogging
			} else {
				m.tab = TabReports
			}
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(views.Header(m.state))
	b.WriteString("\n\n")

	switch m.tab {
	case TabLogging:
		b.WriteString(views.NewLoggingPage(m.state).Render())
	default:
		b.WriteString(views.RenderReports(views.Reports(m.state), m.width))
	}

	b.WriteString("\n\n")
	var help []string
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	if m.state.Loading() {
		help = append(help, "loading…")
	}
	b.WriteString(footerStyle.Render(strings.Join(help, " • ")))
	return b.String()
}

// Tab returns the current tab.
func (m *Model) Tab() Tab {
	return m.tab
}
