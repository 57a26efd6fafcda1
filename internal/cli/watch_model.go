package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const watchRefresh = time.Second

type watchKeyMap struct {
	Quit    key.Binding
	Mute    key.Binding
	AddTime key.Binding
	Refresh key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddTime, k.Mute, k.Refresh, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Mute:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		AddTime: key.NewBinding(key.WithKeys("+", "a"), key.WithHelp("+", fmt.Sprintf("add %d min", domain.DefaultAddTimeMinutes))),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

type (
	watchTickMsg      time.Time
	sessionLoadedMsg  struct{ session *domain.Session }
	sessionChangedMsg struct {
		session *domain.Session
		status  string
	}
	watchErrMsg struct{ err error }
)

// watchModel shows the active session with a progress bar against its
// planned duration and refreshes once a second.
type watchModel struct {
	ctx  context.Context
	app  *App
	keys watchKeyMap
	help help.Model
	bar  progress.Model

	session *domain.Session
	loaded  bool
	status  string
	err     error
}

func newWatchModel(ctx context.Context, app *App) watchModel {
	bar := progress.New(
		progress.WithSolidFill(string(formatter.ColorGreen)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
	return watchModel{
		ctx:  ctx,
		app:  app,
		keys: defaultWatchKeys(),
		help: help.New(),
		bar:  bar,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), watchTick())
}

func watchTick() tea.Cmd {
	return tea.Tick(watchRefresh, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m watchModel) load() tea.Cmd {
	return func() tea.Msg {
		s, err := m.app.Sessions.Active(m.ctx)
		if err != nil {
			return watchErrMsg{err}
		}
		return sessionLoadedMsg{s}
	}
}

// change runs fn against the active session and reports status on success.
func (m watchModel) change(status string, fn func(ctx context.Context, id string) (*domain.Session, error)) tea.Cmd {
	if m.session == nil {
		return nil
	}
	id := m.session.ID
	return func() tea.Msg {
		s, err := fn(m.ctx, id)
		if err != nil {
			return watchErrMsg{err}
		}
		return sessionChangedMsg{session: s, status: status}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-4, 10), 60)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case key.Matches(msg, m.keys.AddTime):
			return m, m.change(fmt.Sprintf("+%d min", domain.DefaultAddTimeMinutes), func(ctx context.Context, id string) (*domain.Session, error) {
				return m.app.Sessions.AddTime(ctx, id, domain.DefaultAddTimeMinutes)
			})
		case key.Matches(msg, m.keys.Mute):
			return m, m.change("", m.app.Sessions.ToggleNotifications)
		}
		return m, nil

	case watchTickMsg:
		return m, tea.Batch(m.load(), watchTick())

	case sessionLoadedMsg:
		m.session, m.loaded, m.err = msg.session, true, nil
		return m, nil

	case sessionChangedMsg:
		m.session, m.err = msg.session, nil
		m.status = msg.status
		if m.status == "" {
			m.status = "reminders on"
			if msg.session.NotificationDisabled {
				m.status = "reminders muted"
			}
		}
		return m, nil

	case watchErrMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	switch {
	case !m.loaded && m.err == nil:
		b.WriteString(formatter.Dim("Loading…"))
	case m.session == nil:
		b.WriteString(formatter.Dim("No active session."))
	default:
		b.WriteString(m.sessionView())
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + formatter.StyleGreen.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m watchModel) sessionView() string {
	s := m.session
	now := m.app.now()
	elapsed := s.Elapsed(now)
	planned := time.Duration(s.PlannedDuration) * time.Minute

	pct := 1.0
	if planned > 0 {
		pct = min(float64(elapsed)/float64(planned), 1)
	}

	var b strings.Builder
	b.WriteString(formatter.Header(s.DisplayName()))
	if s.NotificationDisabled {
		b.WriteString("  " + formatter.Dim("🔕"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(pct) + "\n")
	b.WriteString(fmt.Sprintf("%s / %s", clock(elapsed), clock(planned)))
	if over := s.Overtime(now); over > 0 {
		b.WriteString("  " + formatter.StyleRed.Render("+"+clock(over)+" over"))
	} else {
		b.WriteString("  " + formatter.Dim(clock(-over)+" left"))
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim("started " + s.StartTime.In(m.app.loc()).Format("15:04")))
	return b.String()
}

// clock formats d as H:MM:SS, or MM:SS under an hour.
func clock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	mins := int(d%time.Hour) / int(time.Minute)
	secs := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
