// Package ui renders a live progress view for a batch print run, the one
// place in the toolchain where bubbletea earns its keep: printing a batch
// to a real printer takes long enough, and fails often enough, that a
// caller watching a terminal wants per-job status rather than a final
// summary.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"zplforge/internal/printclient"
)

// BatchEvent is one update in a batch send, fed to the progress model over
// a channel as printclient.SendBatch's ProgressFunc fires.
type BatchEvent struct {
	Done, Total int
	Result      printclient.JobResult
}

type progressModel struct {
	title   string
	events  <-chan BatchEvent
	spinner spinner.Model
	prog    progress.Model
	items   []jobItem
	index   map[string]int
	width   int
	done    bool
	failed  int
}

type jobItem struct {
	name   string
	status string
}

type eventMsg BatchEvent
type doneMsg struct{}

// NewBatchProgressModel returns a Bubble Tea model that renders per-job
// status and an overall completion bar for a batch print run.
func NewBatchProgressModel(title string, jobNames []string, events <-chan BatchEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]jobItem, 0, len(jobNames))
	index := make(map[string]int, len(jobNames))
	for i, name := range jobNames {
		items = append(items, jobItem{name: name, status: "queued"})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(BatchEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s (%d failed)", header, m.failed)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.name, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev BatchEvent) tea.Cmd {
	idx, ok := m.index[ev.Result.Job.Name]
	if ok {
		if ev.Result.Err != nil {
			m.items[idx].status = "error"
			m.failed++
		} else {
			m.items[idx].status = "sent"
		}
	}
	if ev.Total == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(ev.Done) / float64(ev.Total))
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "sent":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
