package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hilite/internal/driver"
)

// itemStatus is what the list shows next to a file.
type itemStatus uint8

const (
	statusQueued itemStatus = iota
	statusLoading
	statusCache
	statusDecorating
	statusParsed
	statusCached
	statusFailed
)

var statusNames = [...]string{"queued", "loading", "cache", "decorating", "done", "cached", "error"}

func (s itemStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "?"
}

func (s itemStatus) finished() bool {
	return s >= statusParsed
}

// share of one file's work a running stage stands for
func (s itemStatus) weight() float64 {
	switch s {
	case statusLoading:
		return 0.1
	case statusCache:
		return 0.3
	case statusDecorating:
		return 0.5
	default:
		if s.finished() {
			return 1
		}
		return 0
	}
}

var statusStyles = map[itemStatus]lipgloss.Style{
	statusParsed:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	statusCached:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	statusFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	statusLoading:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	statusCache:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	statusDecorating: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
}

type fileItem struct {
	path    string
	status  itemStatus
	elapsed time.Duration
	err     error
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	index   map[string]int
	// stage of the whole run, from events without a file
	runStage string
	width    int
	done     bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders decoration
// progress for files. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		items:   make([]fileItem, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
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
			m.bar.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.runStage != "" {
		header += " (" + m.runStage + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")

	// статус 12 + время 9 + отступы
	nameWidth := max(m.width-25, 20)
	for _, item := range m.items {
		style, ok := statusStyles[item.status]
		if !ok {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		}
		status := style.Render(fmt.Sprintf("%12s", item.status))
		elapsed := strings.Repeat(" ", 9)
		if item.status == statusParsed || item.status == statusCached {
			elapsed = fmt.Sprintf("%7.1fms", float64(item.elapsed)/float64(time.Millisecond))
		}
		fmt.Fprintf(&b, "  %s %s %s\n", status, elapsed, truncate(item.path, nameWidth))
		if item.err != nil {
			fmt.Fprintf(&b, "  %12s %s\n", "", truncate(item.err.Error(), nameWidth+10))
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	return b.String()
}

// summary - строка итогов под прогресс-баром
func (m *progressModel) summary() string {
	var parsed, cached, failed int
	for _, item := range m.items {
		switch item.status {
		case statusParsed:
			parsed++
		case statusCached:
			cached++
		case statusFailed:
			failed++
		}
	}
	return fmt.Sprintf("%d/%d files: %d parsed, %d cached, %d failed",
		parsed+cached+failed, len(m.items), parsed, cached, failed)
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	status, ok := statusOf(ev)
	if ev.File == "" {
		if ok {
			m.runStage = status.String()
		}
		return nil
	}
	idx, known := m.index[ev.File]
	if !known || !ok {
		return nil
	}
	item := &m.items[idx]
	// поздние события не откатывают завершённый файл
	if item.status.finished() && !status.finished() {
		return nil
	}
	item.status = status
	item.elapsed = ev.Elapsed
	item.err = ev.Err
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		total += item.status.weight()
	}
	return total / float64(len(m.items))
}

func statusOf(ev driver.Event) (itemStatus, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return statusQueued, true
	case driver.StatusDone:
		if ev.Cached {
			return statusCached, true
		}
		return statusParsed, true
	case driver.StatusError:
		return statusFailed, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return statusLoading, true
		case driver.StageCache:
			return statusCache, true
		case driver.StageDecorate:
			return statusDecorating, true
		}
	}
	return statusQueued, false
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
