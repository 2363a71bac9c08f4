package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/rcpack/internal/ui/style"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusCached    = "cached"
	statusFailed    = "failed"
)

// VertexState is the last known state of one pipeline stage.
type VertexState struct {
	ID      string
	Archive string
	Stage   string
	Status  string
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	cached    lipgloss.Style
	failed    lipgloss.Style
	archive   lipgloss.Style
}

// Model is the Bubble Tea model showing each archive with its stages.
type Model struct {
	tape     TapeSource
	title    string
	vertices []VertexState
	width    int
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a model reading updates from tape.
func NewModel(tape TapeSource, title string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Yellow)

	return &Model{
		tape:    tape,
		title:   title,
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(style.Yellow),
			completed: style.Success,
			cached:    style.Muted,
			failed:    style.Failure,
			archive:   lipgloss.NewStyle().Bold(true),
		},
	}
}

// Init starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		m.apply(msg.Update)
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	case MsgLogLine:
		return m, tea.Println(msg.Text)
	}
	return m, nil
}

func (m *Model) apply(update *progrock.StatusUpdate) {
	if update == nil {
		return
	}
	for _, v := range update.Vertexes {
		status := vertexStatus(v)
		if i := m.index(v.Id); i >= 0 {
			m.vertices[i].Status = status
			continue
		}
		archive, stage, _ := strings.Cut(v.Name, "/")
		m.vertices = append(m.vertices, VertexState{
			ID:      v.Id,
			Archive: archive,
			Stage:   stage,
			Status:  status,
		})
	}
}

func (m *Model) index(id string) int {
	for i, v := range m.vertices {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// A vertex recorded again in a later rebuild arrives without Completed and runs again.
func vertexStatus(v *progrock.Vertex) string {
	switch {
	case v.Completed == nil:
		return statusRunning
	case v.Error != nil:
		return statusFailed
	case v.Cached:
		return statusCached
	default:
		return statusCompleted
	}
}

// View renders archives in first-seen order with their stages beneath them.
func (m *Model) View() string {
	lines := []string{style.Title.Render(m.title) + style.Muted.Render("  q to quit")}

	var archives []string
	stages := make(map[string][]VertexState)
	for _, v := range m.vertices {
		if _, ok := stages[v.Archive]; !ok {
			archives = append(archives, v.Archive)
		}
		stages[v.Archive] = append(stages[v.Archive], v)
	}

	for _, name := range archives {
		lines = append(lines, m.styles.archive.Render(name))
		for _, v := range stages[name] {
			lines = append(lines, m.stageLine(v))
		}
	}

	// Keep the most recent lines when the terminal is too short.
	if m.height > 0 && len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m *Model) stageLine(v VertexState) string {
	var icon, suffix string
	var st lipgloss.Style
	switch v.Status {
	case statusRunning:
		icon = m.spinner.View()
		st = m.styles.running
	case statusCached:
		icon = style.Check
		st = m.styles.cached
		suffix = style.Muted.Render(" (cached)")
	case statusFailed:
		icon = style.Cross
		st = m.styles.failed
	default:
		icon = style.Check
		st = m.styles.completed
	}
	return fmt.Sprintf("  %s %s%s", st.Render(icon), v.Stage, suffix)
}
