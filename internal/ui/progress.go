package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"csmerge/internal/buildpipeline"
)

// maxRows ограничивает список файлов: показываем последние.
const maxRows = 16

type progressModel struct {
	title      string
	baseDir    string
	events     <-chan buildpipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stagesDone map[buildpipeline.Stage]struct{}
	stageLabel string
	failed     bool
	width      int
	done       bool
}

type fileItem struct {
	path   string
	status string
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders merge progress.
// Files are listed as their events arrive; paths under baseDir are shown
// relative to it. The model quits when events is closed.
func NewProgressModel(title, baseDir string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	return &progressModel{
		title:      title,
		baseDir:    baseDir,
		events:     events,
		spinner:    sp,
		prog:       prog,
		index:      make(map[string]int),
		stagesDone: make(map[buildpipeline.Stage]struct{}),
		width:      80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := buildpipeline.Event(msg)
		cmd := m.applyEvent(ev)
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
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	switch {
	case m.done && m.failed:
		header = fmt.Sprintf("failed: %s", header)
	case m.done:
		header = fmt.Sprintf("done: %s", header)
	default:
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	items := m.items
	if hidden := len(items) - maxRows; hidden > 0 {
		fmt.Fprintf(&b, "  %12s %d more\n", "...", hidden)
		items = items[hidden:]
	}
	for _, item := range items {
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, name)
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

func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	if ev.Status == buildpipeline.StatusError {
		m.failed = true
	}
	if ev.File == "" {
		// события уровня стадии двигают общий прогресс
		switch ev.Status {
		case buildpipeline.StatusWorking:
			m.stageLabel = stageLabel(ev.Stage)
		case buildpipeline.StatusDone:
			m.stageLabel = ""
			m.stagesDone[ev.Stage] = struct{}{}
		case buildpipeline.StatusError:
			m.stageLabel = "error"
		}
		return m.prog.SetPercent(float64(len(m.stagesDone)) / float64(len(buildpipeline.Stages)))
	}

	label := statusLabel(ev.Stage, ev.Status)
	if ev.Stage == buildpipeline.StageClassify && ev.Status == buildpipeline.StatusDone && ev.Detail != "" {
		label = ev.Detail
	}
	if label == "" {
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		idx = len(m.items)
		m.index[ev.File] = idx
		m.items = append(m.items, fileItem{path: m.display(ev.File)})
	}
	m.items[idx].status = label
	return nil
}

func (m *progressModel) display(path string) string {
	if m.baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(m.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func statusLabel(stage buildpipeline.Stage, status buildpipeline.Status) string {
	switch status {
	case buildpipeline.StatusQueued:
		return "queued"
	case buildpipeline.StatusSkipped:
		return "skipped"
	case buildpipeline.StatusError:
		return "error"
	case buildpipeline.StatusWorking:
		return stageLabel(stage)
	case buildpipeline.StatusDone:
		return doneLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage buildpipeline.Stage) string {
	switch stage {
	case buildpipeline.StageDiscover:
		return "discovering"
	case buildpipeline.StageClassify:
		return "classifying"
	case buildpipeline.StageDecode:
		return "reading"
	case buildpipeline.StageParse:
		return "parsing"
	case buildpipeline.StageRewrite:
		return "rewriting"
	case buildpipeline.StageReconcile:
		return "reconciling"
	case buildpipeline.StageRender:
		return "rendering"
	case buildpipeline.StageWrite:
		return "writing"
	default:
		return ""
	}
}

func doneLabel(stage buildpipeline.Stage) string {
	switch stage {
	case buildpipeline.StageClassify:
		return "comment"
	case buildpipeline.StageDecode:
		return "read"
	case buildpipeline.StageParse:
		return "parsed"
	case buildpipeline.StageRewrite:
		return "internal"
	case buildpipeline.StageWrite:
		return "written"
	default:
		return "done"
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "parsed", "internal", "written", "comment", "version":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "skipped":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	case "queued":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
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
	// ширина tail входит в width
	return runewidth.Truncate(value, width, "...")
}
