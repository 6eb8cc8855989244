package tui

import (
	"fmt"
	"os"
	"path"
	"strings"

	"imgspace/internal/domain"
	appErrors "imgspace/internal/errors"
	"imgspace/internal/presentation"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseBrowse
	PhaseConfirmDelete
	PhaseRenaming
	PhaseMoving
	PhaseError
)

// Messages for the TUI
type (
	ScanProgressMsg struct {
		Current int
		Total   int
	}
	ScanDoneMsg struct {
		Images []domain.ImageFile
	}
	// MutationDoneMsg reports a finished move, rename or delete. Path is the
	// file to select after the rescan, empty after a delete.
	MutationDoneMsg struct {
		Summary string
		Path    string
	}
	// MutationFailedMsg keeps the browser open and shows the error.
	MutationFailedMsg struct {
		Err error
	}
	// ErrorMsg is fatal: the workspace could not be listed.
	ErrorMsg struct {
		Err error
	}
)

// The callbacks run the actual filesystem work. Each returns a command that
// ends with ScanDoneMsg, MutationDoneMsg, MutationFailedMsg or ErrorMsg.
type (
	ScanFunc   func() tea.Cmd
	DeleteFunc func(relativePath string) tea.Cmd
	RenameFunc func(relativePath, newName string) tea.Cmd
	MoveFunc   func(relativePath, newPath string) tea.Cmd
)

// Config for the TUI
type Config struct {
	WorkspacePath string
	Verbose       bool
	Scan          ScanFunc
	Delete        DeleteFunc
	Rename        RenameFunc
	Move          MoveFunc
}

// Model is the main TUI model
type Model struct {
	config           Config
	Phase            Phase
	Images           []domain.ImageFile
	Cursor           int
	spinner          spinner.Model
	progress         progress.Model
	input            textinput.Model
	scanCurrent      int
	scanTotal        int
	confirmSelection bool // true = yes, false = no
	selectAfterScan  string
	Status           string
	StatusErr        error
	Err              error
	Quitting         bool
	width            int
	height           int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	ti := textinput.New()
	ti.Prompt = iconArrow + " "
	ti.CharLimit = 255
	ti.Width = 50

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		input:    ti,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scan())
}

func (m Model) scan() tea.Cmd {
	if m.config.Scan == nil {
		return nil
	}
	return m.config.Scan()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		m.input.Width = min(msg.Width-10, 60)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case ScanProgressMsg:
		m.scanCurrent = msg.Current
		m.scanTotal = msg.Total
		return m, nil

	case ScanDoneMsg:
		m.Images = msg.Images
		m.Phase = PhaseBrowse
		m.Cursor = m.indexAfterScan()
		m.selectAfterScan = ""
		m.scanCurrent, m.scanTotal = 0, 0
		return m, nil

	case MutationDoneMsg:
		m.Status = msg.Summary
		m.StatusErr = nil
		m.selectAfterScan = msg.Path
		m.Phase = PhaseScanning
		return m, tea.Batch(m.spinner.Tick, m.scan())

	case MutationFailedMsg:
		m.Phase = PhaseBrowse
		m.Status = ""
		m.StatusErr = msg.Err
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	if m.Phase == PhaseRenaming || m.Phase == PhaseMoving {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Phase {
	case PhaseBrowse:
		return m.handleBrowseKey(msg)
	case PhaseConfirmDelete:
		return m.handleConfirmKey(msg)
	case PhaseRenaming, PhaseMoving:
		return m.handleInputKey(msg)
	case PhaseScanning:
		if msg.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}
	case PhaseError:
		switch msg.String() {
		case "q", "enter", "esc":
			m.Quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Images)-1 {
			m.Cursor++
		}
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		m.Cursor = max(len(m.Images)-1, 0)
	case "s":
		m.Phase = PhaseScanning
		m.selectAfterScan = m.selectedPath()
		return m, tea.Batch(m.spinner.Tick, m.scan())
	case "d":
		if _, ok := m.Selected(); ok {
			m.Phase = PhaseConfirmDelete
			m.confirmSelection = false
		}
	case "r":
		if image, ok := m.Selected(); ok {
			m.Phase = PhaseRenaming
			cmd := m.startInput(image.Name)
			return m, cmd
		}
	case "m":
		if image, ok := m.Selected(); ok {
			m.Phase = PhaseMoving
			cmd := m.startInput(image.RelativePath)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.Phase = PhaseBrowse
	case "left", "h", "y", "Y":
		m.confirmSelection = true
	case "right", "l", "n", "N":
		m.confirmSelection = false
	case "enter":
		m.Phase = PhaseBrowse
		image, ok := m.Selected()
		if !m.confirmSelection || !ok || m.config.Delete == nil {
			return m, nil
		}
		return m, m.config.Delete(image.RelativePath)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Phase = PhaseBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		phase := m.Phase
		value := strings.TrimSpace(m.input.Value())
		m.Phase = PhaseBrowse
		m.input.Blur()

		image, ok := m.Selected()
		if !ok || value == "" {
			return m, nil
		}
		if phase == PhaseRenaming {
			if value == image.Name || m.config.Rename == nil {
				return m, nil
			}
			return m, m.config.Rename(image.RelativePath, value)
		}
		if value == image.RelativePath || m.config.Move == nil {
			return m, nil
		}
		return m, m.config.Move(image.RelativePath, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startInput(value string) tea.Cmd {
	m.StatusErr = nil
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Selected returns the image under the cursor.
func (m Model) Selected() (domain.ImageFile, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Images) {
		return domain.ImageFile{}, false
	}
	return m.Images[m.Cursor], true
}

func (m Model) selectedPath() string {
	if image, ok := m.Selected(); ok {
		return image.RelativePath
	}
	return ""
}

// indexAfterScan keeps the cursor on the requested file when it is still
// listed, otherwise clamps the old position into range.
func (m Model) indexAfterScan() int {
	if m.selectAfterScan != "" {
		for i, image := range m.Images {
			if image.RelativePath == m.selectAfterScan {
				return i
			}
		}
	}
	if m.Cursor >= len(m.Images) {
		return max(len(m.Images)-1, 0)
	}
	return m.Cursor
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(m.renderScanning())
	case PhaseBrowse:
		b.WriteString(m.renderBrowser())
		b.WriteString(m.renderStatus())
	case PhaseConfirmDelete:
		b.WriteString(m.renderBrowser())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmPrompt())
	case PhaseRenaming:
		b.WriteString(m.renderBrowser())
		b.WriteString("\n")
		b.WriteString(m.renderInput("New name"))
	case PhaseMoving:
		b.WriteString(m.renderBrowser())
		b.WriteString("\n")
		b.WriteString(m.renderInput("Move to"))
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconImage + " imgspace")
	subtitle := subtitleStyle.Render("Browse and tidy a folder of images")

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Workspace: %s", iconFolder, shortenPath(m.config.WorkspacePath))),
	)
}

func (m Model) renderScanning() string {
	if m.scanTotal > 0 {
		percent := float64(m.scanCurrent) / float64(m.scanTotal)
		progressBar := m.progress.ViewAs(percent)

		countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
		percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)

		return fmt.Sprintf("%s Scanning images...\n\n  %s\n  %s %s",
			m.spinner.View(),
			progressBar,
			countStyle.Render(fmt.Sprintf("%d/%d", m.scanCurrent, m.scanTotal)),
			percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
		)
	}
	return fmt.Sprintf("%s Scanning images...", m.spinner.View())
}

func (m Model) renderBrowser() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Images (%d)", len(m.Images))))
	b.WriteString("\n\n")

	if len(m.Images) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
		b.WriteString(dimStyle.Render("  No images in this workspace"))
		b.WriteString("\n")
		return b.String()
	}

	start, end := visibleRange(m.Cursor, len(m.Images), m.listHeight())
	if start > 0 {
		b.WriteString(helpLineStyle.Render(fmt.Sprintf("  ... %d above", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(formatImageRow(m.Images[i], i == m.Cursor))
		b.WriteString("\n")
	}
	if end < len(m.Images) {
		b.WriteString(helpLineStyle.Render(fmt.Sprintf("  ... %d below", len(m.Images)-end)))
		b.WriteString("\n")
	}

	if image, ok := m.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(m.renderDetails(image))
	}

	return b.String()
}

func (m Model) renderDetails(image domain.ImageFile) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Details"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render(label), statValueStyle.Render(value)))
	}
	row("Name:", image.Name)
	row("Path:", image.RelativePath)
	row("Size:", presentation.FormatSize(image.FileSize))
	row("Created:", image.CreatedAt.Format("2006-01-02 15:04"))
	row("Modified:", image.ModifiedAt.Format("2006-01-02 15:04"))
	if image.TakenAt != nil {
		row("Taken:", image.TakenAt.Format("2006-01-02 15:04"))
	}

	return b.String()
}

func (m Model) renderStatus() string {
	switch {
	case m.StatusErr != nil:
		return "\n" + errorStyle.Render(fmt.Sprintf("%s %s", iconError, appErrors.UserMessage(m.StatusErr))) + "\n"
	case m.Status != "":
		return "\n" + successStyle.Render(fmt.Sprintf("%s %s", iconSuccess, m.Status)) + "\n"
	}
	return ""
}

func (m Model) renderConfirmPrompt() string {
	name := ""
	if image, ok := m.Selected(); ok {
		name = image.RelativePath
	}
	prompt := confirmPromptStyle.Render(fmt.Sprintf("%s Permanently delete %s?", iconDelete, name))

	var yesBtn, noBtn string
	if m.confirmSelection {
		yesBtn = highlightBoxStyle.
			Background(lipgloss.Color("#5A2727")).
			Render(" Yes ")
		noBtn = boxStyle.Render(" No ")
	} else {
		yesBtn = boxStyle.Render(" Yes ")
		noBtn = highlightBoxStyle.
			Background(lipgloss.Color("#2D5A27")).
			Render(" No ")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesBtn, "  ", noBtn)

	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", buttons)
}

func (m Model) renderInput(label string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		confirmPromptStyle.Render(label),
		"",
		"  "+m.input.View(),
	)
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", appErrors.UserMessage(m.Err)))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning:
		help = "Press q to quit"
	case PhaseBrowse:
		help = "↑/↓ to move • r rename • m move • d delete • s rescan • q to quit"
	case PhaseConfirmDelete:
		help = "← → or y/n to select • Enter to confirm • Esc to cancel"
	case PhaseRenaming, PhaseMoving:
		help = "Enter to apply • Esc to cancel"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func (m Model) listHeight() int {
	return max(m.height-22, 5)
}

// visibleRange returns the window [start, end) of a list of total rows that
// keeps cursor in view with at most size rows.
func visibleRange(cursor, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

func formatImageRow(image domain.ImageFile, selected bool) string {
	dir := path.Dir(image.RelativePath)
	location := ""
	if dir != "." {
		location = pathStyle.Render(dir + "/")
	}

	if selected {
		return fmt.Sprintf("%s %s%s  %s", selectedStyle.Render(iconSelected), location,
			selectedStyle.Render(image.Name), dateStyle.Render(presentation.FormatSize(image.FileSize)))
	}
	return fmt.Sprintf("  %s%s  %s", location, fileNameStyle.Render(image.Name),
		dateStyle.Render(presentation.FormatSize(image.FileSize)))
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
