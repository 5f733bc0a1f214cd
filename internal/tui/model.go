package tui

import (
	"fmt"
	"os"
	"strings"

	"mojiport/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase is the pipeline stage the view is currently rendering.
type Phase int

const (
	PhaseListing Phase = iota
	PhaseDownloading
	PhaseUploading
	PhaseDone
	PhaseError
)

// Messages sent by the pipeline goroutine
type (
	InventoryMsg struct {
		Count int
	}
	DownloadProgressMsg struct {
		Current int
		Total   int
		Name    string
	}
	DownloadDoneMsg struct {
		Saved  int
		Failed int
	}
	UploadProgressMsg struct {
		Current int
		Total   int
		Name    string
	}
	DoneMsg struct {
		Report domain.ExportReport
	}
	ErrorMsg struct {
		Err error
	}
)

// Config seeds the static parts of the view.
type Config struct {
	Team      string
	OutputDir string
	Verbose   bool
}

// Model renders the export pipeline's progress. Err and Quitting are read by
// the command after the program exits.
type Model struct {
	config      Config
	Phase       Phase
	Report      domain.ExportReport
	spinner     spinner.Model
	progress    progress.Model
	listed      int
	dlCurrent   int
	dlTotal     int
	dlSaved     int
	dlFailed    int
	upCurrent   int
	upTotal     int
	currentName string
	Err         error
	Quitting    bool
	width       int
	height      int
}

func NewModel(cfg Config) Model {
	return Model{
		config: cfg,
		Phase:  PhaseListing,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(spinnerStyle),
		),
		progress: progress.New(
			progress.WithGradient("#36C5F0", "#2EB67D"),
			progress.WithWidth(54),
			progress.WithoutPercentage(),
		),
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = min(msg.Width-16, 54)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			// leave the summary on screen, so no Quitting here
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case InventoryMsg:
		m.listed = msg.Count
		m.Phase = PhaseDownloading
		return m, nil

	case DownloadProgressMsg:
		m.dlCurrent = msg.Current
		m.dlTotal = msg.Total
		m.currentName = msg.Name
		return m, nil

	case DownloadDoneMsg:
		m.dlSaved = msg.Saved
		m.dlFailed = msg.Failed
		m.upTotal = msg.Saved
		m.currentName = ""
		m.Phase = PhaseUploading
		return m, nil

	case UploadProgressMsg:
		m.upCurrent = msg.Current
		m.upTotal = msg.Total
		m.currentName = msg.Name
		return m, nil

	case DoneMsg:
		m.Report = msg.Report
		m.Phase = PhaseDone
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseListing || m.Phase == PhaseDownloading || m.Phase == PhaseUploading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseListing:
		b.WriteString(m.renderListing())
	case PhaseDownloading:
		b.WriteString(m.renderDownloading())
	case PhaseUploading:
		b.WriteString(m.renderUploading())
	case PhaseDone:
		b.WriteString(m.renderCompletion())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(iconEmoji+" Mojiport"),
		subtitleStyle.Render("Move custom emoji between workspaces"),
		"",
		dimStyle.Render(fmt.Sprintf("%s Destination: %s", iconArrow, m.config.Team)),
		dimStyle.Render(fmt.Sprintf("%s Images: %s", iconFolder, displayPath(m.config.OutputDir))),
	)
}

func (m Model) renderListing() string {
	return fmt.Sprintf("%s Listing custom emoji...", m.spinner.View())
}

func (m Model) renderDownloading() string {
	header := fmt.Sprintf("%s Downloading %d images...", m.spinner.View(), m.listed)
	if m.dlTotal == 0 {
		return header
	}
	return header + "\n\n" + m.renderProgress(m.dlCurrent, m.dlTotal)
}

func (m Model) renderUploading() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s Downloaded %d images (%d failed)", iconSuccess, m.dlSaved, m.dlFailed)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s Uploading...", m.spinner.View()))
	if m.upTotal > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderProgress(m.upCurrent, m.upTotal))
	}
	return b.String()
}

func (m Model) renderProgress(current, total int) string {
	percent := float64(current) / float64(total)

	var b strings.Builder
	b.WriteString("  " + m.progress.ViewAs(percent) + "\n")
	b.WriteString(fmt.Sprintf("  %s %s",
		statValueStyle.Render(fmt.Sprintf("%d/%d", current, total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))
	if m.currentName != "" {
		b.WriteString(fmt.Sprintf("\n\n  %s %s", iconArrow, itemNameStyle.Render(m.currentName)))
	}
	return b.String()
}

func (m Model) renderCompletion() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Export Complete"))
	b.WriteString("\n\n")

	report := m.Report
	failedUploads := report.Upload.FailedNames()
	if len(report.Download.Failed) == 0 && len(failedUploads) == 0 {
		b.WriteString(fmt.Sprintf("  %s\n\n",
			successStyle.Render(iconSuccess+" Every emoji made it across!")))
	}

	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Listed:"), statValueStyle.Render(fmt.Sprintf("%d", report.Listed))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Downloaded:"), statValueStyle.Render(fmt.Sprintf("%d", len(report.Download.Assets)))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Uploaded:"), successStyle.Render(fmt.Sprintf("%s %d", iconSuccess, report.Upload.Uploaded()))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Skipped:"), dimStyle.Render(fmt.Sprintf("%s %d (already present)", iconSkipped, report.Upload.Skipped()))))

	failures := len(report.Download.Failed) + len(failedUploads)
	if failures > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%s %d", iconError, failures))))
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Failed items"))
		b.WriteString("\n")
		names := append(append([]string{}, report.Download.Failed...), failedUploads...)
		for i, name := range names {
			if i >= 4 {
				b.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-4))
				break
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", errorStyle.Render(iconError), itemNameStyle.Render(name)))
		}
	}

	return b.String()
}

func (m Model) renderError() string {
	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(errorStyle.Render(fmt.Sprintf("%s %v", iconError, m.Err)))
}

func (m Model) renderHelp() string {
	switch m.Phase {
	case PhaseUploading:
		return helpStyle.Render("uploads are paced to avoid rate limits, this can take a while")
	case PhaseDone, PhaseError:
		return helpStyle.Render("enter or q closes")
	default:
		return helpStyle.Render("q aborts the run")
	}
}

// displayPath swaps the home directory prefix for ~.
func displayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if rest, ok := strings.CutPrefix(path, home); ok {
		return "~" + rest
	}
	return path
}
