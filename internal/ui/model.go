// Package ui is the terminal front end: queue, transport, waveform
// strip, and oscilloscope.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ostinato-player/ostinato/internal/analysis"
	"github.com/ostinato-player/ostinato/internal/config"
	"github.com/ostinato-player/ostinato/internal/player"
	"github.com/ostinato-player/ostinato/internal/waveform"
)

const seekStep = 5 * time.Second

// tickMsg drives transport updates and the oscilloscope refresh.
type tickMsg time.Time

// waveformMsg carries a finished background generation run.
type waveformMsg waveform.Result

// Model is the bubbletea model for the player session.
type Model struct {
	player *player.Player
	worker *waveform.Worker
	proc   *analysis.Processor

	queue   []string
	current int

	wave     []float32 // normalized strip for the current track, nil while pending
	waveErr  error
	smooth   bool
	scope    bool
	scopeBar []float64

	transport progress.Model
	width     int
	height    int
	err       error
	quitting  bool
}

// NewModel builds the session model. The queue must not be empty.
func NewModel(queue []string, settings config.Settings) *Model {
	bar := progress.New(
		progress.WithGradient(string(seaDeep), string(seaFoam)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	proc, _ := analysis.DefaultProcessor()
	return &Model{
		player: player.New(),
		worker: waveform.NewWorker(waveform.Options{
			Points: settings.WaveformLen,
			Budget: settings.SamplesPerPoint,
		}),
		proc:      proc,
		queue:     queue,
		current:   -1,
		smooth:    settings.SmoothWaveform,
		transport: bar,
	}
}

// Init starts the first track.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startTrack(0), tickCmd(), m.waitForWaveform())
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForWaveform blocks on the worker channel in a Cmd goroutine.
func (m *Model) waitForWaveform() tea.Cmd {
	return func() tea.Msg {
		return waveformMsg(<-m.worker.Results())
	}
}

// startTrack switches playback and kicks off waveform generation.
func (m *Model) startTrack(i int) tea.Cmd {
	if i < 0 || i >= len(m.queue) {
		return tea.Quit
	}
	m.current = i
	m.wave = nil
	m.waveErr = nil
	path := m.queue[i]
	if err := m.player.Play(path); err != nil {
		m.err = err
		return tea.Quit
	}
	m.worker.Request(path)
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.transport.Width = clampInt(msg.Width-20, 10, 60)
		return m, nil

	case tickMsg:
		if m.player.Finished() {
			if cmd := m.advance(); cmd != nil {
				return m, tea.Batch(cmd, tickCmd())
			}
		}
		if m.scope && m.proc != nil {
			window := m.player.Tap().Window(config.ScopeWindow)
			if bars, err := m.proc.Bars(window); err == nil {
				m.scopeBar = bars
			}
		}
		return m, tickCmd()

	case waveformMsg:
		// A stale result for a track we already left is ignored.
		if m.current >= 0 && msg.Path == m.queue[m.current] {
			m.wave = msg.Points
			m.waveErr = msg.Err
		}
		return m, m.waitForWaveform()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.player.Stop()
			return m, tea.Quit
		case " ":
			m.player.TogglePause()
		case "n":
			if cmd := m.advance(); cmd != nil {
				return m, cmd
			}
		case "left":
			// A refused seek just leaves the transport where it was.
			_ = m.player.SeekBy(-seekStep)
		case "right":
			_ = m.player.SeekBy(seekStep)
		case "w":
			m.smooth = !m.smooth
		case "o":
			m.scope = !m.scope
		}
	}
	return m, nil
}

// advance moves to the next queued track, quitting past the end.
func (m *Model) advance() tea.Cmd {
	if m.current+1 >= len(m.queue) {
		m.quitting = true
		m.player.Stop()
		return tea.Quit
	}
	return m.startTrack(m.current + 1)
}

// View renders the session.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var s strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(seaFoam).Render("Ostinato 🌊")
	s.WriteString(title)
	s.WriteString("\n\n")

	status := m.player.Status()
	name := "-"
	if m.current >= 0 {
		name = filepath.Base(m.queue[m.current])
	}
	s.WriteString(lipgloss.NewStyle().Foreground(seaLight).Render(name))
	s.WriteString("  ")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(
		"[%s]  %d of %d", status.State, m.current+1, len(m.queue))))
	s.WriteString("\n\n")

	// Transport line.
	s.WriteString(m.transport.ViewAs(status.Progress()))
	if status.Duration > 0 {
		s.WriteString(fmt.Sprintf("  %s / %s", formatClock(status.Elapsed), formatClock(status.Duration)))
	} else {
		s.WriteString(fmt.Sprintf("  %s", formatClock(status.Elapsed)))
	}
	s.WriteString("\n\n")

	s.WriteString(m.renderVisual())
	s.WriteString("\n\n")

	help := "space play/pause · n next · ←/→ seek · w waveform mode · o scope · q quit"
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(help))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(seaDeep).
		Padding(1, 2).
		Render(s.String())
}

func (m *Model) renderVisual() string {
	width := clampInt(m.width-8, 20, 100)

	if m.scope {
		label := lipgloss.NewStyle().Foreground(sandGray).Render("scope")
		return label + "\n" + RenderScope(m.scopeBar, width)
	}

	label := "waveform"
	if m.smooth {
		label = "waveform (smooth)"
	}
	header := lipgloss.NewStyle().Foreground(sandGray).Render(label)

	switch {
	case m.wave == nil && m.waveErr == nil:
		// Still generating; show the neutral strip meanwhile.
		return header + "\n" + RenderStripSmooth(waveform.Flat(width), width)
	case m.waveErr != nil || len(m.wave) == 0:
		return header + "\n" + RenderStripSmooth(waveform.Flat(width), width)
	case m.smooth:
		return header + "\n" + RenderStripSmooth(m.wave, width)
	default:
		return header + "\n" + RenderStrip(m.wave, width)
	}
}

// Err returns the fatal error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
