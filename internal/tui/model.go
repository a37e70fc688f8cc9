package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rootlab/vidscore/internal/commands"
	"github.com/rootlab/vidscore/internal/config"
	"github.com/rootlab/vidscore/internal/keybinds"
	"github.com/rootlab/vidscore/internal/playback"
	"github.com/rootlab/vidscore/internal/project"
	"github.com/rootlab/vidscore/internal/remote"
	"github.com/rootlab/vidscore/internal/scorelog"
	"github.com/rootlab/vidscore/internal/timestamps"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
	ModeStats
	ModeEvents
	ModeKeybindList
	ModeKeybindCapture
	ModeKeybindConflict
	ModeConfirmDelete
)

// Model represents the TUI state
type Model struct {
	// Core state
	registry *keybinds.Registry
	settings *project.Settings
	proj     *project.Project
	projPath string
	log      *timestamps.Log
	history  *commands.Stack
	playhead *playback.Playhead
	scores   *scorelog.Manager
	bridge   *remote.Server

	mode    Mode
	version string

	width  int
	height int

	// Scrollable panes
	helpView  viewport.Model
	statsView viewport.Model

	// Events mode
	eventIndex int

	// Playback tick loop
	tickGen int

	// Keybind editor
	keybindIndex  int
	captureAction keybinds.Action
	pendingChord  keybinds.Chord
	conflictOwner keybinds.Action

	statusMsg string
}

// tickMsg advances the playhead while playing. The generation is bumped on
// every play/pause transition; a tick from an older generation is stale and
// must be dropped, otherwise a pause/resume cycle would leave two tick loops
// running and double the playback rate.
type tickMsg struct {
	gen int
}

// remoteActionMsg carries an action dispatched by the remote bridge onto the
// UI loop.
type remoteActionMsg struct {
	action keybinds.Action
}

// Options configures a scoring session.
type Options struct {
	Project     *project.Project
	ProjectPath string
	Settings    *project.Settings
	Registry    *keybinds.Registry
	Scores      *scorelog.Manager
	Bridge      *remote.Server
	Version     string
}

// New creates a new TUI model
func New(opts Options) *Model {
	m := &Model{
		registry:   opts.Registry,
		settings:   opts.Settings,
		proj:       opts.Project,
		projPath:   opts.ProjectPath,
		log:        opts.Project.NewLog(),
		history:    commands.NewStack(),
		playhead:   playback.New(opts.Project.FrameCount, opts.Project.FPS),
		scores:     opts.Scores,
		bridge:     opts.Bridge,
		mode:       ModeNormal,
		version:    opts.Version,
		helpView:   viewport.New(80, 20),
		statsView:  viewport.New(80, 20),
		eventIndex: -1,
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width - 4
		m.helpView.Height = msg.Height - 6
		m.statsView.Width = msg.Width - 4
		m.statsView.Height = msg.Height - 6
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen || !m.playhead.Playing() {
			return m, nil
		}
		m.playhead.Advance()
		m.broadcast()
		if !m.playhead.Playing() {
			return m, nil
		}
		return m, m.tick()

	case remoteActionMsg:
		return m, m.applyAction(msg.action)
	}

	return m, nil
}

// tick schedules the next frame advance at the current playback speed.
func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.playhead.Interval(), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// broadcast pushes the current state to remote clients, if any.
func (m *Model) broadcast() {
	if m.bridge == nil {
		return
	}

	snap := remote.Snapshot{
		Project:    m.proj.Name,
		Frame:      m.playhead.Frame(),
		FrameCount: m.playhead.FrameCount(),
		Playing:    m.playhead.Playing(),
		Speed:      m.playhead.Speed(),
		Events:     m.log.Events(),
	}
	if onset, ok := m.log.PendingOnset(); ok {
		snap.PendingOnset = &onset
	}
	m.bridge.Broadcast(snap)
}

// saveAll persists the project file, the score log, and the keybinds.
func (m *Model) saveAll() {
	m.proj.Events = m.log.Events()
	if m.projPath != "" {
		if err := m.proj.Save(m.projPath); err != nil {
			m.statusMsg = fmt.Sprintf("Failed to save project: %v", err)
		}
	}
	if m.scores != nil {
		if err := m.scores.ReplaceProject(m.proj.Name, m.proj.VideoFile, m.log.Kind(), m.log.Events()); err != nil {
			m.statusMsg = fmt.Sprintf("Failed to save score log: %v", err)
		}
	}
}

// saveKeybinds persists the registry after a successful rebind.
func (m *Model) saveKeybinds() {
	if config.KeybindsFile == "" {
		return
	}
	if err := keybinds.SaveRegistry(m.registry, config.KeybindsFile); err != nil {
		m.statusMsg = fmt.Sprintf("Failed to save keybinds: %v", err)
	}
}

// Cleanup releases session resources before quitting.
func (m *Model) Cleanup() {
	m.saveAll()
	if m.bridge != nil {
		m.bridge.Close()
	}
}

// Run starts the TUI for a scoring session.
func Run(opts Options) error {
	if os.Getenv("VIDSCORE_DEBUG") != "" && config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	m := New(opts)

	p := tea.NewProgram(m, tea.WithAltScreen())

	if opts.Bridge != nil {
		// Remote commands land on the UI loop as messages; dispatch itself
		// happens in Update, never on the bridge goroutine.
		opts.Bridge.SetDispatch(func(a keybinds.Action) {
			p.Send(remoteActionMsg{action: a})
		})
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
