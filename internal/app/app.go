// Package app is the terminal shell: a source input, one waveform row and
// gain meter per stem, and a transport bar, all driven by a stems session.
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/stems/internal/keymap"
	"github.com/llehouerou/stems/internal/notify"
	"github.com/llehouerou/stems/internal/state"
	"github.com/llehouerou/stems/internal/stems"
	"github.com/llehouerou/stems/internal/ui/styles"
)

// Options configures a Model.
type Options struct {
	Session       Session
	Notifier      notify.Notifier // nil disables notifications
	Source        string          // loaded on start when set
	StderrLines   <-chan string   // captured audio backend output, may be nil
	Notifications bool
	State         state.Interface // source history, may be nil
}

// Model is the root application model.
type Model struct {
	session Session
	sub     *stems.Subscription
	keys    *keymap.Resolver
	state   state.Interface

	notifier             notify.Notifier
	notificationsEnabled bool
	lastNotificationID   uint32
	notifiedGeneration   uint64

	input        textinput.Model
	inputFocused bool
	history      []string // loaded sources, most recent first
	historyIdx   int      // -1 while editing a fresh value
	draft        string
	spinner      spinner.Model
	spinning     bool
	showHelp     bool

	snapshot stems.Snapshot
	cursor   int
	muted    map[string]float64 // stem name -> gain before muting
	peaks    map[string][]float64
	peakCols int

	initialSource string
	stderrLines   <-chan string

	status    string
	statusErr bool
	warning   string

	width  int
	height int
}

// New creates the shell model and subscribes it to the session.
func New(opts Options) Model {
	in := textinput.New()
	in.Placeholder = "https://www.youtube.com/watch?v=..."
	in.Prompt = "› "
	in.CharLimit = 2048
	in.PromptStyle = styles.T().S().Playing
	in.TextStyle = styles.T().S().Base

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.T().Secondary)

	m := Model{
		session:              opts.Session,
		sub:                  opts.Session.Subscribe(),
		keys:                 keymap.NewResolver(keymap.Bindings),
		state:                opts.State,
		notifier:             opts.Notifier,
		notificationsEnabled: opts.Notifications,
		input:                in,
		spinner:              sp,
		muted:                make(map[string]float64),
		peaks:                make(map[string][]float64),
		historyIdx:           -1,
		initialSource:        opts.Source,
		stderrLines:          opts.StderrLines,
		status:               "Enter a YouTube URL to separate it into stems.",
	}
	if opts.Source == "" {
		m.inputFocused = true
		m.input.Focus()
		m.loadHistory()
		if len(m.history) > 0 {
			m.input.SetValue(m.history[0])
			m.input.CursorEnd()
		}
	} else {
		m.loadHistory()
		m.input.SetValue(opts.Source)
	}
	m.snapshot = m.session.Snapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		TickCmd(),
		WatchSessionEvents(m.sub),
		WatchStderr(m.stderrLines),
	}
	if m.inputFocused {
		cmds = append(cmds, textinput.Blink)
	}
	if m.initialSource != "" {
		m.session.RequestLoad(m.initialSource)
	}
	return tea.Batch(cmds...)
}
