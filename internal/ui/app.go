package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/devinfo/internal/device"
	"github.com/five82/devinfo/internal/prefs"
	"github.com/five82/devinfo/internal/state"
)

// Feeder receives window sizes reported by Bubble Tea.
type Feeder interface {
	Feed(width, height int)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Reporter   *device.Reporter
	Feeder     Feeder // optional
	Store      *state.Store
	UserAgent  string
	ThemeName  string
	HideScreen bool
	PrefsPath  string
	Logger     *slog.Logger
}

// Model is the root application state for Bubble Tea. It owns one device
// observer, attached once the first frame has been laid out.
type Model struct {
	// Configuration
	ctx       context.Context
	reporter  *device.Reporter
	feeder    Feeder
	store     *state.Store
	prefsPath string
	logger    *slog.Logger
	observer  *device.Observer
	updates   chan device.Info
	copyFn    func(string) error

	// UI state
	theme      Theme
	keys       keyMap
	help       help.Model
	width      int
	height     int
	ready      bool
	showHelp   bool
	hideScreen bool
	flash      string

	// Data state
	snapshot state.Snapshot
}

// New creates a new Bubble Tea model and constructs its observer.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	record := store.Listener()
	updates := make(chan device.Info, 1)
	m := Model{
		ctx:        ctx,
		reporter:   opts.Reporter,
		feeder:     opts.Feeder,
		store:      store,
		prefsPath:  prefsPath,
		logger:     logger,
		updates:    updates,
		copyFn:     clipboard.WriteAll,
		theme:      GetTheme(opts.ThemeName),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		hideScreen: opts.HideScreen,
	}
	m.observer = opts.Reporter.NewObserver(func(info device.Info) {
		record(info)
		offer(updates, info)
	}, device.ObserverOptions{UserAgent: opts.UserAgent})
	m.snapshot = store.Snapshot()
	return m
}

// Observer returns the model's device observer.
func (m Model) Observer() *device.Observer {
	return m.observer
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, waitForInfoCmd(m.updates))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			// First layout commit: start observing.
			m.ready = true
			if m.observer.Attach() {
				m.logger.Debug("ui: observer attached", "id", m.observer.ID())
			}
		}
		if m.feeder != nil {
			m.feeder.Feed(msg.Width, msg.Height)
		}
		return m, nil

	case infoMsg:
		m.snapshot = m.store.Snapshot()
		return m, waitForInfoCmd(m.updates)

	case flashMsg:
		m.flash = string(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, broadcastCmd(m.reporter)

	case key.Matches(msg, m.keys.Copy):
		return m, copySnapshotCmd(m.copyFn, m.snapshot)

	case key.Matches(msg, m.keys.ToggleScreen):
		m.hideScreen = !m.hideScreen
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	}
	return m, nil
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, HideScreen: m.hideScreen}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("ui: save prefs failed", "error", err)
	}
}

// Messages

type infoMsg device.Info

type flashMsg string

// Commands

func waitForInfoCmd(updates <-chan device.Info) tea.Cmd {
	return func() tea.Msg {
		return infoMsg(<-updates)
	}
}

func broadcastCmd(r *device.Reporter) tea.Cmd {
	return func() tea.Msg {
		r.Broadcast()
		return nil
	}
}

func copySnapshotCmd(copyFn func(string) error, snap state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		if !snap.HasInfo {
			return flashMsg("nothing to copy yet")
		}
		data, err := json.MarshalIndent(snap.Info, "", "  ")
		if err != nil {
			return flashMsg(fmt.Sprintf("encode failed: %v", err))
		}
		if err := copyFn(string(data)); err != nil {
			return flashMsg(fmt.Sprintf("copy failed: %v", err))
		}
		return flashMsg("snapshot copied")
	}
}

// offer hands info to the UI, replacing any value it has not consumed yet.
func offer(ch chan device.Info, info device.Info) {
	for {
		select {
		case ch <- info:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Run starts the Bubble Tea program and detaches the observer on exit.
func Run(opts Options) error {
	m := New(opts)
	defer m.observer.Detach()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
