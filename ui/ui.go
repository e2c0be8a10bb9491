// Package ui implements the terminal front end: a Bubble Tea program
// that renders the paced chunk display and drives the playback session.
package ui

import (
	"context"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/skimreader/skim/reader"
)

// noteDuration is how long a transient status note stays visible.
const noteDuration = 2 * time.Second

type model struct {
	cfg      Config
	session  *reader.Session
	document string

	keys     keyMap
	help     help.Model
	progress progress.Model
	spinner  spinner.Model

	width  int
	height int

	showPreview bool
	preview     string

	note   string
	noteID int

	watcher *fsnotify.Watcher

	quitting bool
}

// NewProgram builds the Bubble Tea program around an already-started
// session. The document has been submitted before the program runs, so
// the first update arrives through the session subscription.
func NewProgram(cfg Config, session *reader.Session, document string) *tea.Program {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	m := model{
		cfg:      cfg,
		session:  session,
		document: document,
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}

	if cfg.Watch && cfg.Path != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Debug("file watcher unavailable", "err", err)
		} else if err := watcher.Add(cfg.Path); err != nil {
			log.Debug("cannot watch source file", "path", cfg.Path, "err", err)
			watcher.Close()
		} else {
			m.watcher = watcher
		}
	}

	return tea.NewProgram(m, opts...)
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForUpdate(), m.spinner.Tick}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForFileEvent())
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width-8, 64)
		m.preview = "" // re-render at the new width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionUpdateMsg:
		return m, m.waitForUpdate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fileChangedMsg:
		log.Debug("source file changed", "path", msg.path)
		cmds := []tea.Cmd{m.waitForFileEvent(), m.resubmitFile(msg.path)}
		return m, tea.Batch(cmds...)

	case watchErrMsg:
		log.Debug("file watcher stopped", "err", msg.err)
		return m, nil

	case documentReloadedMsg:
		m.document = msg.document
		m.preview = ""
		return m, nil

	case resubmitErrMsg:
		return m.setNote("reload failed: " + msg.err.Error())

	case noteExpiredMsg:
		if msg.id == m.noteID {
			m.note = ""
		}
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		if m.watcher != nil {
			m.watcher.Close()
		}
		m.session.Reset()
		return m, tea.Quit

	case key.Matches(msg, keys.PlayPause):
		m.session.TogglePlay()

	case key.Matches(msg, keys.Prev):
		m.session.Prev()

	case key.Matches(msg, keys.Next):
		m.session.Next()

	case key.Matches(msg, keys.SlowDown):
		cfg := m.session.Timing()
		cfg.BaseWPM = reader.PrevWPM(cfg.BaseWPM)
		m.session.SetTiming(cfg)

	case key.Matches(msg, keys.SpeedUp):
		cfg := m.session.Timing()
		cfg.BaseWPM = reader.NextWPM(cfg.BaseWPM)
		m.session.SetTiming(cfg)

	case key.Matches(msg, keys.Restart):
		return m, m.resubmit(m.document)

	case key.Matches(msg, keys.Copy):
		snap := m.session.Snapshot()
		if snap.Current == nil {
			return m, nil
		}
		if err := clipboard.WriteAll(snap.Current.Text); err != nil {
			return m.setNote("copy failed")
		}
		return m.setNote("copied")

	case key.Matches(msg, keys.Preview):
		m.showPreview = !m.showPreview
		if m.showPreview && m.preview == "" {
			m.preview = m.renderPreview()
		}

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// waitForUpdate subscribes to the next session snapshot change.
func (m model) waitForUpdate() tea.Cmd {
	updates := m.session.Updates()
	return func() tea.Msg {
		<-updates
		return sessionUpdateMsg{}
	}
}

// waitForFileEvent blocks on the next relevant watcher event.
func (m model) waitForFileEvent() tea.Cmd {
	watcher := m.watcher
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return watchErrMsg{err: fsnotify.ErrEventOverflow}
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					return fileChangedMsg{path: event.Name}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return watchErrMsg{err: fsnotify.ErrEventOverflow}
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// resubmitFile reloads the document from disk and re-runs segmentation.
func (m model) resubmitFile(path string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return resubmitErrMsg{err: err}
		}
		if err := session.ProcessDocument(context.Background(), string(data)); err != nil {
			return resubmitErrMsg{err: err}
		}
		return documentReloadedMsg{document: string(data)}
	}
}

// resubmit re-runs segmentation on the in-memory document.
func (m model) resubmit(document string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		if err := session.ProcessDocument(context.Background(), document); err != nil {
			return resubmitErrMsg{err: err}
		}
		return nil
	}
}

// setNote shows a transient note in the status line.
func (m model) setNote(text string) (tea.Model, tea.Cmd) {
	m.note = text
	m.noteID++
	id := m.noteID
	return m, tea.Tick(noteDuration, func(time.Time) tea.Msg {
		return noteExpiredMsg{id: id}
	})
}
