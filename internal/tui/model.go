// Package tui is the interactive variant of the fuse pipeline: a form
// for the four resource locations and the audio canvas index, with
// copy and save actions over the produced document.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"scoresync/internal/home"
)

// Fuser fetches the four resources and runs the pipeline, returning
// the encoded document. Injected so each submit picks up the current
// configuration.
type Fuser func(ctx context.Context, refs []string, canvasIndex int) ([]byte, error)

type phase int

const (
	phaseForm phase = iota
	phaseRunning
	phaseResult
)

// KeyMap defines key bindings for the result view.
type KeyMap struct {
	Copy key.Binding
	Save key.Binding
	Back key.Binding
	Quit key.Binding
}

var Keys = KeyMap{
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var fieldLabels = []string{
	"Audio manifest URL",
	"Image manifest URL",
	"Temporal annotations URL",
	"Spatial annotations URL",
	"Audio canvas index",
}

// Config wires the model's dependencies.
type Config struct {
	Fuser       Fuser
	Home        *home.Dir
	CanvasIndex int
}

// Model is the bubbletea model for the interactive fuse session.
type Model struct {
	fuser   Fuser
	homeDir *home.Dir

	inputs  []textinput.Model
	focused int

	phase    phase
	spinner  spinner.Model
	document []byte
	err      error
	status   string

	width  int
	height int
}

type fuseDoneMsg struct{ data []byte }
type fuseErrMsg struct{ err error }

// New creates the model with the form focused on its first field.
func New(cfg Config) *Model {
	inputs := make([]textinput.Model, len(fieldLabels))
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 512
		in.Width = 72
		inputs[i] = in
	}
	inputs[0].Placeholder = "https://example.org/recording/manifest.json"
	inputs[1].Placeholder = "https://example.org/score/manifest.json"
	inputs[2].Placeholder = "https://example.org/annotations/temporal.json"
	inputs[3].Placeholder = "https://example.org/annotations/spatial.json"
	inputs[4].SetValue(strconv.Itoa(cfg.CanvasIndex))
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		fuser:   cfg.Fuser,
		homeDir: cfg.Home,
		inputs:  inputs,
		spinner: sp,
	}
}

// Run starts the interactive session and blocks until it exits.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init returns the blink command for the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the session.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fuseDoneMsg:
		m.phase = phaseResult
		m.document = msg.data
		m.err = nil
		m.status = ""
		return m, nil

	case fuseErrMsg:
		m.phase = phaseForm
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.phase {
		case phaseForm:
			return m.updateForm(msg)
		case phaseResult:
			return m.updateResult(msg)
		case phaseRunning:
			if key.Matches(msg, Keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		m.focusField((m.focused + 1) % len(m.inputs))
		return m, nil
	case "shift+tab", "up":
		m.focusField((m.focused + len(m.inputs) - 1) % len(m.inputs))
		return m, nil
	case "enter":
		if cmd, ok := m.submit(); ok {
			m.phase = phaseRunning
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, cmd)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Back):
		m.phase = phaseForm
		m.status = ""
		return m, nil
	case key.Matches(msg, Keys.Copy):
		if err := clipboard.WriteAll(string(m.document)); err != nil {
			m.status = fmt.Sprintf("copy failed: %v", err)
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil
	case key.Matches(msg, Keys.Save):
		path, err := m.save()
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "saved to " + path
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) focusField(index int) {
	m.inputs[m.focused].Blur()
	m.focused = index
	m.inputs[m.focused].Focus()
}

// submit validates the form and returns the fuse command.
func (m *Model) submit() (tea.Cmd, bool) {
	refs := make([]string, 4)
	for i := 0; i < 4; i++ {
		refs[i] = strings.TrimSpace(m.inputs[i].Value())
		if refs[i] == "" {
			m.err = fmt.Errorf("%s is required", fieldLabels[i])
			return nil, false
		}
	}
	index, err := strconv.Atoi(strings.TrimSpace(m.inputs[4].Value()))
	if err != nil {
		m.err = fmt.Errorf("canvas index must be an integer")
		return nil, false
	}

	fuser := m.fuser
	return func() tea.Msg {
		data, err := fuser(context.Background(), refs, index)
		if err != nil {
			return fuseErrMsg{err}
		}
		return fuseDoneMsg{data}
	}, true
}

// save writes the document under the home manifests directory.
func (m *Model) save() (string, error) {
	if err := m.homeDir.EnsureExists(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("fused-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(m.homeDir.ManifestsPath(), name)
	if err := os.WriteFile(path, m.document, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
