package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zeebo/blake3"

	"github.com/tickwise/base64-stream/buffer"
	"github.com/tickwise/base64-stream/chunk"
	"github.com/tickwise/base64-stream/codec"
	"github.com/tickwise/base64-stream/round"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// codecTask is the round-driving surface shared by encode and decode tasks.
type codecTask interface {
	Step(ctx context.Context) (round.Status, error)
	Progress() (done, total int)
	Rounds() int
}

type interactiveModel struct {
	err     error
	path    textinput.Model
	prog    progress.Model
	enc     *codec.Encoder
	dec     *codec.Decoder
	task    codecTask
	tuning  codec.Tuning
	decode  bool
	name    string
	summary string
	done    int
	total   int
	state   modelState
}

type modelState int

const (
	statePickFile modelState = iota
	stateRunning
	stateDone
)

func newInteractiveModel(input string, decode bool, tuning codec.Tuning) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/file"
	ti.Prompt = "file: "
	ti.Width = 40
	ti.Focus()
	if input != "-" {
		ti.SetValue(input)
	}

	return &interactiveModel{
		path:   ti,
		prog:   progress.New(progress.WithDefaultGradient()),
		tuning: tuning,
		decode: decode,
		state:  statePickFile,
	}
}

type startedMsg struct {
	err  error
	task codecTask
}

type stepMsg struct {
	err    error
	status round.Status
	done   int
	total  int
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// startSession reads the chosen file and opens a fresh codec session over
// it. Sessions are single-use, so every run gets its own.
func (m *interactiveModel) startSession() tea.Msg {
	data, err := os.ReadFile(m.name)
	if err != nil {
		return startedMsg{err: err}
	}

	if m.decode {
		src := chunk.NewWithLimit(m.tuning.ChunkLimit)
		src.Append(stripSpace(string(data)))
		m.dec = codec.NewDecoderWithTuning(m.tuning)
		return startedMsg{task: m.dec.ConsumeTask(src)}
	}

	m.enc = codec.NewEncoderWithTuning(m.tuning)
	return startedMsg{task: m.enc.ConsumeTask(buffer.FromBytes(data))}
}

// stepOnce runs exactly one bounded round. The next round is scheduled
// only after the resulting stepMsg has passed through Update, so the UI
// repaints between rounds.
func (m *interactiveModel) stepOnce() tea.Msg {
	status, err := m.task.Step(context.Background())
	done, total := m.task.Progress()
	return stepMsg{status: status, err: err, done: done, total: total}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.releaseSession()
			return m, tea.Quit

		case "q":
			// plain q types into the path prompt
			if m.state != statePickFile {
				m.releaseSession()
				return m, tea.Quit
			}

		case "enter":
			if m.state == statePickFile {
				m.name = strings.TrimSpace(m.path.Value())
				if m.name == "" {
					return m, nil
				}
				m.state = stateRunning
				m.done = 0
				m.total = 0
				return m, m.startSession
			}

		case "esc":
			if m.state == stateDone {
				m.reset()
			}
		}

	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateDone
			return m, nil
		}
		m.task = msg.task
		return m, m.stepOnce

	case stepMsg:
		m.done = msg.done
		m.total = msg.total
		if msg.err != nil {
			m.err = msg.err
			m.state = stateDone
			return m, nil
		}
		if msg.status == round.StatusContinue {
			return m, m.stepOnce
		}
		m.finalize()
		m.state = stateDone
	}

	if m.state == statePickFile {
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}

	return m, nil
}

// finalize closes the session and builds the result summary.
func (m *interactiveModel) finalize() {
	if m.decode {
		data, err := m.dec.Finish()
		if err != nil {
			m.dec.Release()
			m.dec = nil
			m.err = err
			return
		}
		m.dec = nil
		sum := blake3.Sum256(data.Bytes())
		m.summary = fmt.Sprintf("%d characters in\n%d bytes out\n%d rounds\nblake3 %x",
			m.total, data.Len(), m.task.Rounds(), sum[:8])
		data.Release()
		return
	}

	text, err := m.enc.Finish()
	if err != nil {
		m.enc.Release()
		m.enc = nil
		m.err = err
		return
	}
	m.enc = nil
	sum := blake3.Sum256([]byte(text.String()))
	m.summary = fmt.Sprintf("%d bytes in\n%d characters out in %d chunks\n%d rounds\nblake3 %x",
		m.total, text.Len(), text.Chunks(), m.task.Rounds(), sum[:8])
	text.Release()
}

// releaseSession discards an unfinished session before quitting.
func (m *interactiveModel) releaseSession() {
	if m.enc != nil {
		m.enc.Release()
		m.enc = nil
	}
	if m.dec != nil {
		m.dec.Release()
		m.dec = nil
	}
}

// reset returns to the path prompt for another run.
func (m *interactiveModel) reset() {
	m.releaseSession()
	m.task = nil
	m.err = nil
	m.summary = ""
	m.done = 0
	m.total = 0
	m.state = statePickFile
	m.path.Focus()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	if m.decode {
		b.WriteString(titleStyle.Render("b64 decode"))
	} else {
		b.WriteString(titleStyle.Render("b64 encode"))
	}
	b.WriteString("\n\n")

	switch m.state {
	case statePickFile:
		b.WriteString(m.path.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter start • ctrl+c quit"))

	case stateRunning:
		b.WriteString(fileStyle.Render(m.name))
		b.WriteString("\n\n")
		b.WriteString(m.prog.ViewAs(m.ratio()))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("round %d • %d / %d %s", m.taskRounds(), m.done, m.total, m.unit()))

	case stateDone:
		b.WriteString(fileStyle.Render(m.name))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.summary))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc again • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) ratio() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

func (m *interactiveModel) taskRounds() int {
	if m.task == nil {
		return 0
	}
	return m.task.Rounds()
}

func (m *interactiveModel) unit() string {
	if m.decode {
		return "characters"
	}
	return "bytes"
}

func runInteractive(input string, decode bool, tuning codec.Tuning) error {
	p := tea.NewProgram(newInteractiveModel(input, decode, tuning), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
