// Package prompt asks single-line questions for the guided routines.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Errors returned by Ask.
var (
	ErrCancelled = errors.New("prompt cancelled")
	ErrNoAnswer  = errors.New("no scripted answer left")
)

// Asker asks a question and returns the trimmed answer.
type Asker interface {
	Ask(question string) (string, error)
}

// Confirm asks a yes/no question. Only answers starting with y count as yes.
func Confirm(a Asker, question string) (bool, error) {
	answer, err := a.Ask(question + " (y/n):")
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// Terminal runs a bubbletea text input on the given streams.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal returns an Asker reading keys from in and drawing on out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Ask implements Asker.
func (t *Terminal) Ask(question string) (string, error) {
	program := tea.NewProgram(newModel(question), tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.cancelled {
		return "", ErrCancelled
	}
	return m.answer, nil
}

type model struct {
	question  string
	input     textinput.Model
	answer    string
	done      bool
	cancelled bool
}

func newModel(question string) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()
	return model{question: question, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.answer = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.question + "\n" + m.input.View() + "\n"
}

// Script answers questions from a fixed list. It records every question it
// was asked.
type Script struct {
	answers []string
	Asked   []string
}

// NewScript returns a Script that hands out answers in order.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Ask implements Asker.
func (s *Script) Ask(question string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.answers) == 0 {
		return "", ErrNoAnswer
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return strings.TrimSpace(answer), nil
}
