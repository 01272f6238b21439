package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func TestModelEnterSubmitsTrimmedAnswer(t *testing.T) {
	m := newModel("First sub-task:")
	assert.Contains(t, m.View(), "First sub-task:")

	m = typeText(t, m, "  call the bank ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)

	assert.True(t, m.done)
	assert.False(t, m.cancelled)
	assert.Equal(t, "call the bank", m.answer)
	assert.Empty(t, m.View())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelEscCancels(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyType
	}{
		{"escape", tea.KeyEsc},
		{"ctrl+c", tea.KeyCtrlC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typeText(t, newModel("Delete?"), "y")
			next, cmd := m.Update(tea.KeyMsg{Type: tt.key})
			m = next.(model)

			assert.True(t, m.cancelled)
			assert.Empty(t, m.answer)
			require.NotNil(t, cmd)
		})
	}
}

func TestScript(t *testing.T) {
	s := NewScript(" b ", "Outline")

	got, err := s.Ask("What's the next action?")
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	got, err = s.Ask("First sub-task:")
	require.NoError(t, err)
	assert.Equal(t, "Outline", got)

	_, err = s.Ask("More?")
	assert.ErrorIs(t, err, ErrNoAnswer)
	assert.Equal(t, []string{"What's the next action?", "First sub-task:", "More?"}, s.Asked)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Yes", true},
		{"n", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		got, err := Confirm(NewScript(tt.answer), "Proceed?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "answer %q", tt.answer)
	}

	_, err := Confirm(NewScript(), "Proceed?")
	assert.ErrorIs(t, err, ErrNoAnswer)
}
