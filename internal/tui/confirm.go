package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a one-line yes/no prompt. The answer defaults to No, the
// safe choice for destructive actions.
type confirmModel struct {
	message   string
	answered  bool
	confirmed bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{message: message}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Yes):
		m.answered = true
		m.confirmed = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.No), key.Matches(keyMsg, keys.Back),
		key.Matches(keyMsg, keys.Quit), key.Matches(keyMsg, keys.Enter):
		m.answered = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return dangerStyle.Render(m.message) + mutedStyle.Render(" [y/N] ") + "\n"
}

// Confirm asks a yes/no question and returns the answer. Anything but an
// explicit yes is false.
func Confirm(message string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(message))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running confirmation prompt: %w", err)
	}
	return final.(confirmModel).confirmed, nil
}
