package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestConfirmYes(t *testing.T) {
	m := newConfirmModel("Remove my-pkg?")

	next, cmd := m.Update(keyRune('y'))
	m = next.(confirmModel)
	if !m.answered || !m.confirmed {
		t.Errorf("after y: answered=%v confirmed=%v, want true/true", m.answered, m.confirmed)
	}
	if cmd == nil {
		t.Error("y should quit the program")
	}
}

func TestConfirmNo(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		keyRune('n'),
		keyRune('N'),
		{Type: tea.KeyEscape},
		{Type: tea.KeyEnter}, // Default answer is No.
	} {
		m := newConfirmModel("Remove my-pkg?")
		next, cmd := m.Update(msg)
		m = next.(confirmModel)
		if !m.answered || m.confirmed {
			t.Errorf("after %v: answered=%v confirmed=%v, want true/false", msg, m.answered, m.confirmed)
		}
		if cmd == nil {
			t.Errorf("%v should quit the program", msg)
		}
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m := newConfirmModel("Remove my-pkg?")

	next, cmd := m.Update(keyRune('z'))
	m = next.(confirmModel)
	if m.answered {
		t.Error("z should not answer the prompt")
	}
	if cmd != nil {
		t.Error("z should not quit")
	}
}

func TestConfirmView(t *testing.T) {
	m := newConfirmModel("Remove my-pkg?")
	v := ansi.Strip(m.View())

	if !strings.Contains(v, "Remove my-pkg?") {
		t.Error("view missing the question")
	}
	if !strings.Contains(v, "[y/N]") {
		t.Error("view missing the default hint")
	}

	next, _ := m.Update(keyRune('y'))
	m = next.(confirmModel)
	if m.View() != "" {
		t.Error("view should be empty after answering")
	}
}
