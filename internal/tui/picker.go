// Package tui implements dumpty's interactive prompts: the agent
// multi-select used by install --pick and the yes/no confirmation used by
// uninstall. Both run as short-lived bubbletea programs on the terminal
// and return plain values to the CLI layer.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("cancelled")

// AgentChoice is one selectable row in the agent picker. Configured agents
// are pre-selected and marked.
type AgentChoice struct {
	Name        string
	DisplayName string
	Configured  bool
}

// pickerModel is the agent multi-select prompt.
type pickerModel struct {
	title   string
	choices []AgentChoice

	cursor    int
	selected  map[int]bool
	confirmed bool
	cancelled bool
}

func newPickerModel(title string, choices []AgentChoice) pickerModel {
	selected := make(map[int]bool)
	for i, c := range choices {
		if c.Configured {
			selected[i] = true
		}
	}
	return pickerModel{
		title:    title,
		choices:  choices,
		selected: selected,
	}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit), key.Matches(keyMsg, keys.Back):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, keys.Toggle):
		m.selected[m.cursor] = !m.selected[m.cursor]

	case key.Matches(keyMsg, keys.ToggleAll):
		all := len(m.picked()) == len(m.choices)
		for i := range m.choices {
			m.selected[i] = !all
		}

	case key.Matches(keyMsg, keys.Enter):
		m.confirmed = true
		return m, tea.Quit
	}

	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title) + "\n\n")

	for i, c := range m.choices {
		check := "[ ]"
		if m.selected[i] {
			check = checkedStyle.Render("[x]")
		}

		label := c.DisplayName
		if c.Configured {
			label += configuredStyle.Render(" (detected)")
		}

		line := fmt.Sprintf("%s %s", check, label)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(normalItemStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("space toggle · a all/none · enter confirm · esc cancel") + "\n")
	return b.String()
}

// picked returns the indices of the selected choices, in display order.
func (m pickerModel) picked() []int {
	var out []int
	for i := range m.choices {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

// PickAgents runs the agent picker and returns the chosen agent names.
// Cancelling returns ErrCancelled; confirming an empty selection is an
// error so callers never install for zero agents silently.
func PickAgents(title string, choices []AgentChoice) ([]string, error) {
	if len(choices) == 0 {
		return nil, errors.New("no agents to pick from")
	}

	p := tea.NewProgram(newPickerModel(title, choices))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running agent picker: %w", err)
	}

	m := final.(pickerModel)
	if m.cancelled || !m.confirmed {
		return nil, ErrCancelled
	}

	var names []string
	for _, i := range m.picked() {
		names = append(names, m.choices[i].Name)
	}
	if len(names) == 0 {
		return nil, errors.New("no agents selected")
	}
	return names, nil
}
