package agent

// Claude integrates with Claude Code. Packages may target its commands,
// agents and skills folders under .claude.
type Claude struct {
	Base
}

// NewClaude creates the Claude agent.
func NewClaude() *Claude {
	return &Claude{NewBase(
		"claude",
		"Claude",
		".claude",
		[]string{"commands", "agents", "skills"},
		nil,
	)}
}
