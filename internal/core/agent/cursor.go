package agent

// Cursor integrates with the Cursor editor.
type Cursor struct {
	Base
}

// NewCursor creates the Cursor agent.
func NewCursor() *Cursor {
	return &Cursor{NewBase("cursor", "Cursor", ".cursor", []string{"rules"}, nil)}
}
