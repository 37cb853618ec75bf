package agent

// Gemini integrates with Gemini CLI. It has no artifact groups; packages
// install flat under .gemini.
type Gemini struct {
	Base
}

// NewGemini creates the Gemini agent.
func NewGemini() *Gemini {
	return &Gemini{NewBase("gemini", "Gemini", ".gemini", nil, nil)}
}
