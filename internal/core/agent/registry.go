package agent

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDuplicateAgent is returned when a registration collides
	// case-insensitively with an existing agent name.
	ErrDuplicateAgent = errors.New("agent already registered")
	// ErrInvalidAgent is returned for nil agents or agents without a name.
	ErrInvalidAgent = errors.New("invalid agent")
)

// Registry maps agent names to implementations. Lookups are
// case-insensitive. Construct an isolated registry with NewRegistry and
// inject it into consumers, or use Default for the shared registry of
// built-in agents. Registration is serialized by a single lock; the table
// is effectively read-only after startup.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]Agent
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]Agent)}
}

// Register adds an agent. It fails for nil agents, agents with an empty
// name, and names already present under case folding.
func (r *Registry) Register(a Agent) error {
	if a == nil {
		return fmt.Errorf("%w: nil agent", ErrInvalidAgent)
	}
	name := strings.ToLower(strings.TrimSpace(a.Name()))
	if name == "" {
		return fmt.Errorf("%w: empty agent name", ErrInvalidAgent)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateAgent, name)
	}
	r.agents[name] = a
	return nil
}

// Get returns the agent registered under name (case-insensitive).
func (r *Registry) Get(name string) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[strings.ToLower(name)]
	return a, ok
}

// All returns every registered agent, sorted by name for stable display.
// No consumer may attach meaning to the order beyond that.
func (r *Registry) All() []Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agents := make([]Agent, 0, len(r.agents))
	for _, a := range r.agents {
		agents = append(agents, a)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].Name() < agents[j].Name() })
	return agents
}

// Names returns every registered agent name, sorted.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, a := range all {
		names[i] = a.Name()
	}
	return names
}

// Clear empties the registry. Test isolation only.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents = make(map[string]Agent)
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry populated with the built-in
// agents. The first call builds it; every later call returns the same
// instance, so registration happens exactly once per process.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		for _, a := range builtins() {
			if err := defaultReg.Register(a); err != nil {
				panic(err)
			}
		}
	})
	return defaultReg
}

func builtins() []Agent {
	return []Agent{
		NewClaude(),
		NewCopilot(),
		NewCursor(),
		NewGemini(),
		NewContinue(),
	}
}
