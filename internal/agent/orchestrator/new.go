package orchestrator

import (
	"vision-assist/internal/agent"
	"vision-assist/internal/memory"
	"vision-assist/pkg/llmprovider"
	pkgLog "vision-assist/pkg/log"
)

// Orchestrator runs the tool-calling loop that answers user queries.
type Orchestrator struct {
	llm         *llmprovider.Manager
	registry    *agent.ToolRegistry
	mem         *memory.Store
	l           pkgLog.Logger
	temperature float64
}

// New creates a new agent orchestrator.
func New(llm *llmprovider.Manager, registry *agent.ToolRegistry, mem *memory.Store, l pkgLog.Logger) *Orchestrator {
	return &Orchestrator{
		llm:         llm,
		registry:    registry,
		mem:         mem,
		l:           l,
		temperature: DefaultTemperature,
	}
}
