package tools

import (
	"context"
	"fmt"
	"strings"

	"vision-assist/internal/agent"
)

// hazardDistance is the range below which an object counts as an obstacle.
const hazardDistance = 1.5

// CheckHazardsTool warns about close-range obstacles.
type CheckHazardsTool struct {
	mem Memory
}

// NewCheckHazardsTool creates a new check hazards tool.
func NewCheckHazardsTool(mem Memory) agent.Tool {
	return &CheckHazardsTool{mem: mem}
}

func (t *CheckHazardsTool) Name() string {
	return "check_hazards"
}

func (t *CheckHazardsTool) Description() string {
	return "Check for any potential hazards or obstacles in the current scene."
}

func (t *CheckHazardsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *CheckHazardsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	objects := t.mem.RecentObjects(recentWindow)

	var b strings.Builder
	for _, obj := range objects {
		if obj.Distance > 0 && obj.Distance < hazardDistance {
			fmt.Fprintf(&b, "- %s to your %s, about %.1f meters away\n", obj.Name, obj.Direction, obj.Distance)
		}
	}

	if b.Len() == 0 {
		return "I don't see any immediate hazards or obstacles in your vicinity.", nil
	}
	return "Please be aware of these potential obstacles:\n" + b.String(), nil
}
