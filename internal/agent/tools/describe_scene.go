package tools

import (
	"context"

	"vision-assist/internal/agent"
)

// DescribeSceneTool reports the most recent scene description.
type DescribeSceneTool struct {
	mem Memory
}

// NewDescribeSceneTool creates a new describe scene tool.
func NewDescribeSceneTool(mem Memory) agent.Tool {
	return &DescribeSceneTool{mem: mem}
}

func (t *DescribeSceneTool) Name() string {
	return "describe_scene"
}

func (t *DescribeSceneTool) Description() string {
	return "Describe the current scene in detail, focusing on the overall environment."
}

func (t *DescribeSceneTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *DescribeSceneTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	snapshot := t.mem.Snapshot()
	if snapshot.SceneDescription == "" {
		return "I'm unable to clearly describe what I see right now.", nil
	}
	return snapshot.SceneDescription, nil
}
