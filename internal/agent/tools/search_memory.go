package tools

import (
	"context"
	"fmt"
	"strings"

	"vision-assist/internal/agent"
)

// SearchMemoryTool answers questions from the recent conversation history.
type SearchMemoryTool struct {
	mem Memory
}

// NewSearchMemoryTool creates a new search memory tool.
func NewSearchMemoryTool(mem Memory) agent.Tool {
	return &SearchMemoryTool{mem: mem}
}

func (t *SearchMemoryTool) Name() string {
	return "search_memory"
}

func (t *SearchMemoryTool) Description() string {
	return "Search the recent conversation history for messages matching a query."
}

func (t *SearchMemoryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Text to look for in the conversation history",
			},
		},
		"required": []string{"query"},
	}
}

func (t *SearchMemoryTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	matches := t.mem.Search(query)
	if len(matches) == 0 {
		return "I don't have any previous conversation about that.", nil
	}

	var b strings.Builder
	b.WriteString("Here's what I found in our conversation:\n")
	for _, msg := range matches {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	return b.String(), nil
}
