package tools

import (
	"context"
	"fmt"
	"strings"

	"vision-assist/internal/agent"
	"vision-assist/internal/privacy"
)

const maxReportedTexts = 7

// ReadTextTool reads visible text aloud, excluding anything the privacy
// filter flagged.
type ReadTextTool struct {
	mem Memory
}

// NewReadTextTool creates a new read text tool.
func NewReadTextTool(mem Memory) agent.Tool {
	return &ReadTextTool{mem: mem}
}

func (t *ReadTextTool) Name() string {
	return "read_text"
}

func (t *ReadTextTool) Description() string {
	return "Read and report any text visible in the current scene, excluding sensitive information."
}

func (t *ReadTextTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *ReadTextTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	texts := t.mem.RecentTexts(recentWindow)
	if len(texts) == 0 {
		return "I don't see any readable text at the moment.", nil
	}

	var readable []string
	for _, txt := range texts {
		if privacy.Blocked(txt) {
			continue
		}
		readable = append(readable, txt.Text)
	}

	if len(readable) == 0 {
		return "I can see some text, but it appears to contain sensitive information " +
			"that I shouldn't read aloud for privacy reasons.", nil
	}

	var b strings.Builder
	b.WriteString("Here's the text I can read:\n")
	for i, txt := range readable {
		if i == maxReportedTexts {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, txt)
	}
	if len(readable) < len(texts) {
		b.WriteString("\nNote: Some text that appears to contain sensitive information was omitted for privacy.")
	}
	return b.String(), nil
}
