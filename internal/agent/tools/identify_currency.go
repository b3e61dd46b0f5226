package tools

import (
	"context"
	"strings"

	"vision-assist/internal/agent"
)

// currencyKeywords are scanned against the scene description. Detection is
// deliberately coarse: the scene model names bills and coins when it sees
// them, and the tool only needs to notice that it did.
var currencyKeywords = []string{
	"dollar", "euro", "pound", "yen", "rupee", "bill", "coin", "note", "cash", "money",
}

// IdentifyCurrencyTool reports currency or payment cards in view without
// ever reading a card number aloud.
type IdentifyCurrencyTool struct {
	mem Memory
}

// NewIdentifyCurrencyTool creates a new identify currency tool.
func NewIdentifyCurrencyTool(mem Memory) agent.Tool {
	return &IdentifyCurrencyTool{mem: mem}
}

func (t *IdentifyCurrencyTool) Name() string {
	return "identify_currency"
}

func (t *IdentifyCurrencyTool) Description() string {
	return "Identify and describe any currency or payment cards visible in the scene."
}

func (t *IdentifyCurrencyTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *IdentifyCurrencyTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	for _, txt := range t.mem.RecentTexts(recentWindow) {
		if txt.IsCardNumber {
			return "I can see what appears to be a payment card. For privacy reasons, " +
				"I won't read the card number aloud. If you need to know the card number, " +
				"please make sure you're in a private location.", nil
		}
	}

	scene := strings.ToLower(t.mem.Snapshot().SceneDescription)
	for _, keyword := range currencyKeywords {
		if strings.Contains(scene, keyword) {
			return "I can see what might be currency in the image. For a more specific " +
				"identification, please hold it closer to the camera and ask me to " +
				"describe it in detail.", nil
		}
	}

	return "I don't see any clear signs of currency or payment cards.", nil
}
