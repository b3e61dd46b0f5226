package tools

import (
	"time"

	"vision-assist/internal/model"
)

// recentWindow bounds how far back the scene tools look for sightings.
const recentWindow = 30 * time.Second

// Memory is the read-only view of the contextual memory the tools consult.
// The memory store satisfies this interface.
type Memory interface {
	Snapshot() model.ConversationContext
	RecentObjects(window time.Duration) []model.DetectedObject
	RecentTexts(window time.Duration) []model.DetectedText
	Search(query string) []model.Message
}
