package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"vision-assist/internal/agent"
)

const maxReportedObjects = 5

// IdentifyObjectsTool lists the key objects currently in view.
type IdentifyObjectsTool struct {
	mem Memory
}

// NewIdentifyObjectsTool creates a new identify objects tool.
func NewIdentifyObjectsTool(mem Memory) agent.Tool {
	return &IdentifyObjectsTool{mem: mem}
}

func (t *IdentifyObjectsTool) Name() string {
	return "identify_objects"
}

func (t *IdentifyObjectsTool) Description() string {
	return "Identify and list the key objects visible in the current scene, closest first."
}

func (t *IdentifyObjectsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *IdentifyObjectsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	objects := t.mem.RecentObjects(recentWindow)
	if len(objects) == 0 {
		return "I don't see any clearly identifiable objects at the moment.", nil
	}

	sorted := make([]struct {
		name      string
		distance  float64
		direction string
	}, 0, len(objects))
	for _, obj := range objects {
		distance := obj.Distance
		if distance <= 0 {
			distance = 1e9
		}
		sorted = append(sorted, struct {
			name      string
			distance  float64
			direction string
		}{obj.Name, distance, string(obj.Direction)})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].distance < sorted[j].distance
	})

	var b strings.Builder
	b.WriteString("Here are the objects I can see:\n")
	for i, obj := range sorted {
		if i == maxReportedObjects {
			break
		}
		distanceStr := "at an unknown distance"
		if obj.distance < 1e9 {
			distanceStr = fmt.Sprintf("about %.1f meters away", obj.distance)
		}
		directionStr := ""
		if obj.direction != "" {
			directionStr = " to your " + obj.direction
		}
		fmt.Fprintf(&b, "- %s %s%s\n", obj.name, distanceStr, directionStr)
	}
	return b.String(), nil
}
