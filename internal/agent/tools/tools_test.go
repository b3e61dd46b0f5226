package tools_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"vision-assist/internal/agent/tools"
	"vision-assist/internal/memory"
	"vision-assist/internal/model"
)

// fakeMemory is a canned-snapshot Memory implementation. The windowed views
// serve the snapshot's records.
type fakeMemory struct {
	snapshot model.ConversationContext
	matches  []model.Message
}

func (f *fakeMemory) Snapshot() model.ConversationContext { return f.snapshot }
func (f *fakeMemory) Search(query string) []model.Message { return f.matches }

func (f *fakeMemory) RecentObjects(window time.Duration) []model.DetectedObject {
	return f.snapshot.DetectedObjects
}

func (f *fakeMemory) RecentTexts(window time.Duration) []model.DetectedText {
	return f.snapshot.DetectedTexts
}

func TestDescribeSceneTool(t *testing.T) {
	t.Run("With Scene", func(t *testing.T) {
		tool := tools.NewDescribeSceneTool(&fakeMemory{
			snapshot: model.ConversationContext{SceneDescription: "a kitchen with a stove on the left"},
		})
		result, err := tool.Execute(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "a kitchen with a stove on the left" {
			t.Errorf("unexpected result: %v", result)
		}
	})

	t.Run("No Scene", func(t *testing.T) {
		tool := tools.NewDescribeSceneTool(&fakeMemory{})
		result, _ := tool.Execute(context.Background(), nil)
		if !strings.Contains(result.(string), "unable to clearly describe") {
			t.Errorf("unexpected result: %v", result)
		}
	})
}

func TestIdentifyObjectsTool(t *testing.T) {
	t.Run("Sorted By Distance, Top Five", func(t *testing.T) {
		objects := []model.DetectedObject{
			{Name: "table", Distance: 3.0, Direction: model.DirectionRight},
			{Name: "chair", Distance: 1.0, Direction: model.DirectionLeft},
			{Name: "lamp", Distance: 2.0, Direction: model.DirectionCenter},
			{Name: "shelf", Distance: 4.0, Direction: model.DirectionLeft},
			{Name: "plant", Distance: 5.0, Direction: model.DirectionRight},
			{Name: "window", Distance: 6.0, Direction: model.DirectionCenter},
		}
		tool := tools.NewIdentifyObjectsTool(&fakeMemory{
			snapshot: model.ConversationContext{DetectedObjects: objects},
		})
		result, err := tool.Execute(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := result.(string)

		chairIdx := strings.Index(text, "chair")
		tableIdx := strings.Index(text, "table")
		if chairIdx == -1 || tableIdx == -1 || chairIdx > tableIdx {
			t.Errorf("objects not sorted closest first:\n%s", text)
		}
		if strings.Contains(text, "window") {
			t.Errorf("expected at most five objects:\n%s", text)
		}
	})

	t.Run("No Objects", func(t *testing.T) {
		tool := tools.NewIdentifyObjectsTool(&fakeMemory{})
		result, _ := tool.Execute(context.Background(), nil)
		if !strings.Contains(result.(string), "don't see any clearly identifiable objects") {
			t.Errorf("unexpected result: %v", result)
		}
	})
}

func TestReadTextTool(t *testing.T) {
	t.Run("Filters Sensitive Text", func(t *testing.T) {
		texts := []model.DetectedText{
			{Text: "EXIT"},
			{Text: "4111 1111 1111 1111", IsCardNumber: true},
			{Text: "password: hunter2", IsSensitive: true},
		}
		tool := tools.NewReadTextTool(&fakeMemory{
			snapshot: model.ConversationContext{DetectedTexts: texts},
		})
		result, err := tool.Execute(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := result.(string)

		if strings.Contains(text, "4111") || strings.Contains(text, "hunter2") {
			t.Errorf("sensitive text leaked:\n%s", text)
		}
		if !strings.Contains(text, "EXIT") {
			t.Errorf("readable text missing:\n%s", text)
		}
		if !strings.Contains(text, "omitted for privacy") {
			t.Errorf("expected omission note:\n%s", text)
		}
	})

	t.Run("Only Sensitive Text", func(t *testing.T) {
		tool := tools.NewReadTextTool(&fakeMemory{
			snapshot: model.ConversationContext{DetectedTexts: []model.DetectedText{
				{Text: "4111 1111 1111 1111", IsCardNumber: true},
			}},
		})
		result, _ := tool.Execute(context.Background(), nil)
		text := result.(string)
		if strings.Contains(text, "4111") {
			t.Errorf("card number leaked:\n%s", text)
		}
		if !strings.Contains(text, "sensitive information") {
			t.Errorf("unexpected result: %v", result)
		}
	})

	t.Run("No Text", func(t *testing.T) {
		tool := tools.NewReadTextTool(&fakeMemory{})
		result, _ := tool.Execute(context.Background(), nil)
		if !strings.Contains(result.(string), "don't see any readable text") {
			t.Errorf("unexpected result: %v", result)
		}
	})
}

func TestCheckHazardsTool(t *testing.T) {
	t.Run("Reports Close Objects", func(t *testing.T) {
		objects := []model.DetectedObject{
			{Name: "pole", Distance: 1.0, Direction: model.DirectionCenter},
			{Name: "sofa", Distance: 3.0, Direction: model.DirectionLeft},
		}
		tool := tools.NewCheckHazardsTool(&fakeMemory{
			snapshot: model.ConversationContext{DetectedObjects: objects},
		})
		result, err := tool.Execute(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := result.(string)
		if !strings.Contains(text, "pole") {
			t.Errorf("expected pole in hazards:\n%s", text)
		}
		if strings.Contains(text, "sofa") {
			t.Errorf("distant object reported as hazard:\n%s", text)
		}
	})

	t.Run("No Hazards", func(t *testing.T) {
		tool := tools.NewCheckHazardsTool(&fakeMemory{})
		result, _ := tool.Execute(context.Background(), nil)
		if !strings.Contains(result.(string), "don't see any immediate hazards") {
			t.Errorf("unexpected result: %v", result)
		}
	})
}

func TestCheckHazardsTool_IgnoresStaleSightings(t *testing.T) {
	start := time.Now()
	now := start
	store := memory.New(
		memory.Config{MaxMessages: 10, RecordTTL: 5 * time.Minute},
		memory.WithClock(func() time.Time { return now }),
	)
	store.RecordObjects([]model.DetectedObject{
		{Name: "pole", Distance: 1.0, Direction: model.DirectionCenter},
	})
	tool := tools.NewCheckHazardsTool(store)

	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.(string), "pole") {
		t.Fatalf("fresh sighting not reported:\n%v", result)
	}

	// Sightings older than the 30 second window are still within the TTL
	// but no longer current enough to report.
	now = start.Add(31 * time.Second)
	result, _ = tool.Execute(context.Background(), nil)
	if strings.Contains(result.(string), "pole") {
		t.Errorf("stale sighting reported as a hazard:\n%v", result)
	}
}

func TestIdentifyCurrencyTool(t *testing.T) {
	t.Run("Card In View", func(t *testing.T) {
		tool := tools.NewIdentifyCurrencyTool(&fakeMemory{
			snapshot: model.ConversationContext{
				DetectedTexts: []model.DetectedText{
					{Text: "4111 1111 1111 1111", IsCardNumber: true},
				},
				SceneDescription: "a wallet with a dollar bill",
			},
		})
		result, err := tool.Execute(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := result.(string)
		if strings.Contains(text, "4111") {
			t.Errorf("card number leaked:\n%s", text)
		}
		if !strings.Contains(text, "payment card") {
			t.Errorf("expected card warning, got: %v", result)
		}
	})

	t.Run("Currency Keyword In Scene", func(t *testing.T) {
		tool := tools.NewIdentifyCurrencyTool(&fakeMemory{
			snapshot: model.ConversationContext{SceneDescription: "a hand holding a Euro note"},
		})
		result, _ := tool.Execute(context.Background(), nil)
		if !strings.Contains(result.(string), "might be currency") {
			t.Errorf("unexpected result: %v", result)
		}
	})

	t.Run("Nothing In View", func(t *testing.T) {
		tool := tools.NewIdentifyCurrencyTool(&fakeMemory{
			snapshot: model.ConversationContext{SceneDescription: "an empty desk"},
		})
		result, _ := tool.Execute(context.Background(), nil)
		if !strings.Contains(result.(string), "don't see any clear signs") {
			t.Errorf("unexpected result: %v", result)
		}
	})
}

func TestSearchMemoryTool(t *testing.T) {
	t.Run("Missing Query", func(t *testing.T) {
		tool := tools.NewSearchMemoryTool(&fakeMemory{})
		if _, err := tool.Execute(context.Background(), map[string]interface{}{}); err == nil {
			t.Error("expected error for missing query")
		}
	})

	t.Run("With Matches", func(t *testing.T) {
		tool := tools.NewSearchMemoryTool(&fakeMemory{
			matches: []model.Message{{Role: model.RoleUser, Content: "where are my keys"}},
		})
		result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "keys"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(result.(string), "where are my keys") {
			t.Errorf("unexpected result: %v", result)
		}
	})

	t.Run("No Matches", func(t *testing.T) {
		tool := tools.NewSearchMemoryTool(&fakeMemory{})
		result, _ := tool.Execute(context.Background(), map[string]interface{}{"query": "keys"})
		if !strings.Contains(result.(string), "don't have any previous conversation") {
			t.Errorf("unexpected result: %v", result)
		}
	})
}
