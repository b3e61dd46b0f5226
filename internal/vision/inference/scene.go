package inference

import (
	"context"
	"strings"

	"vision-assist/pkg/llmprovider"
)

const sceneSystemPrompt = "You are a vision assistant for blind and visually impaired people. " +
	"Describe the scene, focusing on important elements that would help a blind person " +
	"understand their environment. Be concise but detailed. " +
	"Mention specific objects, their approximate location, text content, and potential hazards. " +
	"Identify any credit cards, sensitive documents, money or other personal items visible."

const sceneUserPrompt = "What can you see in this image? Describe it for a blind person."

// SceneDescriber asks the LLM provider chain for a scene description.
type SceneDescriber struct {
	manager   *llmprovider.Manager
	maxTokens int
}

// NewSceneDescriber creates a scene describer on top of the provider chain.
func NewSceneDescriber(manager *llmprovider.Manager, maxTokens int) *SceneDescriber {
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &SceneDescriber{manager: manager, maxTokens: maxTokens}
}

// Describe sends the frame as inline image content and returns the model's text.
func (s *SceneDescriber) Describe(ctx context.Context, frame []byte) (string, error) {
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: sceneSystemPrompt}},
		},
		Messages: []llmprovider.Message{
			{
				Role: "user",
				Parts: []llmprovider.Part{
					{Text: sceneUserPrompt},
					{InlineData: &llmprovider.Blob{MIMEType: "image/jpeg", Data: frame}},
				},
			},
		},
		MaxTokens: s.maxTokens,
	}

	resp, err := s.manager.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
