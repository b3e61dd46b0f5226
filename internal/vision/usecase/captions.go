package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vision-assist/internal/model"
	"vision-assist/internal/privacy"
)

const (
	cardWarning = "I notice what appears to be a credit card or payment card. " +
		"Be careful about exposing this in public. If you need to read the card number, " +
		"please make sure no one is watching."
	sensitiveWarning = "I've detected what appears to be sensitive information " +
		"in view of the camera. Please be cautious about privacy."
	sensitiveCaption = "Sensitive information detected. Be cautious about privacy."
)

// buildCaptions assembles the caption set for one frame. Sensitive and card
// texts never appear in user-facing text; they only trigger warnings.
func buildCaptions(scene string, objects []model.DetectedObject, texts []model.DetectedText, now float64) []model.Caption {
	captions := []model.Caption{
		{
			ID:        uuid.NewString(),
			Text:      scene,
			Type:      model.CaptionVisual,
			Priority:  model.PriorityMedium,
			Timestamp: now,
		},
	}

	var nearby []string
	for _, obj := range objects {
		if obj.Distance > 0 && obj.Distance < 2.0 {
			nearby = append(nearby, fmt.Sprintf("%s to your %s", obj.Name, obj.Direction))
		}
	}
	if len(nearby) > 0 {
		captions = append(captions, model.Caption{
			ID:        uuid.NewString(),
			Text:      "Nearby objects: " + strings.Join(nearby, ", "),
			Type:      model.CaptionVisual,
			Priority:  model.PriorityHigh,
			Timestamp: now,
		})
	}

	var hasBlocked bool
	var plain []string
	for _, t := range texts {
		if privacy.Blocked(t) {
			hasBlocked = true
			continue
		}
		if len(plain) < 3 {
			plain = append(plain, t.Text)
		}
	}

	if hasBlocked {
		captions = append(captions, model.Caption{
			ID:        uuid.NewString(),
			Text:      sensitiveCaption,
			Type:      model.CaptionVisual,
			Priority:  model.PriorityHigh,
			Timestamp: now,
		})
	}
	if len(plain) > 0 {
		captions = append(captions, model.Caption{
			ID:        uuid.NewString(),
			Text:      "Text found: " + strings.Join(plain, "; "),
			Type:      model.CaptionVisual,
			Priority:  model.PriorityMedium,
			Timestamp: now,
		})
	}

	return captions
}

// buildVoiceFeedback picks at most one spoken alert per frame, ranked
// card number > other sensitive text > close-range hazard > none.
func buildVoiceFeedback(objects []model.DetectedObject, texts []model.DetectedText, now float64) *model.VoiceFeedback {
	var hasCard, hasSensitive bool
	for _, t := range texts {
		if t.IsCardNumber {
			hasCard = true
		} else if t.IsSensitive {
			hasSensitive = true
		}
	}

	if hasCard {
		return &model.VoiceFeedback{Text: cardWarning, Priority: model.PriorityHigh, Timestamp: now}
	}
	if hasSensitive {
		return &model.VoiceFeedback{Text: sensitiveWarning, Priority: model.PriorityHigh, Timestamp: now}
	}

	var hazards []string
	for _, obj := range objects {
		if obj.Distance > 0 && obj.Distance < 1.5 {
			hazards = append(hazards, fmt.Sprintf("%s to your %s", obj.Name, obj.Direction))
			if len(hazards) == 3 {
				break
			}
		}
	}
	if len(hazards) > 0 {
		return &model.VoiceFeedback{
			Text:      "Be careful of nearby objects: " + strings.Join(hazards, ", "),
			Priority:  model.PriorityMedium,
			Timestamp: now,
		}
	}

	return nil
}
