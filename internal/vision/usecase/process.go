package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vision-assist/internal/model"
	"vision-assist/internal/privacy"
	"vision-assist/internal/vision"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const sceneUnavailable = "Unable to describe the scene at this time."

// Process implements vision.UseCase.
func (uc *implUseCase) Process(ctx context.Context, sessionID string, frame []byte) (model.FrameResult, error) {
	if len(frame) == 0 {
		return model.FrameResult{}, vision.ErrEmptyFrame
	}

	st := uc.sessionState(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	// Decimation: reuse the cached result for skipped frames, but mint a
	// fresh frame id so the client always perceives a new result.
	st.counter++
	if st.counter%uc.cfg.ProcessEveryN != 0 && st.cached != nil {
		result := *st.cached
		result.FrameID = uuid.NewString()
		uc.metrics.FrameCacheHit()
		return result, nil
	}

	started := time.Now()

	dims, _, err := image.DecodeConfig(bytes.NewReader(frame))
	if err != nil {
		uc.l.Warnf(ctx, "vision.Process.decode: %v", err)
		return errorResult(fmt.Errorf("%w: %v", vision.ErrDecodeFrame, err)), nil
	}

	var (
		wg sync.WaitGroup

		sceneDesc string
		sceneErr  error

		rawDetections []vision.RawDetection
		detectErr     error

		rawTexts []vision.RawText
		ocrErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sceneDesc, sceneErr = uc.scene.Describe(ctx, frame)
	}()
	go func() {
		defer wg.Done()
		rawDetections, detectErr = uc.detector.Detect(ctx, frame)
	}()
	if uc.cfg.EnableOCR && uc.ocr != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rawTexts, ocrErr = uc.ocr.Recognize(ctx, frame)
		}()
	}
	wg.Wait()

	// A superseded task stops here: no fallback synthesis, no memory
	// writes, no cache entry for later frames to reuse.
	if err := ctx.Err(); err != nil {
		return model.FrameResult{}, err
	}

	sceneOK := sceneErr == nil && strings.TrimSpace(sceneDesc) != ""
	if !sceneOK {
		if sceneErr != nil {
			uc.l.Warnf(ctx, "vision.Process.scene: %v", sceneErr)
		}
		sceneDesc = sceneUnavailable
	}
	sceneDesc = strings.TrimSpace(sceneDesc)

	var objects []model.DetectedObject
	if detectErr != nil {
		uc.l.Warnf(ctx, "vision.Process.detect: %v, using quadrant fallback", detectErr)
		objects = uc.fallbackDetect(frame, dims)
	} else {
		objects = uc.projectDetections(rawDetections, dims)
	}

	var texts []model.DetectedText
	if ocrErr != nil {
		uc.l.Warnf(ctx, "vision.Process.ocr: %v", ocrErr)
	} else {
		texts = uc.projectTexts(rawTexts, dims)
	}
	privacy.ClassifyAll(texts)

	now := model.UnixNow()
	result := model.FrameResult{
		Captions:        buildCaptions(sceneDesc, objects, texts, now),
		VoiceFeedback:   buildVoiceFeedback(objects, texts, now),
		Objects:         summarize(objects),
		RawDescription:  sceneDesc,
		DetectedObjects: objects,
		DetectedTexts:   texts,
		FrameID:         uuid.NewString(),
	}

	uc.mem.RecordObjects(objects)
	uc.mem.RecordTexts(texts)
	if sceneOK {
		uc.mem.RecordScene(sceneDesc)
	}

	cached := result
	st.cached = &cached

	uc.metrics.FrameProcessed(time.Since(started))
	return result, nil
}

// projectDetections converts normalized sidecar boxes into pixel space and
// derives direction and distance.
func (uc *implUseCase) projectDetections(raws []vision.RawDetection, dims image.Config) []model.DetectedObject {
	width := float64(dims.Width)
	height := float64(dims.Height)

	objects := make([]model.DetectedObject, 0, len(raws))
	for _, raw := range raws {
		if raw.Confidence < uc.cfg.DetectionConfidenceThreshold {
			continue
		}

		x1 := raw.BBox[0] * width
		y1 := raw.BBox[1] * height
		x2 := (raw.BBox[0] + raw.BBox[2]) * width
		y2 := (raw.BBox[1] + raw.BBox[3]) * height

		objects = append(objects, model.DetectedObject{
			Name:       raw.Label,
			Confidence: raw.Confidence,
			BBox:       [4]float64{x1, y1, x2, y2},
			Distance:   estimateDistance(y1, y2, height),
			Direction:  direction((x1+x2)/2, width),
		})
	}
	return objects
}

func (uc *implUseCase) projectTexts(raws []vision.RawText, dims image.Config) []model.DetectedText {
	width := float64(dims.Width)
	height := float64(dims.Height)

	texts := make([]model.DetectedText, 0, len(raws))
	for _, raw := range raws {
		if raw.Confidence < uc.cfg.OCRConfidenceThreshold {
			continue
		}
		text := strings.TrimSpace(raw.Text)
		if text == "" {
			continue
		}

		texts = append(texts, model.DetectedText{
			Text:       text,
			Confidence: raw.Confidence,
			BBox: [4]float64{
				raw.BBox[0] * width,
				raw.BBox[1] * height,
				(raw.BBox[0] + raw.BBox[2]) * width,
				(raw.BBox[1] + raw.BBox[3]) * height,
			},
		})
	}
	return texts
}

func summarize(objects []model.DetectedObject) []model.ObjectSummary {
	summaries := make([]model.ObjectSummary, len(objects))
	for i, obj := range objects {
		summaries[i] = model.ObjectSummary{
			Name:      obj.Name,
			Distance:  obj.Distance,
			Direction: obj.Direction,
		}
	}
	return summaries
}

func errorResult(err error) model.FrameResult {
	return model.FrameResult{
		Captions: []model.Caption{
			{
				ID:        uuid.NewString(),
				Text:      fmt.Sprintf("Error processing frame: %v", err),
				Type:      model.CaptionVisual,
				Priority:  model.PriorityHigh,
				Timestamp: model.UnixNow(),
			},
		},
		FrameID: uuid.NewString(),
	}
}
