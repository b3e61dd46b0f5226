package usecase

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"

	"vision-assist/internal/model"
	"vision-assist/internal/vision"
)

// mockLogger implements pkg/log.Logger for tests.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

// fakeScene is a function-backed SceneDescriber.
type fakeScene struct {
	describeFunc func(ctx context.Context, frame []byte) (string, error)
	calls        int
}

func (f *fakeScene) Describe(ctx context.Context, frame []byte) (string, error) {
	f.calls++
	if f.describeFunc != nil {
		return f.describeFunc(ctx, frame)
	}
	return "a quiet room", nil
}

// fakeDetector is a function-backed ObjectDetector.
type fakeDetector struct {
	detectFunc func(ctx context.Context, frame []byte) ([]vision.RawDetection, error)
	calls      int
}

func (f *fakeDetector) Detect(ctx context.Context, frame []byte) ([]vision.RawDetection, error) {
	f.calls++
	if f.detectFunc != nil {
		return f.detectFunc(ctx, frame)
	}
	return nil, nil
}

// fakeRecognizer is a function-backed TextRecognizer.
type fakeRecognizer struct {
	recognizeFunc func(ctx context.Context, frame []byte) ([]vision.RawText, error)
	calls         int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, frame []byte) ([]vision.RawText, error) {
	f.calls++
	if f.recognizeFunc != nil {
		return f.recognizeFunc(ctx, frame)
	}
	return nil, nil
}

// fakeMemory records what the pipeline wrote.
type fakeMemory struct {
	objects []model.DetectedObject
	texts   []model.DetectedText
	scenes  []string
}

func (f *fakeMemory) RecordObjects(objects []model.DetectedObject) {
	f.objects = append(f.objects, objects...)
}

func (f *fakeMemory) RecordTexts(texts []model.DetectedText) {
	f.texts = append(f.texts, texts...)
}

func (f *fakeMemory) RecordScene(description string) {
	f.scenes = append(f.scenes, description)
}

// testFrame encodes a solid-color PNG of the given size.
func testFrame(width, height int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}
