package usecase

import (
	"bytes"
	"fmt"
	"image"

	"vision-assist/internal/model"
)

// fallbackDetect is the deterministic stand-in used when the object detector
// is unreachable: one placeholder object per image quadrant, named by the
// quadrant's average luminance. The sidecar is retried on the next processed
// frame, so the fallback never sticks for the life of the process.
func (uc *implUseCase) fallbackDetect(frame []byte, dims image.Config) []model.DetectedObject {
	width := float64(dims.Width)
	height := float64(dims.Height)

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		// Config decoded but the pixel data did not; report a single
		// centered placeholder like an unreadable frame would.
		return []model.DetectedObject{
			{
				Name:       "unknown object",
				Confidence: 0.5,
				BBox:       [4]float64{width / 4, height / 4, 3 * width / 4, 3 * height / 4},
				Distance:   2.0,
				Direction:  model.DirectionCenter,
			},
		}
	}

	bounds := img.Bounds()
	midX := bounds.Min.X + bounds.Dx()/2
	midY := bounds.Min.Y + bounds.Dy()/2

	quadrants := []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, midX, midY),
		image.Rect(midX, bounds.Min.Y, bounds.Max.X, midY),
		image.Rect(bounds.Min.X, midY, midX, bounds.Max.Y),
		image.Rect(midX, midY, bounds.Max.X, bounds.Max.Y),
	}

	objects := make([]model.DetectedObject, 0, len(quadrants))
	for i, q := range quadrants {
		lum := meanLuminance(img, q)

		var name string
		switch {
		case lum > 200:
			name = "bright object"
		case lum < 50:
			name = "dark object"
		default:
			name = fmt.Sprintf("object %d", i+1)
		}

		x1 := float64(q.Min.X - bounds.Min.X)
		y1 := float64(q.Min.Y - bounds.Min.Y)
		x2 := float64(q.Max.X - bounds.Min.X)
		y2 := float64(q.Max.Y - bounds.Min.Y)

		var dir model.Direction
		switch {
		case x1 < width/3:
			dir = model.DirectionLeft
		case x1 > 2*width/3:
			dir = model.DirectionRight
		default:
			dir = model.DirectionCenter
		}

		objects = append(objects, model.DetectedObject{
			Name:       name,
			Confidence: 0.8,
			BBox:       [4]float64{x1, y1, x2, y2},
			Distance:   1.0 + 4.0*(y1/height),
			Direction:  dir,
		})
	}
	return objects
}

// meanLuminance samples the region on a small grid; exact averages are not
// needed for the bright/dark bucketing.
func meanLuminance(img image.Image, r image.Rectangle) float64 {
	if r.Empty() {
		return 0
	}

	stepX := r.Dx() / 16
	if stepX < 1 {
		stepX = 1
	}
	stepY := r.Dy() / 16
	if stepY < 1 {
		stepY = 1
	}

	var sum, n float64
	for y := r.Min.Y; y < r.Max.Y; y += stepY {
		for x := r.Min.X; x < r.Max.X; x += stepX {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			sum += float64((cr>>8)+(cg>>8)+(cb>>8)) / 3.0
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}
