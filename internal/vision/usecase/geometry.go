package usecase

import "vision-assist/internal/model"

// direction buckets a horizontal center into thirds of the frame width.
func direction(centerX, width float64) model.Direction {
	switch {
	case centerX < width/3:
		return model.DirectionLeft
	case centerX > 2*width/3:
		return model.DirectionRight
	default:
		return model.DirectionCenter
	}
}

// estimateDistance derives a rough distance in meters from the vertical
// position and relative height of a bounding box. Objects lower in the frame
// and with larger boxes are estimated closer.
func estimateDistance(y1, y2, frameHeight float64) float64 {
	if frameHeight <= 0 {
		return 0.5
	}

	boxRelHeight := (y2 - y1) / frameHeight
	yPosition := (y1 + y2) / 2 / frameHeight

	distance := (1.0 - yPosition) * 5.0
	if boxRelHeight > 0.5 {
		distance *= 0.5
	} else if boxRelHeight > 0.25 {
		distance *= 0.75
	}

	return clamp(distance, 0.5, 10.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
