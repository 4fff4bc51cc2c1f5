// Package imaging prepares a single camera frame for transport: it clamps
// the frame to full-HD bounds, re-encodes it as JPEG and wraps it in a data
// URI so the relay can forward it as a JSON string.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxWidth and MaxHeight bound the normalized frame. The longer side is
	// clamped and the shorter side scaled to keep the aspect ratio.
	MaxWidth  = 1920
	MaxHeight = 1080

	// jpegQuality matches the capture pipeline's 0.8 quality factor.
	jpegQuality = 80
)

// ErrRenderSurfaceUnavailable means the offscreen drawing surface for the
// scaled frame could not be created. The capture action cannot proceed.
var ErrRenderSurfaceUnavailable = errors.New("render surface unavailable")

// CapturedImage is one encoded still frame, held in memory only.
type CapturedImage struct {
	DataURI string
	Width   int
	Height  int
	Format  string
}

// FrameSource is a live video source with known intrinsic dimensions.
// Callers must guarantee non-zero dimensions before grabbing a frame.
type FrameSource interface {
	// Dimensions returns the source's intrinsic pixel width and height.
	Dimensions() (width, height int)
	// Grab returns the current frame.
	Grab() (image.Image, error)
}

// FitWithin computes the normalized dimensions for a source frame.
// Landscape or square frames cap the width at MaxWidth, portrait frames cap
// the height at MaxHeight; the other side is derived by rounding. Frames
// already within bounds are returned unchanged (no upscaling).
func FitWithin(width, height int) (int, int) {
	if width >= height {
		if width > MaxWidth {
			return MaxWidth, int(math.Round(float64(height) * MaxWidth / float64(width)))
		}
		return width, height
	}
	if height > MaxHeight {
		return int(math.Round(float64(width) * MaxHeight / float64(height))), MaxHeight
	}
	return width, height
}

// newRenderSurface allocates the offscreen surface the scaled frame is drawn
// onto. Degenerate dimensions make the surface unavailable rather than
// producing an empty image.
func newRenderSurface(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrRenderSurfaceUnavailable, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// Capture grabs one frame from src and normalizes it.
func Capture(src FrameSource) (*CapturedImage, error) {
	width, height := src.Dimensions()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: source reports %dx%d", ErrRenderSurfaceUnavailable, width, height)
	}

	frame, err := src.Grab()
	if err != nil {
		return nil, fmt.Errorf("grabbing frame: %w", err)
	}
	return Normalize(frame)
}

// Normalize scales a frame into bounds and encodes it as a JPEG data URI.
func Normalize(frame image.Image) (*CapturedImage, error) {
	bounds := frame.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	targetWidth, targetHeight := FitWithin(width, height)

	surface, err := newRenderSurface(targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}

	if targetWidth == width && targetHeight == height {
		draw.Draw(surface, surface.Bounds(), frame, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(surface, surface.Bounds(), frame, bounds, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, surface, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}

	return &CapturedImage{
		DataURI: EncodeDataURI("image/jpeg", buf.Bytes()),
		Width:   targetWidth,
		Height:  targetHeight,
		Format:  "image/jpeg",
	}, nil
}

// NormalizeBytes decodes an encoded image and normalizes it. Used by the CLI
// where the "frame" comes from a file rather than a camera.
func NormalizeBytes(data []byte) (*CapturedImage, error) {
	frame, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return Normalize(frame)
}
