package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// testFrame builds a solid-color frame of the given size.
func testFrame(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 80, A: 255})
		}
	}
	return img
}

type fakeSource struct {
	width, height int
	frame         image.Image
	grabErr       error
}

func (s *fakeSource) Dimensions() (int, int)     { return s.width, s.height }
func (s *fakeSource) Grab() (image.Image, error) { return s.frame, s.grabErr }

func TestFitWithin(t *testing.T) {
	cases := []struct {
		name                   string
		width, height          int
		wantWidth, wantHeight  int
	}{
		{"landscape over cap", 3840, 2160, 1920, 1080},
		{"landscape odd ratio", 4000, 1000, 1920, 480},
		{"portrait over cap", 1080, 1920, 608, 1080},
		{"portrait odd ratio", 1000, 4000, 270, 1080},
		{"square over cap", 2500, 2500, 1920, 1920},
		{"within bounds landscape", 1280, 720, 1280, 720},
		{"within bounds portrait", 600, 800, 600, 800},
		{"exactly at cap", 1920, 1080, 1920, 1080},
		{"tiny", 10, 10, 10, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := FitWithin(c.width, c.height)
			if w != c.wantWidth || h != c.wantHeight {
				t.Errorf("FitWithin(%d, %d) = %dx%d, want %dx%d",
					c.width, c.height, w, h, c.wantWidth, c.wantHeight)
			}
		})
	}
}

func TestFitWithin_PreservesAspectRatio(t *testing.T) {
	srcW, srcH := 3333, 1777
	w, h := FitWithin(srcW, srcH)

	if w != 1920 {
		t.Fatalf("expected width clamped to 1920, got %d", w)
	}
	want := int(math.Round(float64(srcH) * 1920 / float64(srcW)))
	if h != want {
		t.Errorf("expected derived height %d, got %d", want, h)
	}
}

func TestNormalize_Downscales(t *testing.T) {
	img, err := Normalize(testFrame(3840, 2160))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if img.Width != 1920 || img.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", img.Width, img.Height)
	}
	if img.Format != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", img.Format)
	}
}

func TestNormalize_NoUpscaling(t *testing.T) {
	img, err := Normalize(testFrame(640, 480))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if img.Width != 640 || img.Height != 480 {
		t.Errorf("expected unchanged 640x480, got %dx%d", img.Width, img.Height)
	}
}

func TestNormalize_RoundTripsThroughDataURI(t *testing.T) {
	img, err := Normalize(testFrame(800, 600))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	data, mime, err := DecodeDataURI(img.DataURI)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", mime)
	}
	// JPEG SOI marker.
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("decoded payload is not a JPEG")
	}
}

func TestCapture_ZeroDimensionsFailsFast(t *testing.T) {
	src := &fakeSource{width: 0, height: 0}

	_, err := Capture(src)
	if !errors.Is(err, ErrRenderSurfaceUnavailable) {
		t.Errorf("expected ErrRenderSurfaceUnavailable, got %v", err)
	}
}

func TestCapture_GrabErrorPropagates(t *testing.T) {
	src := &fakeSource{width: 640, height: 480, grabErr: errors.New("device busy")}

	_, err := Capture(src)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrRenderSurfaceUnavailable) {
		t.Error("grab failure must not be reported as a surface failure")
	}
}

func TestCapture_Success(t *testing.T) {
	src := &fakeSource{width: 2560, height: 1440, frame: testFrame(2560, 1440)}

	img, err := Capture(src)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if img.Width != 1920 || img.Height != 810 {
		t.Errorf("expected 1920x810, got %dx%d", img.Width, img.Height)
	}
}
