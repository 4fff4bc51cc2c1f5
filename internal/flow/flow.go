// Package flow models the capture-to-result journey as an explicit state
// machine. Rendering is someone else's problem; this package only decides
// which transitions are legal and guarantees that no screen is ever entered
// with partial data.
package flow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kozaktomas/huetone/internal/imaging"
	"github.com/kozaktomas/huetone/internal/workflow"
)

// Screen identifies the active full-screen view.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenCamera
	ScreenLoading
	ScreenResult
	ScreenImmersive
)

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenCamera:
		return "camera"
	case ScreenLoading:
		return "loading"
	case ScreenResult:
		return "result"
	case ScreenImmersive:
		return "immersive"
	default:
		return "unknown"
	}
}

// ModalState tracks the compose modal shown over the result screen.
type ModalState int

const (
	ModalHidden ModalState = iota
	ModalIdle
	ModalLoading
	ModalReady
	ModalFailed
)

func (m ModalState) String() string {
	switch m {
	case ModalHidden:
		return "hidden"
	case ModalIdle:
		return "idle"
	case ModalLoading:
		return "loading"
	case ModalReady:
		return "ready"
	case ModalFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReleaseFunc releases the camera stream. It is invoked exactly once, either
// on capture or when the user leaves the camera screen another way.
type ReleaseFunc func()

// Session is one user journey from landing to styled composite.
type Session struct {
	ID string

	screen Screen
	modal  ModalState

	captured      *imaging.CapturedImage
	result        *workflow.AnalysisResult
	selectedColor workflow.ColorItem
	composedImage string

	releaseStream ReleaseFunc
}

// NewSession starts a journey on the landing screen.
func NewSession() *Session {
	return &Session{
		ID:     uuid.NewString(),
		screen: ScreenLanding,
		modal:  ModalHidden,
	}
}

// Screen returns the active screen.
func (s *Session) Screen() Screen { return s.screen }

// Modal returns the compose modal state.
func (s *Session) Modal() ModalState { return s.modal }

// Captured returns the captured image, or nil before capture.
func (s *Session) Captured() *imaging.CapturedImage { return s.captured }

// Result returns the normalized analysis, or nil before it arrives.
func (s *Session) Result() *workflow.AnalysisResult { return s.result }

// ComposedImage returns the styled composite source once the modal is ready.
func (s *Session) ComposedImage() string { return s.composedImage }

// SelectedColor returns the color pair driving the immersive view, or the
// zero value when none is selected.
func (s *Session) SelectedColor() workflow.ColorItem { return s.selectedColor }

func (s *Session) illegal(action string) error {
	return fmt.Errorf("cannot %s from the %s screen", action, s.screen)
}

// StartCamera moves landing → camera. The release hook is stored and fired
// when the camera stream is no longer needed.
func (s *Session) StartCamera(release ReleaseFunc) error {
	if s.screen != ScreenLanding {
		return s.illegal("start the camera")
	}
	s.screen = ScreenCamera
	s.releaseStream = release
	return nil
}

// Capture stores the normalized frame and moves camera → loading. The camera
// stream is released immediately; the capture is final.
func (s *Session) Capture(img *imaging.CapturedImage) error {
	if s.screen != ScreenCamera {
		return s.illegal("capture")
	}
	if img == nil || img.DataURI == "" {
		return fmt.Errorf("capture requires a rendered frame")
	}
	s.release()
	s.captured = img
	s.screen = ScreenLoading
	return nil
}

// LeaveCamera abandons the camera and returns to landing, releasing the
// stream.
func (s *Session) LeaveCamera() error {
	if s.screen != ScreenCamera {
		return s.illegal("leave the camera")
	}
	s.release()
	s.screen = ScreenLanding
	return nil
}

func (s *Session) release() {
	if s.releaseStream != nil {
		s.releaseStream()
		s.releaseStream = nil
	}
}

// AnalysisSucceeded moves loading → result with the normalized analysis.
func (s *Session) AnalysisSucceeded(result *workflow.AnalysisResult) error {
	if s.screen != ScreenLoading {
		return s.illegal("accept an analysis")
	}
	if result == nil {
		return fmt.Errorf("analysis result is required to enter the result screen")
	}
	s.result = result
	s.screen = ScreenResult
	s.modal = ModalHidden
	return nil
}

// AnalysisFailed moves loading → camera so the user can retake the photo.
// The failed attempt's image is discarded; the result screen is unreachable.
func (s *Session) AnalysisFailed() error {
	if s.screen != ScreenLoading {
		return s.illegal("fail an analysis")
	}
	s.captured = nil
	s.screen = ScreenCamera
	return nil
}

// EnterImmersive moves result → immersive. The immersive view renders the
// selected color pair, so entry without a selection is refused.
func (s *Session) EnterImmersive() error {
	if s.screen != ScreenResult {
		return s.illegal("enter the immersive view")
	}
	if s.modal == ModalLoading {
		return fmt.Errorf("cannot leave the result screen while a compose call is in flight")
	}
	if s.selectedColor.Color == "" {
		return fmt.Errorf("the immersive view requires a selected color")
	}
	s.screen = ScreenImmersive
	return nil
}

// ExitImmersive moves immersive → result and clears the selection; returning
// to the result screen starts over.
func (s *Session) ExitImmersive() error {
	if s.screen != ScreenImmersive {
		return s.illegal("exit the immersive view")
	}
	s.selectedColor = workflow.ColorItem{}
	s.screen = ScreenResult
	return nil
}

// SelectColor records the color the user picked for the immersive view and
// the styled composite. Only meaningful on the result screen.
func (s *Session) SelectColor(color workflow.ColorItem) error {
	if s.screen != ScreenResult {
		return s.illegal("select a color")
	}
	if color.Color == "" {
		return fmt.Errorf("a color selection requires a name")
	}
	s.selectedColor = color
	return nil
}

// OpenComposeModal shows the modal in its idle state. Requires a normalized
// result, so compose can never run against partial data.
func (s *Session) OpenComposeModal() error {
	if s.screen != ScreenResult {
		return s.illegal("open the compose modal")
	}
	if s.result == nil {
		return fmt.Errorf("compose requires a completed analysis")
	}
	if s.modal == ModalLoading {
		return fmt.Errorf("compose modal is already busy")
	}
	s.modal = ModalIdle
	return nil
}

// BeginCompose marks the modal busy while the relay call runs.
func (s *Session) BeginCompose() error {
	if s.screen != ScreenResult {
		return s.illegal("start a compose call")
	}
	if s.modal != ModalIdle && s.modal != ModalFailed {
		return fmt.Errorf("compose modal must be idle, is %s", s.modal)
	}
	s.modal = ModalLoading
	return nil
}

// ComposeSucceeded stores the composite and marks the modal ready.
func (s *Session) ComposeSucceeded(imageSource string) error {
	if s.modal != ModalLoading {
		return fmt.Errorf("no compose call is in flight")
	}
	if imageSource == "" {
		return fmt.Errorf("compose result is required to show the composite")
	}
	s.composedImage = imageSource
	s.modal = ModalReady
	return nil
}

// ComposeFailed marks the modal failed; the user may retry or dismiss.
func (s *Session) ComposeFailed() error {
	if s.modal != ModalLoading {
		return fmt.Errorf("no compose call is in flight")
	}
	s.modal = ModalFailed
	return nil
}

// DismissModal hides the modal. Refused while a compose call is in flight so
// an in-flight response never lands on a dismissed modal.
func (s *Session) DismissModal() error {
	if s.modal == ModalHidden {
		return fmt.Errorf("compose modal is not open")
	}
	if s.modal == ModalLoading {
		return fmt.Errorf("cannot dismiss the compose modal while a call is in flight")
	}
	s.modal = ModalHidden
	return nil
}
