package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FistLandmarks returns a preset right hand with every finger curled and
// the thumb tucked across the palm. Classifies as an unrecognized (idle)
// pose: no tip is above its PIP joint and the thumb tip sits to the right
// of its MCP.
func FistLandmarks() HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb tucked: tip to the right of the MCP joint.
	hand.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.80, Z: 0.0}
	hand.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.74, Z: 0.0}
	hand.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.70, Z: -0.01}
	hand.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.68, Z: -0.02}

	// Curled fingers: each tip lower than its PIP joint.
	hand.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66, Z: 0.0}
	hand.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.58, Z: -0.03}
	hand.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.62, Z: -0.05}
	hand.Points[IndexTip] = Point3D{X: 0.53, Y: 0.67, Z: -0.05}

	hand.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65, Z: 0.0}
	hand.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.56, Z: -0.03}
	hand.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.61, Z: -0.05}
	hand.Points[MiddleTip] = Point3D{X: 0.48, Y: 0.66, Z: -0.05}

	hand.Points[RingMCP] = Point3D{X: 0.45, Y: 0.66, Z: 0.0}
	hand.Points[RingPIP] = Point3D{X: 0.45, Y: 0.58, Z: -0.03}
	hand.Points[RingDIP] = Point3D{X: 0.44, Y: 0.63, Z: -0.05}
	hand.Points[RingTip] = Point3D{X: 0.43, Y: 0.68, Z: -0.05}

	hand.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.68, Z: 0.0}
	hand.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.61, Z: -0.03}
	hand.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.65, Z: -0.05}
	hand.Points[PinkyTip] = Point3D{X: 0.39, Y: 0.70, Z: -0.05}

	return hand
}

// IndexUpLandmarks returns a preset right hand pointing with the index
// finger only (the draw pose). The index tip position doubles as the
// cursor location.
func IndexUpLandmarks() HandLandmarks {
	hand := FistLandmarks()

	hand.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66, Z: 0.0}
	hand.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.52, Z: 0.0}
	hand.Points[IndexDIP] = Point3D{X: 0.56, Y: 0.42, Z: 0.0}
	hand.Points[IndexTip] = Point3D{X: 0.56, Y: 0.32, Z: 0.0}

	return hand
}

// PeaceSignLandmarks returns a preset right hand with index and middle
// fingers extended (the hover pose).
func PeaceSignLandmarks() HandLandmarks {
	hand := IndexUpLandmarks()

	hand.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65, Z: 0.0}
	hand.Points[MiddlePIP] = Point3D{X: 0.49, Y: 0.50, Z: 0.0}
	hand.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.39, Z: 0.0}
	hand.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.29, Z: 0.0}

	return hand
}

// ThumbOnlyLandmarks returns a preset right hand with just the thumb
// extended (the color-change pose). In the mirrored feed a right thumb
// extends toward smaller x, so the tip ends up left of the MCP joint.
func ThumbOnlyLandmarks() HandLandmarks {
	hand := FistLandmarks()

	hand.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.80, Z: 0.0}
	hand.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.74, Z: 0.0}
	hand.Points[ThumbIP] = Point3D{X: 0.53, Y: 0.70, Z: 0.01}
	hand.Points[ThumbTip] = Point3D{X: 0.48, Y: 0.68, Z: 0.02}

	return hand
}

// OpenPalmLandmarks returns a preset right hand with all five fingers
// extended (the erase pose).
func OpenPalmLandmarks() HandLandmarks {
	hand := PeaceSignLandmarks()

	// Extend the thumb the same way ThumbOnlyLandmarks does.
	hand.Points[ThumbIP] = Point3D{X: 0.53, Y: 0.70, Z: 0.01}
	hand.Points[ThumbTip] = Point3D{X: 0.48, Y: 0.68, Z: 0.02}

	hand.Points[RingMCP] = Point3D{X: 0.45, Y: 0.66, Z: 0.0}
	hand.Points[RingPIP] = Point3D{X: 0.44, Y: 0.52, Z: 0.0}
	hand.Points[RingDIP] = Point3D{X: 0.43, Y: 0.42, Z: 0.0}
	hand.Points[RingTip] = Point3D{X: 0.43, Y: 0.33, Z: 0.0}

	hand.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.68, Z: 0.0}
	hand.Points[PinkyPIP] = Point3D{X: 0.39, Y: 0.57, Z: 0.0}
	hand.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.48, Z: 0.0}
	hand.Points[PinkyTip] = Point3D{X: 0.37, Y: 0.40, Z: 0.0}

	return hand
}
