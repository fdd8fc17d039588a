package detector

// FingerState records which fingers are extended for a single frame.
// It is recomputed every frame and never carried across frames.
type FingerState struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// Count returns the number of extended fingers.
func (f FingerState) Count() int {
	n := 0
	for _, up := range [5]bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky} {
		if up {
			n++
		}
	}
	return n
}

// DetectFingerStates determines which fingers are extended from raw
// landmark geometry. The test is purely per-frame; jitter at the decision
// boundary is tolerated downstream by smoothing and cooldowns.
//
// Non-thumb fingers are up when the tip sits above the PIP joint in image
// coordinates (smaller y is higher). The thumb bends sideways, so its tip
// is compared horizontally against the MCP joint; the comparison direction
// flips with handedness because the feed is mirrored.
func DetectFingerStates(hand *HandLandmarks) FingerState {
	var fs FingerState
	if hand == nil {
		return fs
	}

	thumbTipX := hand.Points[ThumbTip].X
	thumbMCPX := hand.Points[ThumbMCP].X
	if hand.Handedness == "Left" {
		fs.Thumb = thumbTipX > thumbMCPX
	} else {
		fs.Thumb = thumbTipX < thumbMCPX
	}

	fs.Index = hand.Points[IndexTip].Y < hand.Points[IndexPIP].Y
	fs.Middle = hand.Points[MiddleTip].Y < hand.Points[MiddlePIP].Y
	fs.Ring = hand.Points[RingTip].Y < hand.Points[RingPIP].Y
	fs.Pinky = hand.Points[PinkyTip].Y < hand.Points[PinkyPIP].Y

	return fs
}
