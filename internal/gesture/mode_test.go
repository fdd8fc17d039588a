package gesture

import (
	"testing"

	"github.com/ayusman/airdraw/internal/detector"
)

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name string
		fs   detector.FingerState
		want Mode
	}{
		{
			name: "all five fingers up is erase",
			fs:   detector.FingerState{Thumb: true, Index: true, Middle: true, Ring: true, Pinky: true},
			want: ModeErase,
		},
		{
			name: "index only is draw",
			fs:   detector.FingerState{Index: true},
			want: ModeDraw,
		},
		{
			name: "index and middle is hover",
			fs:   detector.FingerState{Index: true, Middle: true},
			want: ModeHover,
		},
		{
			name: "thumb only is color change",
			fs:   detector.FingerState{Thumb: true},
			want: ModeColorChange,
		},
		{
			name: "no fingers is idle",
			fs:   detector.FingerState{},
			want: ModeIdle,
		},
		{
			name: "index plus thumb is idle",
			fs:   detector.FingerState{Thumb: true, Index: true},
			want: ModeIdle,
		},
		{
			name: "two non-adjacent fingers is idle",
			fs:   detector.FingerState{Index: true, Ring: true},
			want: ModeIdle,
		},
		{
			name: "three fingers is idle",
			fs:   detector.FingerState{Index: true, Middle: true, Ring: true},
			want: ModeIdle,
		},
		{
			name: "four fingers is idle",
			fs:   detector.FingerState{Index: true, Middle: true, Ring: true, Pinky: true},
			want: ModeIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.fs); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.fs, got, tt.want)
			}
		})
	}
}

func TestClassify_TotalOverAllCombinations(t *testing.T) {
	recognized := map[Mode]bool{
		ModeIdle:        true,
		ModeDraw:        true,
		ModeHover:       true,
		ModeErase:       true,
		ModeColorChange: true,
	}

	for bits := 0; bits < 32; bits++ {
		fs := detector.FingerState{
			Thumb:  bits&1 != 0,
			Index:  bits&2 != 0,
			Middle: bits&4 != 0,
			Ring:   bits&8 != 0,
			Pinky:  bits&16 != 0,
		}

		mode := Classify(fs)
		if !recognized[mode] {
			t.Errorf("Classify(%+v) = %v, not one of the five classifier modes", fs, mode)
		}
	}
}

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeIdle, "IDLE"},
		{ModeDraw, "DRAW"},
		{ModeHover, "HOVER"},
		{ModeErase, "ERASE"},
		{ModeColorChange, "COLOR_CHANGE"},
		{ModeNoHand, "NO_HAND"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
