package domain

import "fmt"

// SceneIndex identifies a position in the fixed, ordered scene sequence
type SceneIndex int

// Valid reports whether the index lies in [0, sceneCount)
func (s SceneIndex) Valid(sceneCount int) bool {
	return s >= 0 && int(s) < sceneCount
}

// ClampScene clamps value into [lo, hi]
func ClampScene(value, lo, hi int) SceneIndex {
	if value < lo {
		return SceneIndex(lo)
	}
	if value > hi {
		return SceneIndex(hi)
	}
	return SceneIndex(value)
}

// String implements fmt.Stringer
func (s SceneIndex) String() string {
	return fmt.Sprintf("scene:%d", int(s))
}
