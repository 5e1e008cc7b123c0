package wheel

// Default layout, matching the shipped six-slice wheel
const (
	DefaultSliceCount  = 6
	DefaultFirstCenter = -60.0

	// PointerAngle is where the fixed pointer sits, in wheel coordinates
	PointerAngle = -90.0

	// MinFullTurns and ExtraTurnRange bound the whole-rotation part of a spin
	MinFullTurns   = 6
	ExtraTurnRange = 3
)
