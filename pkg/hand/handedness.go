package hand

// Handedness selects the left or right hand. Its value doubles as the index
// into per-hand arrays.
type Handedness uint8

const (
	Left Handedness = iota
	Right
)

// HandCount is the number of hands.
const HandCount = 2

// Hands returns Left, Right.
func Hands() []Handedness {
	return []Handedness{Left, Right}
}

func (h Handedness) String() string {
	if h == Left {
		return "Left"
	}
	return "Right"
}

// Prefix returns the node-name prefix used by authored hand hierarchies,
// "L_" or "R_".
func (h Handedness) Prefix() string {
	if h == Left {
		return "L_"
	}
	return "R_"
}

// Mirror returns +1 for the right hand and -1 for the left, for flipping
// the lateral axis of layouts.
func (h Handedness) Mirror() float32 {
	if h == Left {
		return -1
	}
	return 1
}
