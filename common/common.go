package common

// TileSize is the width/height of one level tile in world pixels.
const TileSize = 32

// Gravity is the downward acceleration applied by the physics space, in
// pixels per frame squared (the space steps with dt=1). Positive because
// screen-space Y grows downward.
const Gravity = 0.55

// CharacterID names one of the two playable characters, or both at once
// (used by death notifications that should respawn the whole pair).
type CharacterID int

const (
	CharacterEmotion CharacterID = iota
	CharacterLogic
	CharacterBoth
)

func (c CharacterID) String() string {
	switch c {
	case CharacterEmotion:
		return "emotion"
	case CharacterLogic:
		return "logic"
	case CharacterBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Side selects one of the two per-character resource pools.
type Side int

const (
	SideEmotion Side = iota
	SideLogic
)

func (s Side) String() string {
	if s == SideLogic {
		return "logic"
	}
	return "emotion"
}
