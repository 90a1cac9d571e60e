package actor

import (
	"math"

	"github.com/pmorrigan/innersplit/common"
)

// Session is the slice of the session manager the controllers are allowed
// to touch: spending resource points and asking for a position swap.
type Session interface {
	TrySpendPoints(side common.Side, cost int) bool
	SwapCharacterPositions()
}

// Recorder receives the optional, style-expressive actions the telemetry
// engine classifies on. Mandatory-to-progress actions must never be
// registered here.
type Recorder interface {
	RegisterEmotionAction(weight int)
	RegisterLogicAction(weight int)
}

// facingDeadzone is the minimum horizontal input magnitude before facing
// flips.
const facingDeadzone = 0.2

// updateFacing returns the new facing for a horizontal input, flipping
// only past the deadzone and only when the direction actually differs.
func updateFacing(facing, moveX float64) float64 {
	if math.Abs(moveX) <= facingDeadzone {
		return facing
	}
	if moveX < 0 && facing > 0 {
		return -1
	}
	if moveX > 0 && facing < 0 {
		return 1
	}
	return facing
}
