package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/pmorrigan/innersplit/common"
)

// Kind labels what a registered collider is, for callers that inspect
// query results.
type Kind int

const (
	KindSolid Kind = iota
	KindHazard
	KindPortal
	KindCharacter
	KindEnemy
	KindInteractable
	KindPlatform
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindHazard:
		return "hazard"
	case KindPortal:
		return "portal"
	case KindCharacter:
		return "character"
	case KindEnemy:
		return "enemy"
	case KindInteractable:
		return "interactable"
	case KindPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// Killable is implemented by world objects a stomp can destroy.
type Killable interface {
	Kill()
}

// Interactor is the view of the acting character an Interactable receives.
type Interactor interface {
	Character() common.CharacterID
	Position() cp.Vector
}

// Interactable is implemented by world objects the Logic character can
// trigger with its interact ray.
type Interactable interface {
	Interact(actor Interactor)
}

// Revealable is implemented by world objects the Logic scan uncovers.
// Reveal must be idempotent once the reveal is permanent.
type Revealable interface {
	Reveal(durationFrames int)
}

// Standable is implemented by world objects that react to a character
// standing on them (unstable platforms).
type Standable interface {
	StoodOn(by common.CharacterID)
}

// Contact is the registry entry attached to every collider. Capabilities
// are resolved once at registration time, never per collision.
type Contact struct {
	Kind      Kind
	Character common.CharacterID // valid when Kind == KindCharacter
	Owner     any

	Killable     Killable
	Interactable Interactable
	Revealable   Revealable
	Standable    Standable

	// query geometry: static colliders keep a fixed rect, dynamic ones
	// derive theirs from the body position each query
	body      *cp.Body
	shape     *cp.Shape
	x, y      float64
	width     float64
	height    float64
	hasBounds bool
}

// Body returns the collider's body, nil for static geometry.
func (c *Contact) Body() *cp.Body {
	if c == nil {
		return nil
	}
	return c.body
}

// bounds returns the collider's current AABB.
func (c *Contact) bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if c == nil || !c.hasBounds {
		return 0, 0, 0, 0, false
	}
	if c.body != nil {
		pos := c.body.Position()
		return pos.X - c.width/2, pos.Y - c.height/2,
			pos.X + c.width/2, pos.Y + c.height/2, true
	}
	return c.x, c.y, c.x + c.width, c.y + c.height, true
}

// newContact resolves the owner's capabilities up front.
func newContact(kind Kind, owner any) *Contact {
	c := &Contact{Kind: kind, Owner: owner}
	if k, ok := owner.(Killable); ok {
		c.Killable = k
	}
	if i, ok := owner.(Interactable); ok {
		c.Interactable = i
	}
	if r, ok := owner.(Revealable); ok {
		c.Revealable = r
	}
	if s, ok := owner.(Standable); ok {
		c.Standable = s
	}
	return c
}
