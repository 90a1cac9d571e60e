// Package physics wraps the Chipmunk space behind the narrow query and
// contact surface the gameplay core needs: character bodies with ground
// sensing, tagged static geometry, portal occupancy events, raycasts and
// area overlaps.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pmorrigan/innersplit/common"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeHazard
	collisionTypePortal
	collisionTypeCharacter
	collisionTypeEnemy
	collisionTypeInteractable
	collisionTypePlatform
	collisionTypeGroundSensor
)

// characterGroup keeps the two characters from colliding with each other
// and lets their own rays/overlaps skip both bodies.
const characterGroup uint = 1

// CharacterState carries the per-step contact flags for one character.
// Flags are cleared in BeginStep and set by collision handlers during Step.
type CharacterState struct {
	Grounded    bool
	GroundGrace int
	HitHazard   bool
	HitEnemy    bool
}

// IsGrounded reports grounded-ness with the usual post-contact grace.
func (s *CharacterState) IsGrounded() bool {
	if s == nil {
		return false
	}
	return s.Grounded || s.GroundGrace > 0
}

// PortalEvent records a character entering or leaving a portal zone.
type PortalEvent struct {
	Character common.CharacterID
	Portal    any
	Entered   bool
}

// World owns the Chipmunk space and the shape -> contact registry.
type World struct {
	space         *cp.Space
	handlersReady bool

	contacts    map[*cp.Shape]*Contact
	groundOwner map[*cp.Shape]common.CharacterID
	charStates  map[common.CharacterID]*CharacterState

	portalEvents []PortalEvent
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	w := &World{
		space:       space,
		contacts:    make(map[*cp.Shape]*Contact),
		groundOwner: make(map[*cp.Shape]common.CharacterID),
		charStates:  make(map[common.CharacterID]*CharacterState),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// State returns the contact flags for a character body added via
// AddCharacter.
func (w *World) State(id common.CharacterID) *CharacterState {
	if w == nil {
		return nil
	}
	return w.charStates[id]
}

// ContactFor resolves a shape back to its registry entry.
func (w *World) ContactFor(shape *cp.Shape) *Contact {
	if w == nil || shape == nil {
		return nil
	}
	return w.contacts[shape]
}

// AddCharacter creates the dynamic body for one character: a fixed-rotation
// box plus a thin ground sensor hanging under it. Gravity can be disabled
// for the Logic character.
func (w *World) AddCharacter(id common.CharacterID, owner any, pos cp.Vector, width, height float64, gravity bool) *cp.Body {
	if w == nil || w.space == nil {
		return nil
	}

	mass := 1.0
	body := cp.NewBody(mass, math.Inf(1))
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	body.SetPosition(pos)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.NewShapeFilter(characterGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	if !gravity {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	}

	w.space.AddBody(body)
	w.space.AddShape(shape)

	contact := newContact(KindCharacter, owner)
	contact.Character = id
	contact.body = body
	contact.shape = shape
	contact.width = width
	contact.height = height
	contact.hasBounds = true
	w.contacts[shape] = contact

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2,
		R: width * 0.45,
		T: height/2 + 2,
	}
	ground := cp.NewBox2(body, groundBB, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypeGroundSensor)
	ground.SetFilter(cp.NewShapeFilter(characterGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	w.space.AddShape(ground)
	w.groundOwner[ground] = id

	w.charStates[id] = &CharacterState{}
	return body
}

// SetGravityEnabled toggles gravity integration for a single body. Used by
// the dash lockout.
func (w *World) SetGravityEnabled(body *cp.Body, enabled bool) {
	if body == nil {
		return
	}
	if enabled {
		body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
}

func kindCollisionType(kind Kind) cp.CollisionType {
	switch kind {
	case KindHazard:
		return collisionTypeHazard
	case KindPortal:
		return collisionTypePortal
	case KindEnemy:
		return collisionTypeEnemy
	case KindInteractable:
		return collisionTypeInteractable
	case KindPlatform:
		return collisionTypePlatform
	default:
		return collisionTypeSolid
	}
}

// AddStatic registers a static box collider. x,y is the top-left corner.
// Hazards and portals are sensors; solids, doors and platforms collide.
func (w *World) AddStatic(kind Kind, owner any, x, y, width, height float64, sensor bool) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetSensor(sensor)
	shape.SetCollisionType(kindCollisionType(kind))
	w.space.AddShape(shape)

	contact := newContact(kind, owner)
	contact.shape = shape
	contact.x = x
	contact.y = y
	contact.width = width
	contact.height = height
	contact.hasBounds = true
	w.contacts[shape] = contact
	return shape
}

// AddKinematic registers a script-driven body (enemies). The body ignores
// gravity and moves only by the velocity its owner sets.
func (w *World) AddKinematic(kind Kind, owner any, pos cp.Vector, width, height float64) (*cp.Body, *cp.Shape) {
	if w == nil || w.space == nil {
		return nil, nil
	}
	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetCollisionType(kindCollisionType(kind))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	contact := newContact(kind, owner)
	contact.body = body
	contact.shape = shape
	contact.width = width
	contact.height = height
	contact.hasBounds = true
	w.contacts[shape] = contact
	return body, shape
}

// Destroy removes a contact's collider (and body, when dynamic) from the
// space. Used when a stomped target exposes no kill capability.
func (w *World) Destroy(c *Contact) {
	if w == nil || c == nil {
		return
	}
	if c.shape != nil {
		w.RemoveShape(c.shape)
	}
	if c.body != nil {
		w.RemoveBody(c.body)
	}
}

// RemoveShape takes a collider out of the space and the registry.
func (w *World) RemoveShape(shape *cp.Shape) {
	if w == nil || w.space == nil || shape == nil {
		return
	}
	w.space.RemoveShape(shape)
	delete(w.contacts, shape)
}

// RemoveBody takes a body out of the space. Remove its shapes first.
func (w *World) RemoveBody(body *cp.Body) {
	if w == nil || w.space == nil || body == nil {
		return
	}
	w.space.RemoveBody(body)
}

// AddBounds fences the level with segment walls.
func (w *World) AddBounds(width, height float64) {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		w.space.AddShape(shape)
		w.contacts[shape] = newContact(KindSolid, nil)
	}
}

// BeginStep clears the per-step contact flags before handlers refill them.
func (w *World) BeginStep() {
	if w == nil {
		return
	}
	for _, state := range w.charStates {
		if state.GroundGrace > 0 {
			state.GroundGrace--
		}
		state.Grounded = false
		state.HitHazard = false
		state.HitEnemy = false
	}
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

// DrainPortalEvents returns and clears the portal enter/exit events
// recorded during the last steps.
func (w *World) DrainPortalEvents() []PortalEvent {
	if w == nil || len(w.portalEvents) == 0 {
		return nil
	}
	events := w.portalEvents
	w.portalEvents = nil
	return events
}

// characterFromArbiter finds which side of an arbiter is a registered
// character shape.
func (w *World) characterFromArbiter(arb *cp.Arbiter) (*Contact, *Contact, bool) {
	shapeA, shapeB := arb.Shapes()
	a := w.contacts[shapeA]
	b := w.contacts[shapeB]
	if a != nil && a.Kind == KindCharacter {
		return a, b, true
	}
	if b != nil && b.Kind == KindCharacter {
		return b, a, true
	}
	return nil, nil, false
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	groundSolid := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundSolid.UserData = w
	groundSolid.PreSolveFunc = groundPreSolve

	groundInteractable := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeInteractable)
	groundInteractable.UserData = w
	groundInteractable.PreSolveFunc = groundPreSolve

	groundPlatform := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypePlatform)
	groundPlatform.UserData = w
	groundPlatform.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		id, okA := world.groundOwner[shapeA]
		platformShape := shapeB
		if !okA {
			id, okA = world.groundOwner[shapeB]
			platformShape = shapeA
			if !okA {
				return true
			}
		}
		// hidden platforms keep a sensor shape before they are solid
		if platformShape.Sensor() {
			return true
		}
		if state := world.charStates[id]; state != nil {
			state.Grounded = true
			state.GroundGrace = 6
		}
		if contact := world.contacts[platformShape]; contact != nil && contact.Standable != nil {
			contact.Standable.StoodOn(id)
		}
		return true
	}

	hazard := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeHazard)
	hazard.UserData = w
	hazard.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		if char, _, found := world.characterFromArbiter(arb); found {
			if state := world.charStates[char.Character]; state != nil {
				state.HitHazard = true
			}
		}
		return true
	}

	enemy := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeEnemy)
	enemy.UserData = w
	enemy.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		if char, _, found := world.characterFromArbiter(arb); found {
			if state := world.charStates[char.Character]; state != nil {
				state.HitEnemy = true
			}
		}
		// enemy contact hurts but never shoves
		return false
	}

	portal := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypePortal)
	portal.UserData = w
	portal.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		if char, other, found := world.characterFromArbiter(arb); found && other != nil {
			world.portalEvents = append(world.portalEvents, PortalEvent{
				Character: char.Character,
				Portal:    other.Owner,
				Entered:   true,
			})
		}
		return true
	}
	portal.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		if char, other, found := world.characterFromArbiter(arb); found && other != nil {
			world.portalEvents = append(world.portalEvents, PortalEvent{
				Character: char.Character,
				Portal:    other.Owner,
				Entered:   false,
			})
		}
	}

	w.handlersReady = true
}

func groundPreSolve(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	world, ok := userData.(*World)
	if !ok || world == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	id, found := world.groundOwner[shapeA]
	if !found {
		if id, found = world.groundOwner[shapeB]; !found {
			return true
		}
	}
	if state := world.charStates[id]; state != nil {
		state.Grounded = true
		state.GroundGrace = 6
	}
	return true
}
