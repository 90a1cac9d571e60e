package actor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/pmorrigan/innersplit/common"
	"github.com/pmorrigan/innersplit/config"
	"github.com/pmorrigan/innersplit/physics"
)

const (
	logicWidth  = 28
	logicHeight = 44
)

// Logic is the gravity-free character: 4-directional drift, a short
// interact ray, and the paid area scan that reveals hidden scenery.
type Logic struct {
	cfg      config.Logic
	input    *Input
	world    *physics.World
	session  Session
	recorder Recorder

	body *cp.Body

	controllable bool
	facing       float64

	img *ebiten.Image
}

func NewLogic(cfg config.Logic, input *Input, world *physics.World, session Session, recorder Recorder, pos cp.Vector) *Logic {
	l := &Logic{
		cfg:     cfg,
		input:   input,
		world:   world,
		session: session,
		recorder: recorder,
		facing:  1,
	}
	l.body = world.AddCharacter(common.CharacterLogic, l, pos, logicWidth, logicHeight, false)
	return l
}

// SetConfig hot-applies new tuning values.
func (l *Logic) SetConfig(cfg config.Logic) {
	if l == nil {
		return
	}
	l.cfg = cfg
}

func (l *Logic) Character() common.CharacterID { return common.CharacterLogic }

func (l *Logic) Position() cp.Vector {
	if l == nil || l.body == nil {
		return cp.Vector{}
	}
	return l.body.Position()
}

func (l *Logic) Facing() float64 { return l.facing }

// SetControllable toggles the input lockout, zeroing velocity on disable.
func (l *Logic) SetControllable(controllable bool) {
	if l == nil {
		return
	}
	l.controllable = controllable
	if !controllable && l.body != nil {
		l.body.SetVelocity(0, 0)
	}
}

func (l *Logic) Controllable() bool { return l != nil && l.controllable }

// TeleportTo zeroes velocity and repositions the body.
func (l *Logic) TeleportTo(pos cp.Vector) {
	if l == nil || l.body == nil {
		return
	}
	l.body.SetVelocity(0, 0)
	l.body.SetPosition(pos)
}

// Update samples per-frame intent: facing, interact and scan edges.
func (l *Logic) Update() {
	if l == nil || !l.controllable {
		return
	}

	l.facing = updateFacing(l.facing, l.input.MoveX)

	if l.input.InteractPressed {
		l.tryInteract()
	}
	if l.input.ScanPressed {
		l.tryScan()
	}
}

// tryInteract casts a short ray in the facing direction and triggers the
// first interactable it touches.
func (l *Logic) tryInteract() {
	pos := l.body.Position()
	x0 := pos.X + l.facing*logicWidth/2
	x1 := x0 + l.facing*l.cfg.InteractRange

	hit, ok := l.world.Raycast(x0, pos.Y, x1, pos.Y, func(c *physics.Contact) bool {
		return c.Interactable != nil
	})
	if !ok {
		return
	}
	hit.Contact.Interactable.Interact(l)
}

// tryScan spends the scan cost; on success every revealable inside the
// scan box is uncovered.
func (l *Logic) tryScan() {
	if l.session == nil || !l.session.TrySpendPoints(common.SideLogic, l.cfg.ScanCost) {
		return
	}

	pos := l.body.Position()
	r := l.cfg.ScanRadius
	hits := l.world.OverlapBox(pos.X-r, pos.Y-r, pos.X+r, pos.Y+r, func(c *physics.Contact) bool {
		return c.Revealable != nil
	})
	for _, hit := range hits {
		hit.Revealable.Reveal(l.cfg.RevealDurationFrames)
	}

	if l.recorder != nil {
		l.recorder.RegisterLogicAction(l.cfg.ActionWeight)
	}
}

// OnPhysics applies the 4-directional drift velocity.
func (l *Logic) OnPhysics() {
	if l == nil || l.body == nil || !l.controllable {
		return
	}
	vy := 0.0
	if l.cfg.VerticalMovement {
		vy = l.input.MoveY * l.cfg.MoveSpeed
	}
	l.body.SetVelocity(l.input.MoveX*l.cfg.MoveSpeed, vy)
}

// Draw renders the placeholder sprite, mirrored to the facing direction.
func (l *Logic) Draw(screen *ebiten.Image) {
	if l == nil || l.body == nil {
		return
	}
	if l.img == nil {
		l.img = ebiten.NewImage(logicWidth, logicHeight)
		l.img.Fill(colornames.Steelblue)
	}
	pos := l.body.Position()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(l.facing, 1)
	if l.facing < 0 {
		op.GeoM.Translate(logicWidth, 0)
	}
	op.GeoM.Translate(pos.X-logicWidth/2, pos.Y-logicHeight/2)
	screen.DrawImage(l.img, op)
}
