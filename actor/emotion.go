package actor

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/pmorrigan/innersplit/common"
	"github.com/pmorrigan/innersplit/config"
	"github.com/pmorrigan/innersplit/physics"
)

const (
	emotionWidth  = 28
	emotionHeight = 56
)

// dashPhase is the dash ability state machine. Requests made while dashing
// or cooling down are no-ops, never queued.
type dashPhase int

const (
	dashIdle dashPhase = iota
	dashActive
	dashCooling
)

// Emotion is the gravity-bound character: run, double jump, dash, stomp,
// and the paid position swap.
type Emotion struct {
	cfg      config.Emotion
	input    *Input
	world    *physics.World
	session  Session
	recorder Recorder

	body *cp.Body

	controllable bool
	facing       float64

	jumpsUsed int

	dashState dashPhase
	dashTimer int
	dashDir   float64

	img *ebiten.Image
}

func NewEmotion(cfg config.Emotion, input *Input, world *physics.World, session Session, recorder Recorder, pos cp.Vector) *Emotion {
	e := &Emotion{
		cfg:          cfg,
		input:        input,
		world:        world,
		session:      session,
		recorder:     recorder,
		controllable: true,
		facing:       1,
	}
	e.body = world.AddCharacter(common.CharacterEmotion, e, pos, emotionWidth, emotionHeight, true)
	return e
}

// SetConfig hot-applies new tuning values.
func (e *Emotion) SetConfig(cfg config.Emotion) {
	if e == nil {
		return
	}
	e.cfg = cfg
}

func (e *Emotion) Character() common.CharacterID { return common.CharacterEmotion }

func (e *Emotion) Position() cp.Vector {
	if e == nil || e.body == nil {
		return cp.Vector{}
	}
	return e.body.Position()
}

func (e *Emotion) Facing() float64 { return e.facing }

// SetControllable toggles the input lockout. Disabling cancels an active
// dash and zeroes velocity so the character falls in place rather than
// coasting, or hanging on the dash's gravity lockout.
func (e *Emotion) SetControllable(controllable bool) {
	if e == nil {
		return
	}
	e.controllable = controllable
	if !controllable {
		e.cancelDash()
		if e.body != nil {
			e.body.SetVelocity(0, 0)
		}
	}
}

// cancelDash ends an active dash early: gravity back on, straight into
// the cooldown.
func (e *Emotion) cancelDash() {
	if e.dashState != dashActive {
		return
	}
	e.world.SetGravityEnabled(e.body, true)
	e.dashState = dashCooling
	e.dashTimer = e.cfg.DashCooldownFrames
}

func (e *Emotion) Controllable() bool { return e != nil && e.controllable }

// TeleportTo zeroes velocity and repositions the body. Only the session
// manager calls this (respawns and swaps).
func (e *Emotion) TeleportTo(pos cp.Vector) {
	if e == nil || e.body == nil {
		return
	}
	e.body.SetVelocity(0, 0)
	e.body.SetPosition(pos)
}

// Update samples per-frame intent: facing, jump, dash and swap edges.
func (e *Emotion) Update() {
	if e == nil || !e.controllable {
		return
	}

	e.facing = updateFacing(e.facing, e.input.MoveX)

	if e.world.State(common.CharacterEmotion).IsGrounded() {
		e.jumpsUsed = 0
	}

	if e.input.JumpPressed {
		e.tryJump()
	}
	if e.input.DashPressed {
		e.tryDash()
	}
	if e.input.SwapPressed {
		e.trySwap()
	}
}

func (e *Emotion) tryJump() {
	if e.dashState == dashActive || e.jumpsUsed >= e.cfg.MaxJumps {
		return
	}
	force := e.cfg.SecondJumpForce
	if e.jumpsUsed == 0 && e.world.State(common.CharacterEmotion).IsGrounded() {
		force = e.cfg.FirstJumpForce
	}
	e.jumpsUsed++
	v := e.body.Velocity()
	e.body.SetVelocity(v.X, -force)
}

func (e *Emotion) tryDash() {
	if e.dashState != dashIdle {
		return
	}
	dir := e.facing
	if math.Abs(e.input.MoveX) > facingDeadzone {
		dir = math.Copysign(1, e.input.MoveX)
	}
	e.dashState = dashActive
	e.dashTimer = e.cfg.DashDurationFrames
	e.dashDir = dir
	e.world.SetGravityEnabled(e.body, false)
	e.body.SetVelocity(dir*e.cfg.DashSpeed, 0)
	if e.recorder != nil {
		e.recorder.RegisterEmotionAction(e.cfg.ActionWeight)
	}
}

func (e *Emotion) trySwap() {
	if e.session == nil {
		return
	}
	if !e.session.TrySpendPoints(common.SideEmotion, e.cfg.SwapCost) {
		return
	}
	e.session.SwapCharacterPositions()
	if e.recorder != nil {
		e.recorder.RegisterEmotionAction(e.cfg.ActionWeight)
	}
}

// Dashing reports whether the dash lockout is active.
func (e *Emotion) Dashing() bool { return e != nil && e.dashState == dashActive }

// OnPhysics applies velocity for the upcoming physics step.
func (e *Emotion) OnPhysics() {
	if e == nil || e.body == nil {
		return
	}
	if !e.controllable {
		return
	}

	switch e.dashState {
	case dashActive:
		// gravity is off; hold the dash velocity for the whole window
		e.body.SetVelocity(e.dashDir*e.cfg.DashSpeed, 0)
		e.dashTimer--
		if e.dashTimer <= 0 {
			e.world.SetGravityEnabled(e.body, true)
			e.dashState = dashCooling
			e.dashTimer = e.cfg.DashCooldownFrames
		}
		return
	case dashCooling:
		e.dashTimer--
		if e.dashTimer <= 0 {
			e.dashState = dashIdle
		}
	}

	v := e.body.Velocity()
	e.body.SetVelocity(e.input.MoveX*e.cfg.MoveSpeed, v.Y)

	// zero included so an apex stomp still connects
	if v.Y >= 0 {
		e.stompCheck()
	}
}

// stompCheck casts a short ray under the feet while not rising and kills
// the first enemy it touches, bouncing the character back up.
func (e *Emotion) stompCheck() {
	pos := e.body.Position()
	x := pos.X
	y0 := pos.Y + emotionHeight/2
	y1 := y0 + e.cfg.StompRayLength

	hit, ok := e.world.Raycast(x, y0, x, y1, func(c *physics.Contact) bool {
		return c.Kind == physics.KindEnemy
	})
	if !ok {
		return
	}

	if hit.Contact.Killable != nil {
		hit.Contact.Killable.Kill()
	} else {
		e.world.Destroy(hit.Contact)
	}

	v := e.body.Velocity()
	if v.Y > 0 {
		e.body.SetVelocity(v.X, 0)
	}
	v = e.body.Velocity()
	e.body.SetVelocity(v.X, v.Y-e.cfg.StompBounce)

	if e.recorder != nil {
		e.recorder.RegisterEmotionAction(e.cfg.ActionWeight)
	}
}

// Draw renders the placeholder sprite, mirrored to the facing direction.
func (e *Emotion) Draw(screen *ebiten.Image) {
	if e == nil || e.body == nil {
		return
	}
	if e.img == nil {
		e.img = ebiten.NewImage(emotionWidth, emotionHeight)
		e.img.Fill(colornames.Crimson)
	}
	pos := e.body.Position()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(e.facing, 1)
	if e.facing < 0 {
		op.GeoM.Translate(emotionWidth, 0)
	}
	op.GeoM.Translate(pos.X-emotionWidth/2, pos.Y-emotionHeight/2)
	screen.DrawImage(e.img, op)
}
