package actor

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pmorrigan/innersplit/common"
	"github.com/pmorrigan/innersplit/config"
	"github.com/pmorrigan/innersplit/physics"
)

type spendCall struct {
	side common.Side
	cost int
}

type fakeSession struct {
	spendResult bool
	spends      []spendCall
	swaps       int
}

func (s *fakeSession) TrySpendPoints(side common.Side, cost int) bool {
	s.spends = append(s.spends, spendCall{side: side, cost: cost})
	return s.spendResult
}

func (s *fakeSession) SwapCharacterPositions() { s.swaps++ }

type fakeRecorder struct {
	emotion []int
	logic   []int
}

func (r *fakeRecorder) RegisterEmotionAction(weight int) { r.emotion = append(r.emotion, weight) }
func (r *fakeRecorder) RegisterLogicAction(weight int)   { r.logic = append(r.logic, weight) }

func newEmotionFixture(t *testing.T) (*Emotion, *Input, *physics.World, *fakeSession, *fakeRecorder) {
	t.Helper()
	world := physics.NewWorld()
	input := &Input{}
	sess := &fakeSession{spendResult: true}
	rec := &fakeRecorder{}
	e := NewEmotion(config.Default().Emotion, input, world, sess, rec, cp.Vector{X: 100, Y: 100})
	return e, input, world, sess, rec
}

func TestUpdateFacing(t *testing.T) {
	tests := []struct {
		name   string
		facing float64
		moveX  float64
		want   float64
	}{
		{name: "inside_deadzone_keeps_facing", facing: 1, moveX: 0.1, want: 1},
		{name: "left_past_deadzone_flips", facing: 1, moveX: -0.5, want: -1},
		{name: "right_past_deadzone_flips", facing: -1, moveX: 0.5, want: 1},
		{name: "same_direction_is_stable", facing: 1, moveX: 1, want: 1},
		{name: "zero_keeps_facing", facing: -1, moveX: 0, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := updateFacing(tt.facing, tt.moveX); got != tt.want {
				t.Errorf("updateFacing(%v, %v) = %v, want %v", tt.facing, tt.moveX, got, tt.want)
			}
		})
	}
}

func TestEmotionJumpCounter(t *testing.T) {
	e, input, world, _, _ := newEmotionFixture(t)
	cfg := e.cfg
	state := world.State(common.CharacterEmotion)

	state.Grounded = true
	input.JumpPressed = true
	e.Update()
	if vy := e.body.Velocity().Y; vy != -cfg.FirstJumpForce {
		t.Fatalf("first jump vy = %v, want %v", vy, -cfg.FirstJumpForce)
	}

	state.Grounded = false
	state.GroundGrace = 0
	e.Update()
	if vy := e.body.Velocity().Y; vy != -cfg.SecondJumpForce {
		t.Fatalf("second jump vy = %v, want %v", vy, -cfg.SecondJumpForce)
	}

	// both jumps spent, a third press must change nothing
	e.body.SetVelocity(0, 3)
	e.Update()
	if vy := e.body.Velocity().Y; vy != 3 {
		t.Fatalf("third jump changed vy to %v, want 3", vy)
	}

	// landing resets the counter
	state.Grounded = true
	e.Update()
	if vy := e.body.Velocity().Y; vy != -cfg.FirstJumpForce {
		t.Fatalf("jump after landing vy = %v, want %v", vy, -cfg.FirstJumpForce)
	}
}

func TestEmotionDashLifecycle(t *testing.T) {
	e, input, _, _, rec := newEmotionFixture(t)
	e.cfg.DashDurationFrames = 3
	e.cfg.DashCooldownFrames = 4

	input.DashPressed = true
	e.Update()
	if !e.Dashing() {
		t.Fatal("dash press did not start a dash")
	}
	if vx := e.body.Velocity().X; vx != e.cfg.DashSpeed {
		t.Fatalf("dash vx = %v, want %v", vx, e.cfg.DashSpeed)
	}
	if len(rec.emotion) != 1 {
		t.Fatalf("dash registered %d actions, want 1", len(rec.emotion))
	}

	// jumps are rejected for the whole dash window
	input.JumpPressed = true
	e.Update()
	if vy := e.body.Velocity().Y; vy != 0 {
		t.Fatalf("jump during dash changed vy to %v", vy)
	}
	input.JumpPressed = false

	for i := 0; i < e.cfg.DashDurationFrames; i++ {
		e.OnPhysics()
	}
	if e.Dashing() {
		t.Fatal("dash still active after its duration elapsed")
	}

	// a press during cooldown is dropped, not queued
	e.Update()
	if e.Dashing() {
		t.Fatal("dash press during cooldown started a dash")
	}
	if len(rec.emotion) != 1 {
		t.Fatalf("cooldown press registered an action, total %d", len(rec.emotion))
	}

	for i := 0; i < e.cfg.DashCooldownFrames; i++ {
		e.OnPhysics()
	}
	e.Update()
	if !e.Dashing() {
		t.Fatal("dash press after cooldown did not start a dash")
	}
}

func TestEmotionLockoutCancelsDash(t *testing.T) {
	e, input, world, _, _ := newEmotionFixture(t)
	e.cfg.DashCooldownFrames = 4

	input.DashPressed = true
	e.Update()
	if !e.Dashing() {
		t.Fatal("dash press did not start a dash")
	}

	// a mid-dash lockout ends the dash and hands gravity back
	e.SetControllable(false)
	if e.Dashing() {
		t.Fatal("lockout left the dash active")
	}
	if v := e.body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("lockout left velocity %+v", v)
	}

	world.BeginStep()
	world.Step(1.0)
	if vy := e.body.Velocity().Y; vy <= 0 {
		t.Fatalf("locked character is not falling, vy = %v", vy)
	}

	// the cancelled dash went straight into cooldown
	e.SetControllable(true)
	e.Update()
	if e.Dashing() {
		t.Fatal("dash press during the cancel cooldown started a dash")
	}
	for i := 0; i < e.cfg.DashCooldownFrames; i++ {
		e.OnPhysics()
	}
	e.Update()
	if !e.Dashing() {
		t.Fatal("dash press after the cancel cooldown did not start a dash")
	}
}

type stompTarget struct {
	kills   int
	destroy func()
}

func (s *stompTarget) Kill() {
	s.kills++
	if s.destroy != nil {
		s.destroy()
		s.destroy = nil
	}
}

func TestEmotionStompKillsOnce(t *testing.T) {
	e, _, world, _, rec := newEmotionFixture(t)

	target := &stompTarget{}
	body, shape := world.AddKinematic(physics.KindEnemy, target, cp.Vector{X: 100, Y: 150}, 28, 28)
	target.destroy = func() {
		world.RemoveShape(shape)
		world.RemoveBody(body)
	}

	e.body.SetVelocity(0, 5)
	e.OnPhysics()

	if target.kills != 1 {
		t.Fatalf("stomp killed %d times, want 1", target.kills)
	}
	if vy := e.body.Velocity().Y; vy != -e.cfg.StompBounce {
		t.Fatalf("stomp bounce vy = %v, want %v", vy, -e.cfg.StompBounce)
	}
	if len(rec.emotion) != 1 {
		t.Fatalf("stomp registered %d actions, want 1", len(rec.emotion))
	}

	// the dead enemy is out of the space; falling again hits nothing
	e.body.SetVelocity(0, 5)
	e.OnPhysics()
	if target.kills != 1 {
		t.Fatalf("second fall killed again, total %d", target.kills)
	}
}

func TestEmotionApexStompConnects(t *testing.T) {
	e, _, world, _, _ := newEmotionFixture(t)

	target := &stompTarget{}
	body, shape := world.AddKinematic(physics.KindEnemy, target, cp.Vector{X: 100, Y: 150}, 28, 28)
	target.destroy = func() {
		world.RemoveShape(shape)
		world.RemoveBody(body)
	}

	// at the jump apex vertical velocity is exactly zero; the stomp
	// still has to connect
	e.body.SetVelocity(0, 0)
	e.OnPhysics()

	if target.kills != 1 {
		t.Fatalf("apex stomp killed %d times, want 1", target.kills)
	}
	if vy := e.body.Velocity().Y; vy != -e.cfg.StompBounce {
		t.Fatalf("apex stomp bounce vy = %v, want %v", vy, -e.cfg.StompBounce)
	}
}

func TestEmotionSwapSpendsPoints(t *testing.T) {
	e, input, _, sess, rec := newEmotionFixture(t)

	input.SwapPressed = true
	e.Update()
	if sess.swaps != 1 {
		t.Fatalf("swaps = %d, want 1", sess.swaps)
	}
	if len(sess.spends) != 1 || sess.spends[0] != (spendCall{side: common.SideEmotion, cost: e.cfg.SwapCost}) {
		t.Fatalf("unexpected spend calls %+v", sess.spends)
	}
	if len(rec.emotion) != 1 {
		t.Fatalf("swap registered %d actions, want 1", len(rec.emotion))
	}

	// an unaffordable swap must not move anyone
	sess.spendResult = false
	e.Update()
	if sess.swaps != 1 {
		t.Fatalf("unaffordable swap still swapped, total %d", sess.swaps)
	}
}

func TestEmotionUncontrollableIgnoresInput(t *testing.T) {
	e, input, world, _, _ := newEmotionFixture(t)
	world.State(common.CharacterEmotion).Grounded = true

	e.SetControllable(false)
	input.JumpPressed = true
	input.MoveX = 1
	e.Update()
	e.OnPhysics()
	if v := e.body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("locked character moved, velocity %+v", v)
	}
}

type revealTarget struct {
	durations []int
}

func (r *revealTarget) Reveal(durationFrames int) { r.durations = append(r.durations, durationFrames) }

type interactTarget struct {
	actors []common.CharacterID
}

func (d *interactTarget) Interact(actor physics.Interactor) {
	d.actors = append(d.actors, actor.Character())
}

func newLogicFixture(t *testing.T) (*Logic, *Input, *physics.World, *fakeSession, *fakeRecorder) {
	t.Helper()
	world := physics.NewWorld()
	input := &Input{}
	sess := &fakeSession{spendResult: true}
	rec := &fakeRecorder{}
	l := NewLogic(config.Default().Logic, input, world, sess, rec, cp.Vector{X: 100, Y: 100})
	return l, input, world, sess, rec
}

func TestLogicScan(t *testing.T) {
	l, input, world, sess, rec := newLogicFixture(t)

	near := &revealTarget{}
	world.AddStatic(physics.KindPlatform, near, 140, 90, 64, 16, true)
	far := &revealTarget{}
	world.AddStatic(physics.KindPlatform, far, 1000, 90, 64, 16, true)

	input.ScanPressed = true
	l.Update()

	if len(near.durations) != 1 || near.durations[0] != l.cfg.RevealDurationFrames {
		t.Fatalf("near reveal calls %v, want one with duration %d", near.durations, l.cfg.RevealDurationFrames)
	}
	if len(far.durations) != 0 {
		t.Fatalf("scan reached outside its radius: %v", far.durations)
	}
	if len(sess.spends) != 1 || sess.spends[0] != (spendCall{side: common.SideLogic, cost: l.cfg.ScanCost}) {
		t.Fatalf("unexpected spend calls %+v", sess.spends)
	}
	if len(rec.logic) != 1 {
		t.Fatalf("scan registered %d actions, want 1", len(rec.logic))
	}

	// an unaffordable scan reveals nothing
	sess.spendResult = false
	l.Update()
	if len(near.durations) != 1 {
		t.Fatalf("unaffordable scan still revealed, calls %v", near.durations)
	}
	if len(rec.logic) != 1 {
		t.Fatalf("unaffordable scan registered an action, total %d", len(rec.logic))
	}
}

func TestLogicInteract(t *testing.T) {
	l, input, world, _, rec := newLogicFixture(t)

	door := &interactTarget{}
	world.AddStatic(physics.KindInteractable, door, 130, 80, 32, 48, false)
	behind := &interactTarget{}
	world.AddStatic(physics.KindInteractable, behind, 40, 80, 32, 48, false)

	input.InteractPressed = true
	l.Update()

	if len(door.actors) != 1 || door.actors[0] != common.CharacterLogic {
		t.Fatalf("interact calls %v, want one from the logic character", door.actors)
	}
	if len(behind.actors) != 0 {
		t.Fatal("interact ray hit a target behind the character")
	}
	// interaction is progress-mandatory and must never count as style
	if len(rec.logic) != 0 {
		t.Fatalf("interact registered %d style actions, want 0", len(rec.logic))
	}
}

func TestLogicVerticalMovementGate(t *testing.T) {
	l, input, _, _, _ := newLogicFixture(t)
	input.MoveX = 1
	input.MoveY = -1

	l.OnPhysics()
	if v := l.body.Velocity(); v.Y != -l.cfg.MoveSpeed {
		t.Fatalf("vertical drift vy = %v, want %v", v.Y, -l.cfg.MoveSpeed)
	}

	l.cfg.VerticalMovement = false
	l.OnPhysics()
	if v := l.body.Velocity(); v.Y != 0 {
		t.Fatalf("vertical drift with the gate off vy = %v, want 0", v.Y)
	}
}
