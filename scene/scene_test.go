package scene

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pmorrigan/innersplit/actor"
	"github.com/pmorrigan/innersplit/config"
	"github.com/pmorrigan/innersplit/levels"
	"github.com/pmorrigan/innersplit/physics"
	"github.com/pmorrigan/innersplit/session"
	"github.com/pmorrigan/innersplit/telemetry"
)

type fakeLoader struct {
	reloads int
	nexts   int
}

func (l *fakeLoader) ReloadLevel()   { l.reloads++ }
func (l *fakeLoader) LoadNextLevel() { l.nexts++ }

func solidCount(w *physics.World, minX, minY, maxX, maxY float64) int {
	return len(w.OverlapBox(minX, minY, maxX, maxY, func(c *physics.Contact) bool {
		return c.Kind == physics.KindSolid
	}))
}

func TestHiddenPlatformRevealIsPermanentAndIdempotent(t *testing.T) {
	w := physics.NewWorld()
	p := newHiddenPlatform(w, 100, 100, 96, 16)

	if p.Revealed() {
		t.Fatal("platform revealed before any scan")
	}
	if n := solidCount(w, 90, 90, 210, 130); n != 0 {
		t.Fatalf("hidden platform already has %d solid shapes", n)
	}

	p.Reveal(10)
	if !p.Revealed() {
		t.Fatal("reveal did not take")
	}
	if n := solidCount(w, 90, 90, 210, 130); n != 1 {
		t.Fatalf("revealed platform has %d solid shapes, want 1", n)
	}

	// repeat reveals must not stack shapes or restart the fade
	p.Reveal(10)
	p.Reveal(10)
	if n := solidCount(w, 90, 90, 210, 130); n != 1 {
		t.Fatalf("repeat reveal stacked shapes, now %d", n)
	}

	for i := 0; i < 20; i++ {
		p.Update()
	}
	if !p.Revealed() {
		t.Fatal("reveal did not stay permanent after the fade")
	}
}

func TestUnstablePlatformCycle(t *testing.T) {
	w := physics.NewWorld()
	p := newUnstablePlatform(w, 100, 100, 96, 16)

	platformCount := func() int {
		return len(w.OverlapBox(90, 90, 210, 130, func(c *physics.Contact) bool {
			return c.Kind == physics.KindPlatform
		}))
	}

	if got := p.Phase(); got != int(platformStable) {
		t.Fatalf("initial phase %d, want stable", got)
	}

	// idle platforms never start shaking on their own
	for i := 0; i < 10; i++ {
		p.Update()
	}
	if got := p.Phase(); got != int(platformStable) {
		t.Fatalf("idle platform left stable, phase %d", got)
	}

	p.StoodOn(0)
	p.Update()
	if got := p.Phase(); got != int(platformShaking) {
		t.Fatalf("phase after standing %d, want shaking", got)
	}
	if platformCount() != 1 {
		t.Fatal("shaking platform lost its shape early")
	}

	for i := 0; i < platformShakeTicks; i++ {
		p.Update()
	}
	if got := p.Phase(); got != int(platformGone) {
		t.Fatalf("phase after shake window %d, want gone", got)
	}
	if platformCount() != 0 {
		t.Fatal("gone platform still has a shape")
	}

	for i := 0; i < platformGoneTicks; i++ {
		p.Update()
	}
	if got := p.Phase(); got != int(platformStable) {
		t.Fatalf("phase after respawn delay %d, want stable", got)
	}
	if platformCount() != 1 {
		t.Fatal("respawned platform has no shape")
	}
}

func TestDoorOpensOnce(t *testing.T) {
	w := physics.NewWorld()
	d := newDoor(w, 100, 100, 32, 96)

	doorCount := func() int {
		return len(w.OverlapBox(90, 90, 140, 200, func(c *physics.Contact) bool {
			return c.Kind == physics.KindInteractable
		}))
	}

	if doorCount() != 1 {
		t.Fatal("closed door has no collider")
	}

	d.Interact(nil)
	if doorCount() != 0 {
		t.Fatal("open door still blocks")
	}

	d.Interact(nil)
	if doorCount() != 0 {
		t.Fatal("second interact resurrected the door")
	}
}

func TestBuildFirstLevel(t *testing.T) {
	lvl, err := levels.LoadByIndex(0)
	if err != nil {
		t.Fatalf("load level 0: %v", err)
	}

	cfg := config.Default()
	input := actor.NewInput()
	tele := telemetry.NewEngine(telemetry.DefaultConfig())
	sess := session.NewManager(cfg.Session, tele, &fakeLoader{})

	sc, err := Build(lvl, 0, cfg, input, sess, tele)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}

	b := sc.Bindings()
	if b.Emotion == nil || b.Logic == nil {
		t.Fatal("bindings missing a character")
	}
	if b.EmotionSpawn == b.LogicSpawn {
		t.Fatal("both characters share one spawn")
	}
	if len(sc.portals) == 0 {
		t.Fatal("level has no exit portal")
	}

	sess.OnSceneLoaded(b, false)
	if !sess.ActiveIsEmotion() {
		t.Fatal("emotion is not the active character after load")
	}

	// a few simulation frames must run clean
	for i := 0; i < 10; i++ {
		sc.Tick()
		sess.Tick()
	}
}

func TestBuildRejectsUnknownEntity(t *testing.T) {
	lvl := &levels.Level{
		Name:   "broken",
		Width:  4,
		Height: 4,
		Layers: [][]int{make([]int, 16)},
		Entities: []levels.Entity{
			{Type: "teleporter", X: 1, Y: 1},
		},
	}
	cfg := config.Default()
	tele := telemetry.NewEngine(telemetry.DefaultConfig())
	sess := session.NewManager(cfg.Session, tele, &fakeLoader{})

	if _, err := Build(lvl, 0, cfg, actor.NewInput(), sess, tele); err == nil {
		t.Fatal("unknown entity type did not fail the build")
	}
}

func TestEnemyPatrolFlipsAtLeash(t *testing.T) {
	w := physics.NewWorld()
	e, err := newEnemy(w, nil, vec(100, 100), 64, 2.0, "patrol.tengo", 50)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}

	// walk right until the leash end, then the script must flip the direction
	for i := 0; i < 200 && e.dir > 0; i++ {
		e.Update()
		w.BeginStep()
		w.Step(1.0)
	}
	if e.dir > 0 {
		t.Fatal("enemy never turned at the right leash end")
	}

	for i := 0; i < 200 && e.dir < 0; i++ {
		e.Update()
		w.BeginStep()
		w.Step(1.0)
	}
	if e.dir < 0 {
		t.Fatal("enemy never turned at the left leash end")
	}
}

func TestEnemyKillAwardsScoreOnce(t *testing.T) {
	w := physics.NewWorld()
	scorer := &countingScorer{}
	e, err := newEnemy(w, scorer, vec(100, 100), 64, 2.0, "patrol.tengo", 50)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}

	e.Kill()
	e.Kill()
	if scorer.total != 50 {
		t.Fatalf("score after double kill %d, want 50", scorer.total)
	}
	if !e.Dead() {
		t.Fatal("killed enemy not dead")
	}
}

type countingScorer struct{ total int }

func (s *countingScorer) AddScore(points int) { s.total += points }

func vec(x, y float64) cp.Vector { return cp.Vector{X: x, Y: y} }
