package scene

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/pmorrigan/innersplit/common"
	"github.com/pmorrigan/innersplit/physics"
)

const (
	doorFadeFrames     = 20
	platformShakeTicks = 36
	platformGoneTicks  = 120
)

// Portal is the exit zone. Occupancy is tracked by the physics world's
// portal events; the object itself only draws.
type Portal struct {
	x, y, w, h float64
}

func newPortal(world *physics.World, x, y, w, h float64) *Portal {
	p := &Portal{x: x, y: y, w: w, h: h}
	world.AddStatic(physics.KindPortal, p, x, y, w, h, true)
	return p
}

func (p *Portal) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(p.x), float32(p.y), float32(p.w), float32(p.h),
		color.RGBA{R: 0x93, G: 0x70, B: 0xdb, A: 0x66}, false)
}

// Door is a solid barrier the Logic character opens with its interact ray.
// Opening is one-way: once open it fades out and stays out.
type Door struct {
	world       *physics.World
	x, y, w, h  float64
	open        bool
	fadeTimer   int
	removeShape func()
}

func newDoor(world *physics.World, x, y, w, h float64) *Door {
	d := &Door{world: world, x: x, y: y, w: w, h: h}
	shape := world.AddStatic(physics.KindInteractable, d, x, y, w, h, false)
	d.removeShape = func() { world.RemoveShape(shape) }
	return d
}

// Interact opens the door. Further interactions are no-ops.
func (d *Door) Interact(actor physics.Interactor) {
	if d == nil || d.open {
		return
	}
	d.open = true
	d.fadeTimer = doorFadeFrames
	if d.removeShape != nil {
		d.removeShape()
		d.removeShape = nil
	}
}

func (d *Door) Update() {
	if d.open && d.fadeTimer > 0 {
		d.fadeTimer--
	}
}

func (d *Door) Draw(screen *ebiten.Image) {
	alpha := 1.0
	if d.open {
		alpha = float64(d.fadeTimer) / doorFadeFrames
	}
	if alpha <= 0 {
		return
	}
	c := colornames.Saddlebrown
	c.A = uint8(255 * alpha)
	vector.DrawFilledRect(screen, float32(d.x), float32(d.y), float32(d.w), float32(d.h), c, false)
}

type revealPhase int

const (
	revealHidden revealPhase = iota
	revealFading
	revealDone
)

// HiddenPlatform is invisible and intangible until a scan reveals it.
// The reveal fades it in and is permanent; repeat reveals are no-ops.
type HiddenPlatform struct {
	world      *physics.World
	x, y, w, h float64

	phase     revealPhase
	fadeTotal int
	fadeTimer int
}

func newHiddenPlatform(world *physics.World, x, y, w, h float64) *HiddenPlatform {
	p := &HiddenPlatform{world: world, x: x, y: y, w: w, h: h}
	// register a sensor so scans can find it before it is solid
	world.AddStatic(physics.KindPlatform, p, x, y, w, h, true)
	return p
}

// Reveal begins the fade-in and makes the platform solid.
func (p *HiddenPlatform) Reveal(durationFrames int) {
	if p == nil || p.phase != revealHidden {
		return
	}
	if durationFrames < 1 {
		durationFrames = 1
	}
	p.phase = revealFading
	p.fadeTotal = durationFrames
	p.fadeTimer = durationFrames
	p.world.AddStatic(physics.KindSolid, p, p.x, p.y, p.w, p.h, false)
}

// Revealed reports whether the platform has been uncovered.
func (p *HiddenPlatform) Revealed() bool { return p != nil && p.phase != revealHidden }

func (p *HiddenPlatform) Update() {
	if p.phase != revealFading {
		return
	}
	p.fadeTimer--
	if p.fadeTimer <= 0 {
		p.phase = revealDone
	}
}

func (p *HiddenPlatform) Draw(screen *ebiten.Image) {
	var alpha float64
	switch p.phase {
	case revealHidden:
		return
	case revealFading:
		alpha = 1 - float64(p.fadeTimer)/float64(p.fadeTotal)
	default:
		alpha = 1
	}
	c := colornames.Lightseagreen
	c.A = uint8(255 * alpha)
	vector.DrawFilledRect(screen, float32(p.x), float32(p.y), float32(p.w), float32(p.h), c, false)
}

type platformPhase int

const (
	platformStable platformPhase = iota
	platformShaking
	platformGone
)

// UnstablePlatform shakes once something stands on it, drops out, and
// returns after a delay. The cycle is a plain phase enum plus tick
// counters.
type UnstablePlatform struct {
	world      *physics.World
	x, y, w, h float64

	phase  platformPhase
	timer  int
	frames int
	stood  bool

	removeShape func()
}

func newUnstablePlatform(world *physics.World, x, y, w, h float64) *UnstablePlatform {
	p := &UnstablePlatform{world: world, x: x, y: y, w: w, h: h}
	p.addShape()
	return p
}

func (p *UnstablePlatform) addShape() {
	shape := p.world.AddStatic(physics.KindPlatform, p, p.x, p.y, p.w, p.h, false)
	p.removeShape = func() { p.world.RemoveShape(shape) }
}

// StoodOn is called from the collision handler while a character stands on
// the platform. Only the flag is set here; the phase transition happens in
// Update, outside the physics step.
func (p *UnstablePlatform) StoodOn(by common.CharacterID) {
	if p == nil {
		return
	}
	p.stood = true
}

func (p *UnstablePlatform) Phase() int { return int(p.phase) }

func (p *UnstablePlatform) Update() {
	p.frames++
	stood := p.stood
	p.stood = false

	switch p.phase {
	case platformStable:
		if stood {
			p.phase = platformShaking
			p.timer = platformShakeTicks
		}
	case platformShaking:
		p.timer--
		if p.timer <= 0 {
			p.phase = platformGone
			p.timer = platformGoneTicks
			if p.removeShape != nil {
				p.removeShape()
				p.removeShape = nil
			}
		}
	case platformGone:
		p.timer--
		if p.timer <= 0 {
			p.phase = platformStable
			p.addShape()
		}
	}
}

func (p *UnstablePlatform) Draw(screen *ebiten.Image) {
	if p.phase == platformGone {
		return
	}
	x := p.x
	if p.phase == platformShaking {
		x += 2 * math.Sin(float64(p.frames)*0.8)
	}
	vector.DrawFilledRect(screen, float32(x), float32(p.y), float32(p.w), float32(p.h),
		colornames.Burlywood, false)
}
