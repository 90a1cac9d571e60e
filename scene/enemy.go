package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/pmorrigan/innersplit/levels"
	"github.com/pmorrigan/innersplit/physics"
)

const (
	enemyWidth  = 28.0
	enemyHeight = 28.0
)

// Scorer awards points for defeated enemies.
type Scorer interface {
	AddScore(points int)
}

// Enemy is a script-driven patroller. Each tick the compiled patrol
// script receives the enemy's position, leash origin/range and current
// direction, and hands back the direction for the next step.
type Enemy struct {
	world  *physics.World
	scorer Scorer

	body  *cp.Body
	shape *cp.Shape

	originX float64
	rangePx float64
	speed   float64
	dir     float64
	score   int

	compiled *tengo.Compiled
	dead     bool
}

func newEnemy(world *physics.World, scorer Scorer, pos cp.Vector, rangePx, speed float64, scriptName string, score int) (*Enemy, error) {
	e := &Enemy{
		world:   world,
		scorer:  scorer,
		originX: pos.X,
		rangePx: rangePx,
		speed:   speed,
		dir:     1,
		score:   score,
	}
	e.body, e.shape = world.AddKinematic(physics.KindEnemy, e, pos, enemyWidth, enemyHeight)

	compiled, err := compilePatrolScript(scriptName)
	if err != nil {
		return nil, fmt.Errorf("enemy script %q: %w", scriptName, err)
	}
	e.compiled = compiled
	return e, nil
}

func compilePatrolScript(name string) (*tengo.Compiled, error) {
	src, err := levels.LoadScript(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("__x", 0.0)
	_ = script.Add("__origin", 0.0)
	_ = script.Add("__range", 0.0)
	_ = script.Add("__dir", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	return script.Compile()
}

// Kill removes the enemy from the space and awards its score. Safe to
// call more than once.
func (e *Enemy) Kill() {
	if e == nil || e.dead {
		return
	}
	e.dead = true
	e.world.RemoveShape(e.shape)
	e.world.RemoveBody(e.body)
	if e.scorer != nil {
		e.scorer.AddScore(e.score)
	}
}

func (e *Enemy) Dead() bool { return e != nil && e.dead }

func (e *Enemy) Update() {
	if e == nil || e.dead || e.body == nil {
		return
	}

	pos := e.body.Position()
	if e.compiled != nil {
		_ = e.compiled.Set("__x", pos.X)
		_ = e.compiled.Set("__origin", e.originX)
		_ = e.compiled.Set("__range", e.rangePx)
		_ = e.compiled.Set("__dir", e.dir)
		if err := e.compiled.Run(); err != nil {
			log.Warn("enemy patrol script failed, falling back to leash flip", "err", err)
			e.compiled = nil
		} else {
			e.dir = e.compiled.Get("dir").Float()
		}
	}
	if e.compiled == nil {
		// leash flip without the script
		if pos.X >= e.originX+e.rangePx {
			e.dir = -1
		} else if pos.X <= e.originX-e.rangePx {
			e.dir = 1
		}
	}
	if e.dir == 0 {
		e.dir = 1
	}

	e.body.SetVelocity(e.dir*e.speed, 0)
}

func (e *Enemy) Draw(screen *ebiten.Image) {
	if e == nil || e.dead || e.body == nil {
		return
	}
	pos := e.body.Position()
	vector.DrawFilledRect(screen,
		float32(pos.X-enemyWidth/2), float32(pos.Y-enemyHeight/2),
		float32(enemyWidth), float32(enemyHeight),
		colornames.Darkolivegreen, false)
}
