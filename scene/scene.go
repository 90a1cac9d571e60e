// Package scene turns embedded level data into a running play space:
// physics world, merged tile colliders, both characters and every
// trigger object, plus the per-tick simulation order.
package scene

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/pmorrigan/innersplit/actor"
	"github.com/pmorrigan/innersplit/common"
	"github.com/pmorrigan/innersplit/config"
	"github.com/pmorrigan/innersplit/levels"
	"github.com/pmorrigan/innersplit/physics"
	"github.com/pmorrigan/innersplit/session"
	"github.com/pmorrigan/innersplit/telemetry"
)

// Scene is one loaded level instance. A fresh Scene is built on every
// load and restart; nothing is reset in place.
type Scene struct {
	world      *physics.World
	lvl        *levels.Level
	levelIndex int
	sess       *session.Manager

	emotion *actor.Emotion
	logic   *actor.Logic

	emotionIndicator *indicator
	logicIndicator   *indicator

	portals  []*Portal
	doors    []*Door
	hidden   []*HiddenPlatform
	unstable []*UnstablePlatform
	enemies  []*Enemy

	tiles *ebiten.Image
}

// Build constructs the physics space and every object a level file
// places. Entity positions and sizes are in tiles.
func Build(lvl *levels.Level, levelIndex int, cfg config.Config, input *actor.Input, sess *session.Manager, tele *telemetry.Engine) (*Scene, error) {
	if lvl == nil {
		return nil, fmt.Errorf("build scene: nil level")
	}

	s := &Scene{
		world:      physics.NewWorld(),
		lvl:        lvl,
		levelIndex: levelIndex,
		sess:       sess,
	}
	s.world.AddBounds(float64(lvl.Width*common.TileSize), float64(lvl.Height*common.TileSize))

	for i, layer := range lvl.Layers {
		if i < len(lvl.LayerMeta) && !lvl.LayerMeta[i].Physics {
			continue
		}
		s.addTileColliders(layer)
	}

	emotionSpawn := tileCenter(lvl.EmotionSpawn)
	logicSpawn := tileCenter(lvl.LogicSpawn)
	s.emotion = actor.NewEmotion(cfg.Emotion, input, s.world, sess, tele, emotionSpawn)
	s.logic = actor.NewLogic(cfg.Logic, input, s.world, sess, tele, logicSpawn)
	s.emotionIndicator = &indicator{target: s.emotion}
	s.logicIndicator = &indicator{target: s.logic}

	for _, ent := range lvl.Entities {
		if err := s.placeEntity(ent, cfg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// addTileColliders merges horizontal runs of solid tiles into single
// shapes and registers each spike tile as an inset hazard sensor.
func (s *Scene) addTileColliders(layer []int) {
	const ts = common.TileSize
	w, h := s.lvl.Width, s.lvl.Height
	for y := 0; y < h; y++ {
		runStart := -1
		for x := 0; x <= w; x++ {
			solid := x < w && layer[y*w+x] == 1
			if solid && runStart < 0 {
				runStart = x
			}
			if !solid && runStart >= 0 {
				s.world.AddStatic(physics.KindSolid, nil,
					float64(runStart*ts), float64(y*ts),
					float64((x-runStart)*ts), float64(ts), false)
				runStart = -1
			}
			if x < w && layer[y*w+x] == 2 {
				// spikes only bite the lower half of their tile
				s.world.AddStatic(physics.KindHazard, nil,
					float64(x*ts)+4, float64(y*ts)+ts/2,
					ts-8, ts/2, true)
			}
		}
	}
}

func (s *Scene) placeEntity(ent levels.Entity, cfg config.Config) error {
	const ts = common.TileSize
	x := float64(ent.X * ts)
	y := float64(ent.Y * ts)

	switch ent.Type {
	case "portal":
		w := ent.PropFloat("width", 2) * ts
		h := ent.PropFloat("height", 2) * ts
		s.portals = append(s.portals, newPortal(s.world, x, y, w, h))
	case "door":
		h := ent.PropFloat("height", 3) * ts
		s.doors = append(s.doors, newDoor(s.world, x, y, ts, h))
	case "hidden_platform":
		w := ent.PropFloat("width", 3) * ts
		s.hidden = append(s.hidden, newHiddenPlatform(s.world, x, y, w, ts/2))
	case "unstable_platform":
		w := ent.PropFloat("width", 3) * ts
		s.unstable = append(s.unstable, newUnstablePlatform(s.world, x, y, w, ts/2))
	case "enemy":
		rangePx := ent.PropFloat("range", 3) * ts
		speed := ent.PropFloat("speed", 1.2)
		script := ent.PropString("script", "patrol.tengo")
		pos := cp.Vector{X: x + ts/2, Y: y + ts/2}
		enemy, err := newEnemy(s.world, s.sess, pos, rangePx, speed, script, cfg.Session.StompScore)
		if err != nil {
			return err
		}
		s.enemies = append(s.enemies, enemy)
	default:
		return fmt.Errorf("level %q: unknown entity type %q", s.lvl.Name, ent.Type)
	}
	return nil
}

func tileCenter(p levels.Point) cp.Vector {
	return cp.Vector{
		X: float64(p.X*common.TileSize) + common.TileSize/2,
		Y: float64(p.Y*common.TileSize) + common.TileSize/2,
	}
}

// Bindings exposes what the session manager rebinds on every load.
func (s *Scene) Bindings() session.Bindings {
	return session.Bindings{
		Emotion:          s.emotion,
		Logic:            s.logic,
		EmotionSpawn:     tileCenter(s.lvl.EmotionSpawn),
		LogicSpawn:       tileCenter(s.lvl.LogicSpawn),
		EmotionIndicator: s.emotionIndicator,
		LogicIndicator:   s.logicIndicator,
		LevelIndex:       s.levelIndex,
	}
}

// World exposes the physics world, mainly for tests.
func (s *Scene) World() *physics.World { return s.world }

// ApplyConfig pushes reloaded tuning into the live controllers.
func (s *Scene) ApplyConfig(cfg config.Config) {
	if s == nil {
		return
	}
	s.emotion.SetConfig(cfg.Emotion)
	s.logic.SetConfig(cfg.Logic)
}

// Tick runs one simulation frame: intents, forces, the physics step,
// then the contact fallout (portal occupancy and deaths).
func (s *Scene) Tick() {
	if s == nil {
		return
	}

	s.emotion.Update()
	s.logic.Update()

	s.emotion.OnPhysics()
	s.logic.OnPhysics()
	for _, e := range s.enemies {
		e.Update()
	}

	s.world.BeginStep()
	s.world.Step(1.0)

	for _, ev := range s.world.DrainPortalEvents() {
		if ev.Entered {
			s.sess.NotifyEnteredPortal(ev.Character)
		} else {
			s.sess.NotifyExitedPortal(ev.Character)
		}
	}
	for _, id := range []common.CharacterID{common.CharacterEmotion, common.CharacterLogic} {
		if st := s.world.State(id); st != nil && (st.HitHazard || st.HitEnemy) {
			s.sess.RegisterDeathAndRespawn(id)
		}
	}

	for _, d := range s.doors {
		d.Update()
	}
	for _, p := range s.hidden {
		p.Update()
	}
	for _, p := range s.unstable {
		p.Update()
	}
}

func (s *Scene) Draw(screen *ebiten.Image) {
	if s == nil {
		return
	}
	if s.tiles == nil {
		s.renderTiles()
	}
	screen.DrawImage(s.tiles, nil)

	for _, d := range s.doors {
		d.Draw(screen)
	}
	for _, p := range s.hidden {
		p.Draw(screen)
	}
	for _, p := range s.unstable {
		p.Draw(screen)
	}
	for _, p := range s.portals {
		p.Draw(screen)
	}
	for _, e := range s.enemies {
		e.Draw(screen)
	}
	s.emotion.Draw(screen)
	s.logic.Draw(screen)
	s.emotionIndicator.Draw(screen)
	s.logicIndicator.Draw(screen)
}

// renderTiles bakes the static tile layers into one image; the bake
// runs once per scene.
func (s *Scene) renderTiles() {
	const ts = common.TileSize
	s.tiles = ebiten.NewImage(s.lvl.Width*ts, s.lvl.Height*ts)
	s.tiles.Fill(color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff})
	for _, layer := range s.lvl.Layers {
		for y := 0; y < s.lvl.Height; y++ {
			for x := 0; x < s.lvl.Width; x++ {
				switch layer[y*s.lvl.Width+x] {
				case 1:
					vector.DrawFilledRect(s.tiles, float32(x*ts), float32(y*ts),
						ts, ts, colornames.Dimgray, false)
				case 2:
					vector.DrawFilledRect(s.tiles, float32(x*ts)+4, float32(y*ts)+ts/2,
						ts-8, ts/2, colornames.Orangered, false)
				}
			}
		}
	}
}

// indicator is the marker over whichever character currently takes
// input.
type indicator struct {
	target interface{ Position() cp.Vector }
	active bool
}

func (i *indicator) SetActive(active bool) {
	if i == nil {
		return
	}
	i.active = active
}

func (i *indicator) Draw(screen *ebiten.Image) {
	if i == nil || !i.active || i.target == nil {
		return
	}
	pos := i.target.Position()
	vector.DrawFilledRect(screen, float32(pos.X)-4, float32(pos.Y)-44, 8, 8,
		colornames.Gold, false)
}
