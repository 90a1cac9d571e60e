package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pmorrigan/innersplit/actor"
	"github.com/pmorrigan/innersplit/config"
	"github.com/pmorrigan/innersplit/levels"
	"github.com/pmorrigan/innersplit/scene"
	"github.com/pmorrigan/innersplit/session"
	"github.com/pmorrigan/innersplit/telemetry"
)

const (
	baseWidth  = 1280
	baseHeight = 704
)

// Game is the composition root. It owns the run-level state and rebuilds
// the scene whenever the session manager asks for a reload or the next
// level.
type Game struct {
	cfg     config.Config
	cfgPath string
	watcher *config.Watcher

	input *actor.Input
	tele  *telemetry.Engine
	sess  *session.Manager

	scene      *scene.Scene
	levelIndex int

	pendingReload bool
	pendingNext   bool

	finished bool
	report   string

	debug bool
}

func NewGame(cfgPath string, debug bool) *Game {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Warn("tuning file unusable, running on defaults", "path", cfgPath, "err", err)
		} else {
			cfg = loaded
		}
	}

	g := &Game{
		cfg:     cfg,
		cfgPath: cfgPath,
		input:   actor.NewInput(),
		debug:   debug,
	}
	g.tele = telemetry.NewEngine(telemetry.Config{
		MinActionsToInfer: cfg.Telemetry.MinActionsToInfer,
		DominantRatio:     cfg.Telemetry.DominantRatio,
		DefaultWeight:     cfg.Telemetry.DefaultWeight,
	})
	g.sess = session.NewManager(cfg.Session, g.tele, g)

	if cfgPath != "" {
		watcher, err := config.NewWatcher(cfgPath)
		if err != nil {
			log.Warn("tuning hot reload disabled", "err", err)
		} else {
			g.watcher = watcher
		}
	}

	g.pendingReload = true
	return g
}

// ReloadLevel satisfies session.Loader. The rebuild is deferred to the
// start of the next Update so the session finishes its current tick on
// the old scene.
func (g *Game) ReloadLevel() { g.pendingReload = true }

// LoadNextLevel satisfies session.Loader.
func (g *Game) LoadNextLevel() { g.pendingNext = true }

func (g *Game) loadLevel(index int, restart bool) error {
	lvl, err := levels.LoadByIndex(index)
	if err != nil {
		return fmt.Errorf("load level %d: %w", index, err)
	}
	sc, err := scene.Build(lvl, index, g.cfg, g.input, g.sess, g.tele)
	if err != nil {
		return fmt.Errorf("build level %d: %w", index, err)
	}
	g.scene = sc
	g.levelIndex = index
	g.sess.OnSceneLoaded(sc.Bindings(), restart)
	log.Info("level loaded", "index", index, "name", lvl.Name, "restart", restart)
	return nil
}

func (g *Game) pollTuning() {
	if g.watcher == nil {
		return
	}
	reloaded := false
	for {
		select {
		case <-g.watcher.Events:
			cfg, err := config.Load(g.cfgPath)
			if err != nil {
				log.Warn("tuning reload failed, keeping previous values", "err", err)
				continue
			}
			g.cfg = cfg
			reloaded = true
		case err := <-g.watcher.Errors:
			log.Warn("tuning watcher error", "err", err)
		default:
			if reloaded {
				g.applyTuning()
			}
			return
		}
	}
}

// applyTuning pushes a freshly reloaded config into every live consumer.
// Only numbers change; the scene is not rebuilt.
func (g *Game) applyTuning() {
	g.sess.SetConfig(g.cfg.Session)
	g.tele.SetConfig(telemetry.Config{
		MinActionsToInfer: g.cfg.Telemetry.MinActionsToInfer,
		DominantRatio:     g.cfg.Telemetry.DominantRatio,
		DefaultWeight:     g.cfg.Telemetry.DefaultWeight,
	})
	if g.scene != nil {
		g.scene.ApplyConfig(g.cfg)
	}
	log.Info("tuning reloaded", "path", g.cfgPath)
}

func (g *Game) Update() error {
	if g.finished {
		return nil
	}

	g.pollTuning()

	if g.pendingNext {
		g.pendingNext = false
		g.pendingReload = false
		next := g.levelIndex + 1
		if next >= levels.Count() {
			g.finished = true
			g.report = g.tele.RunReport()
			log.Info("run complete")
			return nil
		}
		if err := g.loadLevel(next, false); err != nil {
			return err
		}
	} else if g.pendingReload {
		g.pendingReload = false
		restart := g.scene != nil
		if err := g.loadLevel(g.levelIndex, restart); err != nil {
			return err
		}
	}

	g.input.Update()
	if g.input.SwitchPressed {
		g.sess.ToggleActiveCharacter()
	}

	g.scene.Tick()
	g.sess.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.finished {
		g.drawReport(screen)
		return
	}
	if g.scene == nil {
		return
	}
	g.scene.Draw(screen)
	g.drawHUD(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
