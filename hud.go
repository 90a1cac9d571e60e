package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/pmorrigan/innersplit/common"
	"github.com/pmorrigan/innersplit/session"
)

const (
	heartSize    = 14
	heartSpacing = 20
)

func (g *Game) drawHUD(screen *ebiten.Image) {
	for i := 0; i < g.cfg.Session.MaxLives; i++ {
		c := colornames.Crimson
		if i >= g.sess.Lives() {
			c = colornames.Gray
		}
		vector.DrawFilledRect(screen,
			float32(12+i*heartSpacing), 12, heartSize, heartSize, c, false)
	}

	active := "logic"
	if g.sess.ActiveIsEmotion() {
		active = "emotion"
	}
	line := fmt.Sprintf("level %d  score %d  active %s  emotion pts %d  logic pts %d",
		g.levelIndex+1, g.sess.Score(), active,
		g.sess.Points(common.SideEmotion), g.sess.Points(common.SideLogic))
	ebitenutil.DebugPrintAt(screen, line, 12, 32)

	if g.sess.State() == session.StateDeathLocked {
		ebitenutil.DebugPrintAt(screen, "down...", baseWidth/2-24, baseHeight/2)
	}

	if g.debug {
		logic, emotion, _ := g.tele.LevelScores()
		scores := fmt.Sprintf("style %s  logic %d  emotion %d  tps %0.1f",
			g.tele.CurrentLevelStyle(), logic, emotion, ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, scores, 12, 48)
	}
}

func (g *Game) drawReport(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	y := baseHeight/2 - 8*len(strings.Split(g.report, "\n"))
	for _, line := range strings.Split(g.report, "\n") {
		ebitenutil.DebugPrintAt(screen, line, baseWidth/2-160, y)
		y += 16
	}
}
