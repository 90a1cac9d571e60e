package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pmorrigan/innersplit/config"
)

func main() {
	cfgPath := flag.String("tuning", "", "path to a tuning yaml file (hot reloaded while running)")
	writeTuning := flag.String("write-tuning", "", "write the default tuning file to this path and exit")
	debug := flag.Bool("debug", false, "enable the debug overlay")
	flag.Parse()

	if *writeTuning != "" {
		if err := config.WriteDefault(*writeTuning); err != nil {
			log.Error("write tuning file", "err", err)
			os.Exit(1)
		}
		return
	}

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("innersplit")

	game := NewGame(*cfgPath, *debug)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game exited", "err", err)
		os.Exit(1)
	}
}
