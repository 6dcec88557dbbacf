package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arena/prefabs"
)

func main() {
	tuningPath := flag.String("tuning", "", "tuning yaml to use instead of prefabs/arena.yaml")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for wave spawns")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "restart with fresh tuning when tuning or wave scripts change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("arena")

	game, err := NewGame(*tuningPath, *seed, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		watcher, err := prefabs.WatchTuning(*tuningPath)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			defer watcher.Close()
			game.watcher = watcher
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
