package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arena/arena"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// bannerDuration is how long wave announcements stay on screen, in frames.
const bannerDuration = 120

type Game struct {
	frames int

	sim     *arena.Simulation
	input   *Input
	debug   bool
	watcher *prefabs.Watcher

	pauseUI    *ebitenui.UI
	gameOverUI *ebitenui.UI
	finalTime  *widget.Text

	banner       string
	bannerFrames int
}

func NewGame(tuningPath string, seed int64, debug bool) (*Game, error) {
	tuning, err := prefabs.OpenTuning(tuningPath)
	if err != nil {
		return nil, err
	}
	sim, err := arena.New(arena.Options{Tuning: &tuning, Seed: seed})
	if err != nil {
		return nil, err
	}

	g := &Game{
		sim:   sim,
		input: NewInput(),
		debug: debug,
	}
	g.pauseUI = NewPauseUI(g)
	g.gameOverUI, g.finalTime = NewGameOverUI(g)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	g.input.Update()
	if g.input.PausePressed && g.sim.Active() {
		g.sim.TogglePause()
	}
	if g.input.RestartPressed && g.sim.Over() {
		g.restart()
	}

	switch {
	case g.sim.Paused():
		g.pauseUI.Update()
		return nil
	case g.sim.Over():
		g.finalTime.Label = fmt.Sprintf("Survived %s  (wave %d)", g.sim.FormattedTime(), g.sim.Wave())
		g.gameOverUI.Update()
	}

	g.sim.SetIntent(g.input.Intent())
	g.sim.Tick(1 / float64(ebiten.TPS()))
	g.handleEvents()

	if g.bannerFrames > 0 {
		g.bannerFrames--
	}
	return nil
}

func (g *Game) handleEvents() {
	for _, evt := range g.sim.Events() {
		switch evt.Type {
		case system.EventWaveStarted:
			if data, ok := evt.Data.(system.WaveEvent); ok {
				g.showBanner(fmt.Sprintf("Wave %d", data.Wave))
			}
		case system.EventWaveCleared:
			g.showBanner("Wave cleared")
		}
	}
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerFrames = bannerDuration
}

func (g *Game) resume() {
	if g.sim.Paused() {
		g.sim.TogglePause()
	}
}

func (g *Game) restart() {
	if err := g.sim.Restart(); err != nil {
		log.Printf("restart: %v", err)
	}
	g.bannerFrames = 0
}

// pollReload restarts the match with fresh tuning when a watched file
// changes. Rejected tuning is logged and the running match keeps going.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case reload, ok := <-g.watcher.Reloads:
			if !ok {
				g.watcher = nil
				return
			}
			if reload.Err != nil {
				log.Printf("prefabs: reload %s: %v", reload.Trigger, reload.Err)
				g.showBanner("Tuning rejected")
				continue
			}
			if err := g.sim.Reload(reload.Tuning); err != nil {
				log.Printf("prefabs: reload %s: %v", reload.Trigger, err)
				continue
			}
			log.Printf("prefabs: reload %s", reload.Trigger)
			g.showBanner("Tuning reloaded")
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawArena(screen, g.sim)
	drawHUD(screen, g.sim)
	if g.bannerFrames > 0 {
		drawBanner(screen, g.banner)
	}
	if g.debug {
		drawDebug(screen, g.sim)
	}

	switch {
	case g.sim.Paused():
		g.pauseUI.Draw(screen)
	case g.sim.Over():
		g.gameOverUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
