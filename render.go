package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/arena/arena"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// pixelsPerUnit maps arena units to screen pixels.
const pixelsPerUnit = 22

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

var archetypeColors = map[component.Archetype]color.Color{
	component.Rusher: colornames.Orange,
	component.Brute:  colornames.Firebrick,
	component.Caster: colornames.Mediumpurple,
}

// toScreen projects an arena position onto the screen, looking straight
// down with +Z up.
func toScreen(p common.Vec3) (float32, float32) {
	x := baseWidth/2 + p.X*pixelsPerUnit
	y := baseHeight/2 - p.Z*pixelsPerUnit
	return float32(x), float32(y)
}

func drawArena(screen *ebiten.Image, sim *arena.Simulation) {
	screen.Fill(colornames.Darkslategray)

	cx, cy := toScreen(common.Vec3{})
	radius := float32(sim.Tuning().Arena.Radius * pixelsPerUnit)
	vector.FillCircle(screen, cx, cy, radius, colornames.Dimgray, true)
	vector.StrokeCircle(screen, cx, cy, radius, 3, colornames.Lightgrey, true)

	w := sim.World()
	ecs.ForEach3(w, component.ObstacleTagComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, _ *component.ObstacleTag, t *component.Transform, c *component.Collider) {
		x, y := toScreen(t.Position)
		vector.FillCircle(screen, x, y, float32(c.Radius*pixelsPerUnit), colornames.Slategray, true)
	})

	ecs.ForEach4(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), component.HealthComponent.Kind(), func(_ ecs.Entity, e *component.Enemy, t *component.Transform, c *component.Collider, h *component.ResourcePool) {
		clr := archetypeColors[e.Archetype]
		if e.Dead {
			clr = colornames.Gray
		}
		drawBody(screen, t, c.Radius, clr)
		if !e.Dead && h.Fraction() < 1 {
			drawHealthArc(screen, t, c.Radius, h.Fraction())
		}
	})

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, p *component.Player, t *component.Transform, c *component.Collider) {
		clr := color.Color(colornames.Deepskyblue)
		switch {
		case p.Dead:
			clr = colornames.Gray
		case p.Invulnerable:
			clr = colornames.Lightcyan
		}
		drawBody(screen, t, c.Radius, clr)
		if p.Attacking {
			reach := t.Position.Add(t.Forward().Scale(p.AttackRange * 0.5))
			x, y := toScreen(reach)
			vector.StrokeCircle(screen, x, y, float32(p.AttackRange*pixelsPerUnit), 1, colornames.Gold, true)
		}
	})

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Projectile, t *component.Transform) {
		x, y := toScreen(t.Position)
		vector.FillCircle(screen, x, y, 4, colornames.Violet, true)
	})
}

// drawBody draws a collider disc with a line toward its facing.
func drawBody(screen *ebiten.Image, t *component.Transform, radius float64, clr color.Color) {
	x, y := toScreen(t.Position)
	vector.FillCircle(screen, x, y, float32(radius*pixelsPerUnit), clr, true)
	fx, fy := toScreen(t.Position.Add(t.Forward().Scale(radius * 1.4)))
	vector.StrokeLine(screen, x, y, fx, fy, 2, colornames.White, true)
}

// drawHealthArc rings a wounded enemy with an arc sized by its remaining
// health, starting at twelve o'clock.
func drawHealthArc(screen *ebiten.Image, t *component.Transform, radius, fraction float64) {
	const steps = 16
	r := (radius + 0.25) * pixelsPerUnit
	x, y := toScreen(t.Position)
	end := 2 * math.Pi * common.Clamp(fraction, 0, 1)
	for i := 0; i < steps; i++ {
		a0 := common.Lerp(0, end, float64(i)/steps)
		a1 := common.Lerp(0, end, float64(i+1)/steps)
		vector.StrokeLine(screen,
			x+float32(r*math.Sin(a0)), y-float32(r*math.Cos(a0)),
			x+float32(r*math.Sin(a1)), y-float32(r*math.Cos(a1)),
			2, colornames.Limegreen, true)
	}
}

func drawHUD(screen *ebiten.Image, sim *arena.Simulation) {
	health := sim.PlayerHealth()
	stamina := sim.PlayerStamina()
	drawBar(screen, 20, 20, health.Fraction(), colornames.Crimson)
	drawBar(screen, 20, 40, stamina.Fraction(), colornames.Gold)

	drawText(screen, fmt.Sprintf("%.0f / %.0f", health.Current, health.Max), 230, 22, colornames.White)
	drawText(screen, fmt.Sprintf("%.0f / %.0f", stamina.Current, stamina.Max), 230, 42, colornames.White)

	status := fmt.Sprintf("Wave %d   Enemies %d   %s", sim.Wave(), sim.EnemiesAlive(), sim.FormattedTime())
	if next := sim.Waves().TimeUntilNextWave(); sim.Active() && next > 0 {
		status += fmt.Sprintf("   next wave in %.0fs", next)
	}
	drawText(screen, status, baseWidth-420, 22, colornames.White)
}

func drawBar(screen *ebiten.Image, x, y float32, fraction float64, clr color.Color) {
	const width, height = 200, 12
	vector.FillRect(screen, x, y, width, height, color.RGBA{A: 160}, false)
	vector.FillRect(screen, x, y, float32(width*common.Clamp(fraction, 0, 1)), height, clr, false)
	vector.StrokeRect(screen, x, y, width, height, 1, colornames.White, false)
}

func drawBanner(screen *ebiten.Image, text string) {
	w, _ := ebtext.Measure(text, hudFace, 0)
	drawText(screen, text, (baseWidth-w)/2, 80, colornames.White)
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, hudFace, op)
}

func drawDebug(screen *ebiten.Image, sim *arena.Simulation) {
	text := fmt.Sprintf("FPS: %.2f  TPS: %.2f\nstate: %s\nbodies: %d  pending: %d  t=%.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), sim.PlayerState(), sim.Spatial().Len(), sim.Pending(), sim.Now())
	ebitenutil.DebugPrintAt(screen, text, 10, baseHeight-60)

	DrawPhysicsDebug(sim.Spatial().Space(), screen)
}
