package system

import (
	"fmt"
	"log"

	"github.com/milk9111/arena/ecs"
)

// MatchController tracks whether the match is running, the survival clock
// and the global pause.
type MatchController struct {
	events *ecs.EventQueue
	logger *log.Logger
	// wave reports the wave reached, for the game-over record.
	wave func() int

	active   bool
	over     bool
	paused   bool
	survival float64
}

func NewMatchController(events *ecs.EventQueue, logger *log.Logger) *MatchController {
	if logger == nil {
		logger = log.Default()
	}
	return &MatchController{events: events, logger: logger}
}

// SetWaveSource lets the game-over record include the wave reached.
func (m *MatchController) SetWaveSource(fn func() int) {
	m.wave = fn
}

// Subscribe ends the match when the player dies.
func (m *MatchController) Subscribe(q *ecs.EventQueue) {
	q.Subscribe(EventPlayerDied, func(ecs.Event) {
		m.OnPlayerDeath()
	})
}

// Start resets the survival clock and marks the match active.
func (m *MatchController) Start() {
	m.active = true
	m.over = false
	m.paused = false
	m.survival = 0
	m.logger.Printf("match: started")
}

func (m *MatchController) Update(_ *ecs.World, dt float64) {
	if !m.active || m.paused || dt <= 0 {
		return
	}
	m.survival += dt
}

// OnPlayerDeath ends the match and freezes the survival time. Only the
// first call has any effect.
func (m *MatchController) OnPlayerDeath() {
	if !m.active {
		return
	}
	m.active = false
	m.over = true
	m.paused = false

	wave := 0
	if m.wave != nil {
		wave = m.wave()
	}
	m.logger.Printf("match: over, survived %s (wave %d)", m.FormattedTime(), wave)
	if m.events != nil {
		m.events.Push(ecs.Event{Type: EventMatchOver, Data: MatchOverEvent{SurvivalTime: m.survival, Wave: wave}})
	}
}

// TogglePause flips the pause gate while the match is active and reports
// the new state.
func (m *MatchController) TogglePause() bool {
	if !m.active {
		return m.paused
	}
	m.paused = !m.paused
	return m.paused
}

func (m *MatchController) Paused() bool {
	return m.paused
}

func (m *MatchController) Active() bool {
	return m.active
}

func (m *MatchController) Over() bool {
	return m.over
}

func (m *MatchController) SurvivalTime() float64 {
	return m.survival
}

func (m *MatchController) FormattedTime() string {
	return FormatSurvivalTime(m.survival)
}

// FormatSurvivalTime renders seconds as MM:SS, truncating fractions.
func FormatSurvivalTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
