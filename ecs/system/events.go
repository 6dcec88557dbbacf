package system

import "github.com/milk9111/arena/ecs"

const (
	EventEnemyDied   ecs.EventType = "enemy_died"
	EventPlayerDied  ecs.EventType = "player_died"
	EventWaveStarted ecs.EventType = "wave_started"
	EventWaveCleared ecs.EventType = "wave_cleared"
	EventMatchOver   ecs.EventType = "match_over"
)

// WaveEvent is the payload of wave events.
type WaveEvent struct {
	Wave    int
	Enemies int
}

// MatchOverEvent is the payload of EventMatchOver.
type MatchOverEvent struct {
	SurvivalTime float64
	Wave         int
}
