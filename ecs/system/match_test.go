package system

import (
	"testing"

	"github.com/milk9111/arena/ecs"
)

func TestFormatSurvivalTime(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{-3, "00:00"},
		{59.99, "00:59"},
		{61, "01:01"},
		{3600, "60:00"},
	}
	for _, c := range cases {
		if got := FormatSurvivalTime(c.seconds); got != c.want {
			t.Fatalf("%v: got %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestMatchPauseOnlyWhileActive(t *testing.T) {
	m := NewMatchController(nil, quietLogger())
	if m.TogglePause() || m.Paused() {
		t.Fatal("paused before the match started")
	}

	m.Start()
	if !m.TogglePause() {
		t.Fatal("expected pause while active")
	}
	m.Update(nil, 1)
	if m.SurvivalTime() != 0 {
		t.Fatalf("clock ran while paused: %v", m.SurvivalTime())
	}
	if m.TogglePause() {
		t.Fatal("expected resume")
	}
	m.Update(nil, 1)
	if m.SurvivalTime() != 1 {
		t.Fatalf("got %v, want 1", m.SurvivalTime())
	}

	m.OnPlayerDeath()
	if m.TogglePause() || m.Paused() {
		t.Fatal("paused after the match ended")
	}
}

func TestMatchEndsOnce(t *testing.T) {
	events := &ecs.EventQueue{}
	var over []MatchOverEvent
	events.Subscribe(EventMatchOver, func(evt ecs.Event) {
		over = append(over, evt.Data.(MatchOverEvent))
	})

	m := NewMatchController(events, quietLogger())
	m.SetWaveSource(func() int { return 4 })
	m.Subscribe(events)
	m.Start()
	for i := 0; i < 20; i++ {
		m.Update(nil, 0.5)
	}

	events.Push(ecs.Event{Type: EventPlayerDied})
	events.Push(ecs.Event{Type: EventPlayerDied})
	if len(over) != 1 {
		t.Fatalf("got %d match-over events, want 1", len(over))
	}
	if over[0] != (MatchOverEvent{SurvivalTime: 10, Wave: 4}) {
		t.Fatalf("got %+v", over[0])
	}
	if m.Active() || !m.Over() {
		t.Fatalf("active=%v over=%v, want ended", m.Active(), m.Over())
	}

	m.Update(nil, 5)
	if m.FormattedTime() != "00:10" {
		t.Fatalf("clock moved after the match: %s", m.FormattedTime())
	}

	m.Start()
	if !m.Active() || m.Over() || m.SurvivalTime() != 0 {
		t.Fatal("restart did not reset the match")
	}
}
