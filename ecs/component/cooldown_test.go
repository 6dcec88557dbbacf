package component

import "testing"

func TestCooldownsIndependentTimers(t *testing.T) {
	c := NewCooldowns()
	if !c.Ready(CooldownDodge) {
		t.Fatal("unknown timer should be ready")
	}

	c.Trigger(CooldownDodge, 1.0)
	c.Trigger(CooldownAttack, 0.5)
	c.Tick(0.5)

	if !c.Ready(CooldownAttack) {
		t.Fatalf("attack should be ready, remaining %v", c.Remaining(CooldownAttack))
	}
	if c.Ready(CooldownDodge) {
		t.Fatal("dodge should still be cooling down")
	}
	if got := c.Remaining(CooldownDodge); got != 0.5 {
		t.Fatalf("got %v, want 0.5", got)
	}
}

func TestCooldownsFloorAtZero(t *testing.T) {
	c := NewCooldowns()
	c.Trigger("x", 0.3)
	for i := 0; i < 10; i++ {
		c.Tick(0.1)
		if c.Remaining("x") < 0 {
			t.Fatalf("tick %d: remaining went negative: %v", i, c.Remaining("x"))
		}
	}
	if !c.Ready("x") {
		t.Fatal("expected ready")
	}
}

func TestCooldownsSumOfSmallTicks(t *testing.T) {
	c := NewCooldowns()
	c.Trigger(CooldownRoll, 0.5)
	for i := 0; i < 10; i++ {
		if c.Ready(CooldownRoll) {
			t.Fatalf("ready too early after %d ticks", i)
		}
		c.Tick(0.05)
	}
	if !c.Ready(CooldownRoll) {
		t.Fatalf("expected ready after 0.5s, remaining %v", c.Remaining(CooldownRoll))
	}
}

func TestCooldownsRetrigger(t *testing.T) {
	var c Cooldowns
	c.Trigger(CooldownAttack, 1)
	c.Tick(0.9)
	c.Trigger(CooldownAttack, 1)
	if got := c.Remaining(CooldownAttack); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}
