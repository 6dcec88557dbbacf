package component

import "testing"

func TestResourcePoolStaysInBounds(t *testing.T) {
	type op struct {
		kind   string
		amount float64
	}
	cases := []struct {
		name string
		ops  []op
		want float64
	}{
		{"spend_then_regen", []op{{"spend", 40}, {"regen", 100}}, 100},
		{"overspend_is_noop", []op{{"spend", 60}, {"spend", 60}}, 40},
		{"damage_floors", []op{{"damage", 30}, {"damage", 500}}, 0},
		{"restore_clamps", []op{{"damage", 10}, {"restore", 50}}, 100},
		{"negative_spend_is_noop", []op{{"spend", -5}}, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewResourcePool(100)
			for _, o := range c.ops {
				switch o.kind {
				case "spend":
					p.Spend(o.amount)
				case "restore":
					p.Restore(o.amount)
				case "damage":
					p.Damage(o.amount)
				case "regen":
					p.Regen(o.amount, 1)
				}
				if p.Current < 0 || p.Current > p.Max {
					t.Fatalf("after %s(%v): current %v outside [0, %v]", o.kind, o.amount, p.Current, p.Max)
				}
			}
			if p.Current != c.want {
				t.Fatalf("got %v, want %v", p.Current, c.want)
			}
		})
	}
}

func TestResourcePoolSpendFailureLeavesPool(t *testing.T) {
	p := NewResourcePool(20)
	if p.Spend(25) {
		t.Fatal("spend above current should fail")
	}
	if p.Current != 20 {
		t.Fatalf("got %v, want 20", p.Current)
	}
	if !p.Spend(20) || p.Current != 0 {
		t.Fatalf("exact spend should succeed, current %v", p.Current)
	}
}

func TestResourcePoolDamageReportsDeathOnce(t *testing.T) {
	p := NewResourcePool(30)
	if p.Damage(10) {
		t.Fatal("pool not empty yet")
	}
	if !p.Damage(25) {
		t.Fatal("expected death on crossing zero")
	}
	if p.Damage(5) {
		t.Fatal("death must be reported exactly once")
	}
}

func TestResourcePoolRegenRate(t *testing.T) {
	p := ResourcePool{Current: 50, Max: 100}
	p.Regen(15, 0.5)
	if p.Current != 57.5 {
		t.Fatalf("got %v, want 57.5", p.Current)
	}
}
