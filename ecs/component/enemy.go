package component

import (
	"fmt"
	"strings"

	"github.com/milk9111/arena/common"
)

type Archetype int

const (
	Rusher Archetype = iota
	Brute
	Caster
)

var Archetypes = []Archetype{Rusher, Brute, Caster}

func (a Archetype) String() string {
	switch a {
	case Rusher:
		return "rusher"
	case Brute:
		return "brute"
	case Caster:
		return "caster"
	default:
		return fmt.Sprintf("archetype(%d)", int(a))
	}
}

// Ranged archetypes hold a stand-off band and attack with projectiles.
func (a Archetype) Ranged() bool {
	return a == Caster
}

func ParseArchetype(s string) (Archetype, error) {
	for _, a := range Archetypes {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("component: unknown archetype %q", s)
}

// EnemyStats is the stat block derived from an archetype at spawn.
type EnemyStats struct {
	Speed    float64
	Health   float64
	Damage   float64
	Range    float64
	Cooldown float64
	Scale    float64
}

func DefaultEnemyStats(a Archetype) EnemyStats {
	switch a {
	case Brute:
		return EnemyStats{Speed: 2, Health: 100, Damage: 25, Range: 2.5, Cooldown: 2.0, Scale: 1.5}
	case Caster:
		return EnemyStats{Speed: 3, Health: 20, Damage: 12, Range: 8, Cooldown: 2.5, Scale: 1}
	default:
		return EnemyStats{Speed: 6, Health: 30, Damage: 8, Range: 1.5, Cooldown: 1.0, Scale: 1}
	}
}

type Enemy struct {
	Archetype   Archetype
	Stats       EnemyStats
	Dead        bool
	Destination common.Vec3
}

var EnemyComponent = NewComponent[Enemy]()
