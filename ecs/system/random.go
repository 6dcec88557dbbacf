package system

import "math/rand"

// Random supplies the randomness the wave director needs.
type Random interface {
	// Float64 is uniform in [0, 1).
	Float64() float64
	// Angle is uniform in [0, 360) degrees.
	Angle() float64
}

type seededRandom struct {
	r *rand.Rand
}

// NewRandom returns a deterministic source for seed.
func NewRandom(seed int64) Random {
	return &seededRandom{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandom) Float64() float64 {
	return s.r.Float64()
}

func (s *seededRandom) Angle() float64 {
	return s.r.Float64() * 360
}
