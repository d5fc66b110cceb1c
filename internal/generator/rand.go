package generator

import (
	"hash/fnv"
	"math"
	"math/rand/v2"

	"retailpulse/backend/internal/domain"
)

// Rand is the random source threaded through every generator function.
// It is not safe for concurrent use; each store generation owns its own.
type Rand struct {
	r *rand.Rand
}

func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// SeedFor mixes the base seed with the store identifier so one configured
// seed still yields a different record per store.
func SeedFor(base int64, storeID domain.StoreID) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(storeID))
	return uint64(base) ^ h.Sum64()
}

// Int returns a uniform integer in [min, max].
func (g *Rand) Int(min int, max int) int {
	if max <= min {
		return min
	}
	return min + g.r.IntN(max-min+1)
}

func (g *Rand) Int64(min int64, max int64) int64 {
	if max <= min {
		return min
	}
	return min + g.r.Int64N(max-min+1)
}

// Float returns a uniform value in [min, max) rounded to two decimals.
func (g *Rand) Float(min float64, max float64) float64 {
	return round2(min + g.r.Float64()*(max-min))
}

// Chance is a raw [0, 1) draw used for threshold decisions.
func (g *Rand) Chance() float64 {
	return g.r.Float64()
}

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}
