package usage

import "math/rand/v2"

// Sampler selects k distinct indices out of n recorded call sites. The
// production sampler is random, which makes final output order unstable
// across runs; tests inject a deterministic implementation instead.
type Sampler interface {
	Sample(n, k int) []int
}

// RandomSampler draws uniformly at random without replacement.
type RandomSampler struct{}

func (RandomSampler) Sample(n, k int) []int {
	return rand.Perm(n)[:k]
}

// SeededSampler draws from a fixed-seed source for reproducible runs.
type SeededSampler struct {
	rng *rand.Rand
}

// NewSeededSampler returns a sampler seeded with the given value.
func NewSeededSampler(seed uint64) *SeededSampler {
	return &SeededSampler{rng: rand.New(rand.NewPCG(seed, 0))}
}

func (s *SeededSampler) Sample(n, k int) []int {
	return s.rng.Perm(n)[:k]
}
