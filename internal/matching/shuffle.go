package matching

import "math/rand/v2"

// Shuffle permutes s in place with the Fisher–Yates algorithm. Every
// permutation is equally likely given a uniform source.
func Shuffle[T any](r *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// newRand returns a generator seeded from the runtime's entropy source.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
