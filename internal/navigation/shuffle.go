package navigation

import (
	"math/rand/v2"
)

// Order is a display order: a sequence of index positions.
type Order []int

// Identity returns the unshuffled order of n positions.
func Identity(n int) Order {
	o := make(Order, n)
	for i := range o {
		o[i] = i
	}
	return o
}

// IsPermutation reports whether o contains every position in [0, n) once.
func (o Order) IsPermutation(n int) bool {
	if len(o) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range o {
		if p < 0 || p >= n || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// Shuffle returns a uniformly random permutation of [0, n) using a
// Fisher-Yates shuffle. A nil rng uses the global source.
func Shuffle(n int, rng *rand.Rand) Order {
	o := Identity(n)
	swap := func(i, j int) { o[i], o[j] = o[j], o[i] }
	if rng == nil {
		rand.Shuffle(n, swap)
	} else {
		rng.Shuffle(n, swap)
	}
	return o
}
