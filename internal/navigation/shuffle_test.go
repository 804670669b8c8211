package navigation

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestIdentity(t *testing.T) {
	if got := Identity(4); !reflect.DeepEqual(got, Order{0, 1, 2, 3}) {
		t.Errorf("Identity(4) = %v", got)
	}
	if got := Identity(0); len(got) != 0 {
		t.Errorf("Identity(0) = %v, want empty", got)
	}
}

func TestOrder_IsPermutation(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		n     int
		want  bool
	}{
		{"identity", Order{0, 1, 2}, 3, true},
		{"reversed", Order{2, 1, 0}, 3, true},
		{"duplicate", Order{0, 0, 2}, 3, false},
		{"out of range", Order{0, 1, 3}, 3, false},
		{"negative", Order{-1, 1, 2}, 3, false},
		{"wrong length", Order{0, 1}, 3, false},
		{"empty", Order{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.IsPermutation(tt.n); got != tt.want {
				t.Errorf("%v.IsPermutation(%d) = %v, want %v", tt.order, tt.n, got, tt.want)
			}
		})
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{0, 1, 2, 7, 100} {
		for i := 0; i < 20; i++ {
			o := Shuffle(n, rng)
			if !o.IsPermutation(n) {
				t.Fatalf("Shuffle(%d) = %v is not a permutation", n, o)
			}
		}
	}

	if o := Shuffle(5, nil); !o.IsPermutation(5) {
		t.Errorf("Shuffle(5, nil) = %v is not a permutation", o)
	}
}

func TestShuffle_DoesNotMutateIndex(t *testing.T) {
	x := Build(sampleTree(), ModeFull)
	before := paths(x)

	_ = x.Arrange(Shuffle(x.Len(), rand.New(rand.NewPCG(3, 4))))

	if after := paths(x); !reflect.DeepEqual(before, after) {
		t.Errorf("index changed after arranging a shuffled order: %v -> %v", before, after)
	}
}

func TestShuffle_Uniform(t *testing.T) {
	// All 24 permutations of 4 positions should appear equally often.
	const (
		n      = 4
		perms  = 24
		trials = 48000
	)
	rng := rand.New(rand.NewPCG(42, 1024))
	counts := make(map[string]int, perms)
	for i := 0; i < trials; i++ {
		counts[fmt.Sprint(Shuffle(n, rng))]++
	}

	if len(counts) != perms {
		t.Fatalf("saw %d distinct permutations, want %d", len(counts), perms)
	}

	// Chi-square with 23 degrees of freedom; 49.73 is the 0.999 quantile.
	expected := float64(trials) / perms
	var chi2 float64
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	if chi2 > 49.73 {
		t.Errorf("chi-square = %.2f over 23 dof, distribution looks biased: %v", chi2, counts)
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	a := Shuffle(50, rand.New(rand.NewPCG(7, 7)))
	b := Shuffle(50, rand.New(rand.NewPCG(7, 7)))
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different orders")
	}
}
