package draw

import (
	"math/rand"
	"testing"
)

func testPool(n int) []string {
	names := []string{
		"Ada_Lovelace", "Grace_Hopper", "Alan_Turing", "Edsger_Dijkstra",
		"Barbara_Liskov", "Donald_Knuth", "Ken_Thompson", "Dennis_Ritchie",
		"Frances_Allen", "Tony_Hoare", "Niklaus_Wirth", "John_Backus",
	}
	out := make([]string, 0, n)
	for len(out) < n {
		out = append(out, names[len(out)%len(names)])
	}
	return out[:n]
}

func TestSelectSize(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		name     string
		poolSize int
		count    int
		want     int
	}{
		{"count within pool", 10, 3, 3},
		{"count equals pool", 5, 5, 5},
		{"count exceeds pool", 5, 10, 5},
		{"single winner", 12, 1, 1},
		{"zero count", 8, 0, 0},
		{"negative count", 8, -2, 0},
		{"empty pool", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(rng, testPool(tt.poolSize), tt.count)
			if len(got) != tt.want {
				t.Fatalf("expected %d winners, got %d", tt.want, len(got))
			}
		})
	}
}

func TestSelectMembersAndDistinctness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := testPool(12)

	members := make(map[string]bool, len(pool))
	for _, n := range pool {
		members[n] = true
	}

	for trial := 0; trial < 200; trial++ {
		winners := Select(rng, pool, 5)
		seen := make(map[string]bool, len(winners))
		for _, w := range winners {
			if !members[w] {
				t.Fatalf("winner %q is not a pool member", w)
			}
			if seen[w] {
				t.Fatalf("duplicate winner %q in %v", w, winners)
			}
			seen[w] = true
		}
	}
}

func TestSelectDoesNotMutatePool(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := testPool(8)
	before := make([]string, len(pool))
	copy(before, pool)

	Select(rng, pool, 4)

	for i := range pool {
		if pool[i] != before[i] {
			t.Fatalf("pool mutated at index %d: %q -> %q", i, before[i], pool[i])
		}
	}
}

// Every name should win roughly equally often under a fair selector.
func TestSelectRoughUniformity(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	pool := testPool(10)

	const trials = 20000
	counts := make(map[string]int, len(pool))
	for i := 0; i < trials; i++ {
		for _, w := range Select(rng, pool, 1) {
			counts[w]++
		}
	}

	expected := trials / len(pool)
	for name, c := range counts {
		if c < expected*8/10 || c > expected*12/10 {
			t.Errorf("%s won %d times, expected about %d", name, c, expected)
		}
	}
}
