// Package draw implements the core draw engine: the random selector,
// the speed curve, the tick scheduler, and the controller state machine
// that orchestrates them over the fixed animation window.
package draw

import (
	"math/rand"

	"github.com/hammamikhairi/nebulapick/internal/domain"
)

// Select draws min(count, len(pool)) distinct names from pool with
// uniform probability, using a partial Fisher-Yates shuffle. The input
// slice is never modified. Result order carries no meaning.
func Select(rng *rand.Rand, pool []string, count int) domain.WinnerSet {
	if count > len(pool) {
		count = len(pool)
	}
	if count <= 0 {
		return domain.WinnerSet{}
	}

	candidates := make([]string, len(pool))
	copy(candidates, pool)

	// Only the first count positions need to be shuffled; each swap
	// picks uniformly from the not-yet-chosen tail.
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	return domain.WinnerSet(candidates[:count])
}
