package trivia

import "math/rand/v2"

// Rand is the randomness PickNext draws from. *rand.Rand from math/rand/v2
// satisfies it, so tests can pass a seeded source.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

// IntN uses the runtime's concurrency-safe generator.
func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand is the process-wide source used when none is injected.
var DefaultRand Rand = globalRand{}

// PickNext draws one question uniformly at random from those matching c whose
// id is not in excluded. It returns false when nothing is eligible, which
// signals that the quiz is complete rather than an error.
func PickNext(all []Question, c CategoryConstraint, excluded []int64, rng Rand) (Question, bool) {
	seen := make(map[int64]struct{}, len(excluded))
	for _, id := range excluded {
		seen[id] = struct{}{}
	}

	eligible := make([]Question, 0, len(all))
	for _, q := range all {
		if !c.Matches(q) {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		eligible = append(eligible, q)
	}
	if len(eligible) == 0 {
		return Question{}, false
	}

	if rng == nil {
		rng = DefaultRand
	}
	return eligible[rng.IntN(len(eligible))], true
}
