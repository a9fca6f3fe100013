package trivia

import "math/rand"

// Rand supplies uniform randomness for quiz selection. Injecting it keeps the
// selector deterministic under test; production wires SystemRand.
type Rand interface {
	Intn(n int) int
}

// SystemRand adapts the process-wide math/rand source to Rand. The top-level
// source is safe for concurrent use across request goroutines.
type SystemRand struct{}

func (SystemRand) Intn(n int) int { return rand.Intn(n) }

// Selector draws unseen quiz questions at random. It holds no per-session
// state; the caller accumulates the asked-id set across a quiz round.
type Selector struct {
	rnd Rand
}

func NewSelector(rnd Rand) *Selector {
	return &Selector{rnd: rnd}
}

// Next removes every question whose id appears in asked from the candidate
// pool and draws one of the remainder uniformly at random. ok is false once
// the pool is exhausted, which is the normal end-of-quiz outcome rather than
// an error.
func (s *Selector) Next(pool []Question, asked []int) (q Question, ok bool) {
	seen := make(map[int]struct{}, len(asked))
	for _, id := range asked {
		seen[id] = struct{}{}
	}

	unseen := make([]Question, 0, len(pool))
	for _, candidate := range pool {
		if _, dup := seen[candidate.ID]; !dup {
			unseen = append(unseen, candidate)
		}
	}

	if len(unseen) == 0 {
		return Question{}, false
	}
	return unseen[s.rnd.Intn(len(unseen))], true
}
