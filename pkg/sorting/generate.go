package sorting

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Mode selects the shape of a generated array.
type Mode string

const (
	// ModeSorted yields 5, 8, 11, ... (best case for bubble and insertion sort).
	ModeSorted Mode = "sorted"
	// ModeReverseSorted yields the sorted sequence mirrored (worst case).
	ModeReverseSorted Mode = "reverse_sorted"
	// ModeRandom yields uniform integers in [MinRandomValue, MaxRandomValue].
	ModeRandom Mode = "random"
)

const (
	// MinRandomValue is the smallest value ModeRandom produces.
	MinRandomValue = 5
	// MaxRandomValue is the largest value ModeRandom produces.
	MaxRandomValue = 30

	sequenceBase = 5
	sequenceStep = 3
)

// ParseMode converts a wire mode string. Empty and unrecognized modes map to
// ModeRandom; ok reports whether s was recognized.
func ParseMode(s string) (mode Mode, ok bool) {
	switch Mode(s) {
	case ModeSorted, ModeReverseSorted, ModeRandom:
		return Mode(s), true
	default:
		return ModeRandom, false
	}
}

// Generator produces input arrays. It is safe for concurrent use.
// The zero value is not usable; use NewGenerator.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing random values from rng.
// A nil rng uses a randomly seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// Generate returns size integers shaped by mode.
func (g *Generator) Generate(size int, mode Mode) ([]int, error) {
	if size < 0 {
		return nil, fmt.Errorf("array size cannot be negative: %d", size)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]int, size)
	for k := range out {
		switch mode {
		case ModeSorted:
			out[k] = sequenceBase + sequenceStep*k
		case ModeReverseSorted:
			out[k] = sequenceBase + sequenceStep*(size-1-k)
		default:
			out[k] = MinRandomValue + g.rng.IntN(MaxRandomValue-MinRandomValue+1)
		}
	}
	return out, nil
}
