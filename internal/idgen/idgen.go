package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/crewmatch/crewmatch/internal/clock"
)

// New returns a new entity identifier as string. It is implemented as a thin
// wrapper so tests can stub it.

var NewFunc = next

func New() string { return NewFunc() }

var sequence uint64

// next produces a millisecond wall-clock timestamp suffixed with a
// process-wide sequence counter. The suffix disambiguates identifiers minted
// within the same tick (rapid double-submission), so ids stay unique and
// lexicographic order matches issue order within one run.
func next() string {
	millis := clock.Now().UnixMilli()
	seq := atomic.AddUint64(&sequence, 1)
	return fmt.Sprintf("%013d-%06d", millis, seq%1000000)
}
