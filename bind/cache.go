package bind

import (
	"sync"

	"github.com/plyio/ply/header"
	"github.com/plyio/ply/internal/hash"
	"github.com/plyio/ply/schema"
)

// cacheEntry pairs a memoized Plan with the exact signatures it was built
// from, so a hash collision can never hand back the wrong Plan (spec.md §8
// "Plan stability": the same (Element, RecordShape) pair always yields an
// equal Plan, and no other pair may share it).
type cacheEntry struct {
	elemSig, shapeSig string
	plan              *Plan
}

// PlanCache memoizes Build across repeated (Element, RecordShape) pairs,
// keyed by an xxHash64 digest of their structural signatures. It exists
// because a single chunked read of a large point cloud or mesh collection
// reuses the same element layout across every file in a batch; without
// memoization each file pays the full binding-validation walk again.
//
// A PlanCache is safe for concurrent use. Its zero value is ready to use.
type PlanCache struct {
	mu      sync.Mutex
	entries map[uint64][]cacheEntry
}

// NewPlanCache returns an empty, ready-to-use PlanCache.
func NewPlanCache() *PlanCache {
	return &PlanCache{entries: make(map[uint64][]cacheEntry)}
}

// Lookup returns a memoized Plan for (elem, shape) if one was previously
// computed and recorded via Store, or reports a miss via ok == false. Callers
// on a miss should call bind.Build and then Store the result.
func (c *PlanCache) Lookup(elem *header.Element, shape schema.RecordShape) (plan *Plan, ok bool) {
	elemSig, shapeSig := signatureOf(elem, shape)
	key := hash.Signature(elemSig, shapeSig)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries[key] {
		if e.elemSig == elemSig && e.shapeSig == shapeSig {
			return e.plan, true
		}
	}

	return nil, false
}

// Store records plan as the result for (elem, shape), for future Lookup
// calls to find.
func (c *PlanCache) Store(elem *header.Element, shape schema.RecordShape, plan *Plan) {
	elemSig, shapeSig := signatureOf(elem, shape)
	key := hash.Signature(elemSig, shapeSig)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries == nil {
		c.entries = make(map[uint64][]cacheEntry)
	}

	c.entries[key] = append(c.entries[key], cacheEntry{elemSig: elemSig, shapeSig: shapeSig, plan: plan})
}

// BuildCached is Build, memoized through c. It is the entry point C6/C8
// (element.Decoder / element.Encoder / writer.Writer) call in practice.
func BuildCached(c *PlanCache, elem *header.Element, shape schema.RecordShape) (*Plan, error) {
	if c == nil {
		return Build(elem, shape)
	}

	if plan, ok := c.Lookup(elem, shape); ok {
		return plan, nil
	}

	plan, err := Build(elem, shape)
	if err != nil {
		return nil, err
	}

	c.Store(elem, shape, plan)

	return plan, nil
}
