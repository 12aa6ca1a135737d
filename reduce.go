package winnow

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
)

// Reduce turns per-term candidate buckets into the ranked bucket set of a
// "top terms" aggregation.
//
// Buckets must be supplied in ascending handle order, one per distinct
// term, as produced by the upstream counting pass. That precondition is
// trusted, not checked: violating it corrupts term resolution. Candidates
// below policy.MinDocCount are dropped before selection. When more
// candidates survive than policy.ShardSize, a bounded selector keeps the
// top candidates by policy.Order and the document counts of everything
// evicted accumulate into Result.OtherCount.
//
// A catalog failure aborts the whole reduction; there is no partial
// result.
func Reduce(buckets []*Bucket, policy SelectionPolicy, catalog TermCatalog) (*Result, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}

	if len(buckets) <= policy.ShardSize {
		return reduceAll(buckets, policy, catalog)
	}
	return reduceBounded(buckets, policy, catalog)
}

// reduceAll handles inputs that fit the working set: every candidate above
// the threshold survives, so resolution can happen inline in input
// (handle) order and nothing overflows.
func reduceAll(buckets []*Bucket, policy SelectionPolicy, catalog TermCatalog) (*Result, error) {
	resolved := make([]*ResolvedBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Count < policy.MinDocCount {
			continue
		}
		rb, err := resolveBucket(b, catalog)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rb)
	}

	sortResolved(resolved, policy.Order)
	return &Result{Buckets: resolved}, nil
}

// reduceBounded streams candidates through a bounded selector and folds
// the counts of evicted candidates into the other count.
func reduceBounded(buckets []*Bucket, policy SelectionPolicy, catalog TermCatalog) (*Result, error) {
	queue := NewSelector(policy.ShardSize, policy.Order.compare)

	var otherCount uint64
	for _, b := range buckets {
		if b.Count < policy.MinDocCount {
			continue
		}
		if evicted := queue.Insert(b); evicted != nil {
			otherCount += evicted.Count
		}
	}

	var retained []*Bucket
	if policy.Order.keyAsc {
		// Pops come off weakest-first, which under ascending term order
		// means largest handle first; filling the slice back to front
		// yields ascending handles without a separate sort.
		retained = make([]*Bucket, queue.Len())
		for i := len(retained) - 1; i >= 0; i-- {
			retained[i] = queue.Pop()
		}
	} else {
		retained = queue.Drain()
		// The catalog cursor only moves forward, so survivors must be
		// visited in handle order before they can be ranked.
		sort.Slice(retained, func(i, j int) bool {
			return retained[i].Handle < retained[j].Handle
		})
	}

	resolved := make([]*ResolvedBucket, 0, len(retained))
	for _, b := range retained {
		rb, err := resolveBucket(b, catalog)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rb)
	}

	if !policy.Order.keyAsc {
		sortResolved(resolved, policy.Order)
	}

	log.Debugf("Reduced %d candidate buckets to %d (other count %d)",
		len(buckets), len(resolved), otherCount)
	return &Result{Buckets: resolved, OtherCount: otherCount}, nil
}

func resolveBucket(b *Bucket, catalog TermCatalog) (*ResolvedBucket, error) {
	term, err := catalog.Resolve(b.Handle)
	if err != nil {
		return nil, fmt.Errorf("resolving handle %d: %s", b.Handle, err)
	}

	// The catalog reuses its cursor buffer between calls
	key := make([]byte, len(term))
	copy(key, term)

	return &ResolvedBucket{Key: key, Count: b.Count, Sub: b.Sub}, nil
}

func sortResolved(resolved []*ResolvedBucket, order Order) {
	sort.Slice(resolved, func(i, j int) bool {
		return order.finalize(resolved[i], resolved[j]) < 0
	})
}
