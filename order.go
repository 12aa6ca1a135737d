package winnow

import "bytes"

// Order decides which buckets win selection and how the final bucket set
// is arranged.
//
// Selection runs before handles are resolved, so every order must be
// expressible over (handle, count, sub) alone. Handle comparisons stand in
// for term comparisons because the catalog assigns handles in dictionary
// order. Count orders break ties ascending by term so results are
// deterministic.
type Order struct {
	name string
	// keyAsc marks ascending term order, which drains the selector by
	// popping instead of sorting.
	keyAsc   bool
	compare  func(a, b *Bucket) int
	finalize func(a, b *ResolvedBucket) int
}

func (o Order) String() string {
	return o.name
}

func compareHandles(a, b Handle) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareCounts(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CountDesc ranks buckets by document count, largest first.
var CountDesc = Order{
	name: "count desc",
	compare: func(a, b *Bucket) int {
		if c := compareCounts(b.Count, a.Count); c != 0 {
			return c
		}
		return compareHandles(a.Handle, b.Handle)
	},
	finalize: func(a, b *ResolvedBucket) int {
		if c := compareCounts(b.Count, a.Count); c != 0 {
			return c
		}
		return bytes.Compare(a.Key, b.Key)
	},
}

// CountAsc ranks buckets by document count, smallest first.
var CountAsc = Order{
	name: "count asc",
	compare: func(a, b *Bucket) int {
		if c := compareCounts(a.Count, b.Count); c != 0 {
			return c
		}
		return compareHandles(a.Handle, b.Handle)
	},
	finalize: func(a, b *ResolvedBucket) int {
		if c := compareCounts(a.Count, b.Count); c != 0 {
			return c
		}
		return bytes.Compare(a.Key, b.Key)
	},
}

// KeyAsc ranks buckets by term, in dictionary order.
var KeyAsc = Order{
	name:   "key asc",
	keyAsc: true,
	compare: func(a, b *Bucket) int {
		return compareHandles(a.Handle, b.Handle)
	},
	finalize: func(a, b *ResolvedBucket) int {
		return bytes.Compare(a.Key, b.Key)
	},
}

// KeyDesc ranks buckets by term, in reverse dictionary order.
var KeyDesc = Order{
	name: "key desc",
	compare: func(a, b *Bucket) int {
		return compareHandles(b.Handle, a.Handle)
	},
	finalize: func(a, b *ResolvedBucket) int {
		return bytes.Compare(b.Key, a.Key)
	},
}

// SubAggOrder ranks buckets by a caller-supplied comparison over their
// opaque sub-aggregation results. cmp must implement a strict total order
// and must be consistent across calls; ties break ascending by term.
func SubAggOrder(name string, cmp func(a, b interface{}) int) Order {
	return Order{
		name: name,
		compare: func(a, b *Bucket) int {
			if c := cmp(a.Sub, b.Sub); c != 0 {
				return c
			}
			return compareHandles(a.Handle, b.Handle)
		},
		finalize: func(a, b *ResolvedBucket) int {
			if c := cmp(a.Sub, b.Sub); c != 0 {
				return c
			}
			return bytes.Compare(a.Key, b.Key)
		},
	}
}
