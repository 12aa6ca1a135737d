package winnow

// Selector is a fixed-capacity priority structure that retains the top
// `capacity` buckets seen so far under a strict total-order comparator,
// in O(log capacity) per insertion.
//
// The retained set is kept as a binary heap with the weakest retained
// bucket at the root, so deciding whether a candidate displaces anything
// is a single comparison against the root.
type Selector struct {
	capacity int
	compare  func(a, b *Bucket) int
	heap     []*Bucket
}

// NewSelector returns a Selector retaining the capacity buckets that rank
// first under compare (compare(a, b) < 0 means a ranks ahead of b).
// Capacity must be at least 1.
func NewSelector(capacity int, compare func(a, b *Bucket) int) *Selector {
	if capacity < 1 {
		panic("winnow: selector capacity must be at least 1")
	}
	return &Selector{
		capacity: capacity,
		compare:  compare,
		heap:     make([]*Bucket, 0, capacity),
	}
}

// Len returns the number of retained buckets.
func (s *Selector) Len() int {
	return len(s.heap)
}

// Insert offers a bucket to the selector. It returns nil while the
// selector is below capacity. At capacity it returns the bucket evicted
// to make room, or the candidate itself if it ranked at or below the
// weakest retained bucket.
func (s *Selector) Insert(b *Bucket) *Bucket {
	if len(s.heap) < s.capacity {
		s.heap = append(s.heap, b)
		s.up(len(s.heap) - 1)
		return nil
	}
	if s.compare(b, s.heap[0]) >= 0 {
		return b
	}
	evicted := s.heap[0]
	s.heap[0] = b
	s.down(0)
	return evicted
}

// Pop removes and returns the weakest retained bucket, or nil when the
// selector is empty. Repeated pops therefore yield the retained set in
// reverse rank order.
func (s *Selector) Pop() *Bucket {
	n := len(s.heap)
	if n == 0 {
		return nil
	}
	weakest := s.heap[0]
	s.heap[0] = s.heap[n-1]
	s.heap = s.heap[:n-1]
	if len(s.heap) > 0 {
		s.down(0)
	}
	return weakest
}

// Drain removes and returns the retained set in heap order, which is not
// sorted by the comparator. Callers wanting ranked output either pop and
// reverse, or sort after draining.
func (s *Selector) Drain() []*Bucket {
	drained := s.heap
	s.heap = nil
	return drained
}

// weaker reports whether a ranks below b.
func (s *Selector) weaker(a, b *Bucket) bool {
	return s.compare(a, b) > 0
}

func (s *Selector) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !s.weaker(s.heap[i], s.heap[parent]) {
			break
		}
		s.heap[i], s.heap[parent] = s.heap[parent], s.heap[i]
		i = parent
	}
}

func (s *Selector) down(i int) {
	n := len(s.heap)
	for {
		weakest := i
		if l := 2*i + 1; l < n && s.weaker(s.heap[l], s.heap[weakest]) {
			weakest = l
		}
		if r := 2*i + 2; r < n && s.weaker(s.heap[r], s.heap[weakest]) {
			weakest = r
		}
		if weakest == i {
			return
		}
		s.heap[i], s.heap[weakest] = s.heap[weakest], s.heap[i]
		i = weakest
	}
}
