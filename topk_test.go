package winnow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorCapacityPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSelector(0, CountDesc.compare)
	})
}

func TestSelectorBelowCapacity(t *testing.T) {
	selector := NewSelector(3, CountDesc.compare)

	for i, count := range []uint64{5, 50, 1} {
		evicted := selector.Insert(&Bucket{Handle: Handle(i), Count: count})
		assert.Nil(t, evicted)
	}
	assert.Equal(t, 3, selector.Len())
}

func TestSelectorEvictsWeakest(t *testing.T) {
	selector := NewSelector(2, CountDesc.compare)

	selector.Insert(&Bucket{Handle: 0, Count: 5})
	selector.Insert(&Bucket{Handle: 1, Count: 50})

	// A stronger candidate displaces the weakest retained bucket
	evicted := selector.Insert(&Bucket{Handle: 2, Count: 10})
	assert.NotNil(t, evicted)
	assert.Equal(t, uint64(5), evicted.Count)

	// A weaker candidate bounces straight back
	weak := &Bucket{Handle: 3, Count: 1}
	evicted = selector.Insert(weak)
	assert.Same(t, weak, evicted)

	assert.Equal(t, 2, selector.Len())
}

func TestSelectorPopOrder(t *testing.T) {
	selector := NewSelector(3, CountDesc.compare)

	for i, count := range []uint64{7, 3, 9} {
		selector.Insert(&Bucket{Handle: Handle(i), Count: count})
	}

	// Pops come off weakest-first
	counts := []uint64{}
	for b := selector.Pop(); b != nil; b = selector.Pop() {
		counts = append(counts, b.Count)
	}
	assert.Equal(t, []uint64{3, 7, 9}, counts)
	assert.Nil(t, selector.Pop())
}

func TestSelectorPopOrderKeyAsc(t *testing.T) {
	selector := NewSelector(3, KeyAsc.compare)

	for _, handle := range []Handle{4, 1, 3, 0, 2} {
		selector.Insert(&Bucket{Handle: handle, Count: 1})
	}

	// Under ascending key order the weakest bucket is the largest handle
	handles := []Handle{}
	for b := selector.Pop(); b != nil; b = selector.Pop() {
		handles = append(handles, b.Handle)
	}
	assert.Equal(t, []Handle{2, 1, 0}, handles)
}

func TestSelectorDrainUnordered(t *testing.T) {
	selector := NewSelector(4, CountDesc.compare)

	inserted := map[uint64]bool{}
	for i, count := range []uint64{8, 2, 6, 4} {
		selector.Insert(&Bucket{Handle: Handle(i), Count: count})
		inserted[count] = true
	}

	drained := selector.Drain()
	assert.Len(t, drained, 4)
	for _, b := range drained {
		assert.True(t, inserted[b.Count])
	}
	assert.Equal(t, 0, selector.Len())
}

func TestSelectorLongStream(t *testing.T) {
	selector := NewSelector(10, CountDesc.compare)

	var evictedTotal uint64
	var insertedTotal uint64
	for i := 0; i < 1000; i++ {
		count := uint64(i%97 + 1)
		insertedTotal += count
		if evicted := selector.Insert(&Bucket{Handle: Handle(i), Count: count}); evicted != nil {
			evictedTotal += evicted.Count
		}
	}

	assert.Equal(t, 10, selector.Len())

	var retainedTotal uint64
	for _, b := range selector.Drain() {
		assert.True(t, b.Count >= 96)
		retainedTotal += b.Count
	}
	assert.Equal(t, insertedTotal, retainedTotal+evictedTotal)
}
