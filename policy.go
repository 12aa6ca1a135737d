package winnow

import "fmt"

// SelectionPolicy configures one reduction pass.
type SelectionPolicy struct {
	// Order ranks buckets during selection and arranges the final set.
	Order Order

	// RequiredSize is the number of buckets the caller ultimately wants.
	// The reduction itself returns up to ShardSize buckets so a
	// cross-shard merge can re-rank them; truncation to RequiredSize is
	// the merge layer's job.
	RequiredSize int

	// ShardSize is the bounded working-set capacity used during
	// selection. Must be at least RequiredSize.
	ShardSize int

	// MinDocCount drops buckets below the threshold before selection.
	// Dropped counts never contribute to Result.OtherCount.
	MinDocCount uint64

	// ShowCountError asks downstream emitters to include a count error
	// column. Counts produced by the exact upstream pass carry an error
	// of zero.
	ShowCountError bool
}

// DefaultShardSize returns the conventional per-shard working-set size for
// a requested result size, padded so that cross-shard merging stays
// accurate for skewed shards.
func DefaultShardSize(requiredSize int) int {
	return requiredSize*3/2 + 10
}

func (p SelectionPolicy) validate() error {
	if p.RequiredSize < 1 {
		return fmt.Errorf("winnow: required size must be at least 1, got %d", p.RequiredSize)
	}
	if p.ShardSize < p.RequiredSize {
		return fmt.Errorf("winnow: shard size %d is smaller than required size %d", p.ShardSize, p.RequiredSize)
	}
	if p.Order.compare == nil {
		return fmt.Errorf("winnow: selection policy has no order")
	}
	return nil
}
