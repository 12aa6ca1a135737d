package winnow

import (
	log "github.com/sirupsen/logrus"
)

// MergeShards combines per-shard reduction results into the final bucket
// set.
//
// Buckets for the same term are summed across shards. The combined set is
// filtered against policy.MinDocCount again (a term can clear the
// threshold per shard yet individual shards may have trimmed it), ranked
// by policy.Order, and truncated to policy.RequiredSize -- this is the
// layer that narrows the window from ShardSize down to RequiredSize.
// Counts pushed out by the truncation join the summed per-shard
// OtherCounts; counts dropped by the threshold do not.
//
// Sub-aggregation results are opaque and cannot be combined here; a merged
// bucket keeps the sub-result from the shard where the term counted
// highest.
func MergeShards(results []*Result, policy SelectionPolicy) (*Result, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}

	var otherCount uint64
	merged := make(map[string]*ResolvedBucket)
	highest := make(map[string]uint64)

	for _, result := range results {
		otherCount += result.OtherCount
		for _, b := range result.Buckets {
			key := string(b.Key)
			existing, seen := merged[key]
			if !seen {
				merged[key] = &ResolvedBucket{Key: b.Key, Count: b.Count, Sub: b.Sub}
				highest[key] = b.Count
				continue
			}
			existing.Count += b.Count
			if b.Count > highest[key] {
				existing.Sub = b.Sub
				highest[key] = b.Count
			}
		}
	}

	combined := make([]*ResolvedBucket, 0, len(merged))
	for _, b := range merged {
		if b.Count < policy.MinDocCount {
			continue
		}
		combined = append(combined, b)
	}
	sortResolved(combined, policy.Order)

	if len(combined) > policy.RequiredSize {
		for _, b := range combined[policy.RequiredSize:] {
			otherCount += b.Count
		}
		combined = combined[:policy.RequiredSize]
	}

	log.Debugf("Merged %d shard results into %d buckets (other count %d)",
		len(results), len(combined), otherCount)
	return &Result{Buckets: combined, OtherCount: otherCount}, nil
}
