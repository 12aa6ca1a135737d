package winnow

// Handle is a compact identifier for a distinct term. Handles are dense,
// zero-based, assigned in dictionary order by the catalog, and stable only
// within a single reduction pass.
type Handle int64

// Bucket is one candidate row of the reduction input: a term handle, the
// number of documents that matched the term, and an opaque sub-aggregation
// result that is carried through selection untouched.
type Bucket struct {
	Handle Handle
	Count  uint64
	Sub    interface{}
}

// ResolvedBucket is a bucket that survived selection, with its handle
// exchanged for the term bytes. Key is owned by the bucket: it is copied
// out of the catalog's cursor buffer during resolution.
type ResolvedBucket struct {
	Key   []byte
	Count uint64
	Sub   interface{}
}

// Result is the outcome of one reduction pass.
//
// Buckets holds at most the policy's ShardSize entries, arranged by the
// policy order. OtherCount is the total document count of candidates that
// were evicted from the selection window. Candidates dropped by the
// minimum-document threshold are excluded entirely and never contribute
// to OtherCount.
type Result struct {
	Buckets    []*ResolvedBucket
	OtherCount uint64
}
