package winnow

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"

	"github.com/mlowery/winnow/internal/pkg/winfs"
)

// TermCatalog resolves term handles back to term bytes.
//
// The returned slice is borrowed: it is only valid until the next Resolve
// call, so callers that retain a term must copy it first. Implementations
// expose a single forward cursor -- within one reduction pass, Resolve
// must be called with non-decreasing handles.
type TermCatalog interface {
	Resolve(handle Handle) ([]byte, error)
}

// MemoryCatalog is a TermCatalog over an in-memory dictionary. The slice
// index is the handle, so terms must be supplied in dictionary order.
//
// MemoryCatalog supports random access, so it does not enforce the
// forward-cursor restriction and may be shared read-only across
// concurrent reductions.
type MemoryCatalog struct {
	terms [][]byte
}

// NewMemoryCatalog builds a catalog from terms listed in dictionary order.
func NewMemoryCatalog(terms ...string) *MemoryCatalog {
	c := &MemoryCatalog{terms: make([][]byte, len(terms))}
	for i, term := range terms {
		c.terms[i] = []byte(term)
	}
	return c
}

// Resolve returns the term bytes for handle.
func (c *MemoryCatalog) Resolve(handle Handle) ([]byte, error) {
	if handle < 0 || int(handle) >= len(c.terms) {
		return nil, fmt.Errorf("handle %d out of range [0, %d)", handle, len(c.terms))
	}
	return c.terms[int(handle)], nil
}

// Len returns the number of distinct terms in the catalog.
func (c *MemoryCatalog) Len() int {
	return len(c.terms)
}

// CatalogCache keeps recently loaded dictionaries resident so repeated
// reductions against the same dictionary skip the file scan.
type CatalogCache struct {
	cache *lru.Cache
}

// NewCatalogCache returns a cache retaining up to size dictionaries.
func NewCatalogCache(size int) (*CatalogCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CatalogCache{cache: cache}, nil
}

// Load returns the dictionary at path, reading it through fs on a cache
// miss.
func (cc *CatalogCache) Load(fs winfs.FileSystem, path string) (*MemoryCatalog, error) {
	if cached, exists := cc.cache.Get(path); exists {
		return cached.(*MemoryCatalog), nil
	}

	catalog, err := LoadDictionary(fs, path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Cached dictionary %s (%d terms)", path, catalog.Len())

	cc.cache.Add(path, catalog)
	return catalog, nil
}
