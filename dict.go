package winnow

import (
	"bufio"
	"fmt"
	"io"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/mlowery/winnow/internal/pkg/winfs"
)

// DictCatalog is a TermCatalog over a newline-separated dictionary file:
// one term per line, in dictionary order, the line index being the handle.
//
// The underlying reader is consumed as handles advance, so a DictCatalog
// is a single forward cursor: Resolve must be called with non-decreasing
// handles, and a backwards seek fails the catalog. The bytes returned by
// Resolve alias the scanner's buffer and are only valid until the next
// call.
type DictCatalog struct {
	path    string
	reader  io.ReadCloser
	scanner *bufio.Scanner
	cursor  Handle // handle of the line currently held, -1 before the first read
	current []byte
}

// OpenDict opens the dictionary file at path.
func OpenDict(fs winfs.FileSystem, path string) (*DictCatalog, error) {
	fInfo, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dictionary %s: %s", path, err)
	}

	reader, err := fs.OpenReader(path, 0)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %s", path, err)
	}
	log.Debugf("Opened dictionary %s (%s)", path, humanize.Bytes(uint64(fInfo.Size)))

	return &DictCatalog{
		path:    path,
		reader:  reader,
		scanner: bufio.NewScanner(reader),
		cursor:  -1,
	}, nil
}

// Resolve advances the cursor to handle and returns that line's term.
// Resolving the cursor's current handle again is allowed and re-returns
// the held term.
func (d *DictCatalog) Resolve(handle Handle) ([]byte, error) {
	if handle < d.cursor {
		return nil, fmt.Errorf("dictionary %s: cursor at handle %d cannot seek back to %d", d.path, d.cursor, handle)
	}
	if handle == d.cursor {
		return d.current, nil
	}

	for d.cursor < handle {
		if !d.scanner.Scan() {
			if err := d.scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading dictionary %s: %s", d.path, err)
			}
			return nil, fmt.Errorf("dictionary %s: handle %d is past the last term (%d)", d.path, handle, d.cursor)
		}
		d.cursor++
	}

	d.current = d.scanner.Bytes()
	return d.current, nil
}

// Close releases the underlying reader.
func (d *DictCatalog) Close() error {
	return d.reader.Close()
}

// LoadDictionary reads a whole dictionary file into a MemoryCatalog.
// Unlike DictCatalog, the result supports random access and concurrent
// readers, at the price of holding every term in memory.
func LoadDictionary(fs winfs.FileSystem, path string) (*MemoryCatalog, error) {
	fInfo, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dictionary %s: %s", path, err)
	}

	reader, err := fs.OpenReader(path, 0)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %s", path, err)
	}
	defer reader.Close()

	catalog := &MemoryCatalog{}
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		term := make([]byte, len(scanner.Bytes()))
		copy(term, scanner.Bytes())
		catalog.terms = append(catalog.terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %s", path, err)
	}

	log.Debugf("Loaded dictionary %s (%s, %d terms)",
		path, humanize.Bytes(uint64(fInfo.Size)), catalog.Len())
	return catalog, nil
}
