package winnow

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/mlowery/winnow/internal/pkg/winfs"
)

// ReadBuckets loads one shard's candidate buckets from a file of
// handle<TAB>count lines.
//
// The upstream counting pass writes one line per distinct term in
// ascending handle order. The reducer trusts that ordering, so it is
// enforced here at the boundary instead: a regression or repeat is a
// malformed shard, not a reduction error.
func ReadBuckets(fs winfs.FileSystem, path string) ([]*Bucket, error) {
	fInfo, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat shard %s: %s", path, err)
	}

	reader, err := fs.OpenReader(path, 0)
	if err != nil {
		return nil, fmt.Errorf("open shard %s: %s", path, err)
	}
	defer reader.Close()

	buckets := make([]*Bucket, 0)
	lastHandle := Handle(-1)
	lineNum := 0

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: malformed bucket line %q", path, lineNum, line)
		}

		handle, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad handle: %s", path, lineNum, err)
		}
		count, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad count: %s", path, lineNum, err)
		}

		if Handle(handle) <= lastHandle {
			return nil, fmt.Errorf("%s:%d: handle %d is not ascending (previous %d)", path, lineNum, handle, lastHandle)
		}
		lastHandle = Handle(handle)

		buckets = append(buckets, &Bucket{Handle: Handle(handle), Count: count})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading shard %s: %s", path, err)
	}

	log.Debugf("Read %d buckets from %s (%s)",
		len(buckets), path, humanize.Bytes(uint64(fInfo.Size)))
	return buckets, nil
}

// ListShards returns the paths of shard bucket files matching pathGlob.
func ListShards(fs winfs.FileSystem, pathGlob string) ([]string, error) {
	files, err := fs.ListFiles(pathGlob)
	if err != nil {
		return nil, err
	}

	shards := make([]string, 0, len(files))
	for _, file := range files {
		shards = append(shards, file.Name)
	}
	return shards, nil
}
