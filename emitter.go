package winnow

import (
	"fmt"
	"io"
	"sync"
)

// Emitter receives the buckets of a finished reduction.
type Emitter interface {
	Emit(bucket *ResolvedBucket) error
	EmitOther(count uint64) error
	close() error
	bytesWritten() int64
}

// otherKey labels the residual-count trailer line in emitted output.
const otherKey = "__other__"

// tsvEmitter is a threadsafe emitter writing term<TAB>count lines.
type tsvEmitter struct {
	writer         io.WriteCloser
	mut            *sync.Mutex
	showCountError bool
	writtenBytes   int64
}

// newTSVEmitter initializes and returns a new tsvEmitter.
func newTSVEmitter(writer io.WriteCloser, showCountError bool) *tsvEmitter {
	return &tsvEmitter{
		writer:         writer,
		mut:            &sync.Mutex{},
		showCountError: showCountError,
	}
}

// Emit writes one bucket as a TSV line. With showCountError set, a count
// error column is appended; counts from the exact upstream pass always
// carry an error of zero.
func (e *tsvEmitter) Emit(bucket *ResolvedBucket) error {
	if e.showCountError {
		return e.writeLine(fmt.Sprintf("%s\t%d\t0\n", bucket.Key, bucket.Count))
	}
	return e.writeLine(fmt.Sprintf("%s\t%d\n", bucket.Key, bucket.Count))
}

// EmitOther writes the residual document count as a trailer line.
func (e *tsvEmitter) EmitOther(count uint64) error {
	return e.writeLine(fmt.Sprintf("%s\t%d\n", otherKey, count))
}

func (e *tsvEmitter) writeLine(line string) error {
	e.mut.Lock()
	defer e.mut.Unlock()

	n, err := e.writer.Write([]byte(line))
	e.writtenBytes += int64(n)
	return err
}

// close terminates the emitter. close must not be called more than once
func (e *tsvEmitter) close() error {
	return e.writer.Close()
}

func (e *tsvEmitter) bytesWritten() int64 {
	return e.writtenBytes
}
