package winnow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"golang.org/x/sync/semaphore"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	pb "gopkg.in/cheggaaa/pb.v1"

	"github.com/mlowery/winnow/internal/pkg/winfs"
)

// Driver runs a full top-terms reduction: one bounded reduction per shard
// bucket file, a cross-shard merge, and emission of the final bucket set.
type Driver struct {
	config *config
	order  Order
	dicts  *CatalogCache
}

// config configures a Driver's execution of reductions
type config struct {
	Inputs          []string
	Dictionary      string
	RequiredSize    int
	ShardSize       int
	MinDocCount     uint64
	ShowCountError  bool
	MaxConcurrency  int
	DictCacheSize   int
	WorkingLocation string
}

func newConfig() *config {
	loadConfig() // Load viper config from settings file(s) and environment
	return &config{
		Inputs:          []string{},
		RequiredSize:    viper.GetInt("required_size"),
		ShardSize:       viper.GetInt("shard_size"),
		MinDocCount:     uint64(viper.GetInt64("min_doc_count")),
		MaxConcurrency:  viper.GetInt("max_concurrency"),
		DictCacheSize:   viper.GetInt("dict_cache_size"),
		WorkingLocation: viper.GetString("working_location"),
	}
}

// Option allows configuration of a Driver
type Option func(*config)

// NewDriver creates a new Driver with the provided order and optional
// configuration
func NewDriver(order Order, options ...Option) *Driver {
	d := &Driver{order: order}

	c := newConfig()
	for _, f := range options {
		f(c)
	}

	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	if c.ShardSize == 0 {
		c.ShardSize = DefaultShardSize(c.RequiredSize)
	}
	if c.ShardSize < c.RequiredSize {
		log.Warn("Configured shard size is smaller than required size")
		c.ShardSize = c.RequiredSize
	}

	dicts, err := NewCatalogCache(c.DictCacheSize)
	if err != nil {
		log.Fatalf("Invalid dictionary cache size %d: %s", c.DictCacheSize, err)
	}
	d.dicts = dicts

	d.config = c
	log.Debugf("Loaded config: %#v", c)

	return d
}

// WithRequiredSize sets the number of top terms the Driver returns
func WithRequiredSize(size int) Option {
	return func(c *config) {
		c.RequiredSize = size
	}
}

// WithShardSize sets the per-shard selection window of the Driver
func WithShardSize(size int) Option {
	return func(c *config) {
		c.ShardSize = size
	}
}

// WithMinDocCount sets the minimum document count a term needs to appear
func WithMinDocCount(count uint64) Option {
	return func(c *config) {
		c.MinDocCount = count
	}
}

// WithShowCountError asks the emitted output to include a count error
// column
func WithShowCountError() Option {
	return func(c *config) {
		c.ShowCountError = true
	}
}

// WithDictionary sets the term dictionary file used to resolve handles
func WithDictionary(path string) Option {
	return func(c *config) {
		c.Dictionary = path
	}
}

// WithWorkingLocation sets the output location and filesystem backend of
// the Driver
func WithWorkingLocation(location string) Option {
	return func(c *config) {
		c.WorkingLocation = location
	}
}

// WithInputs adds shard bucket files (or globs) as Driver input
func WithInputs(inputs ...string) Option {
	return func(c *config) {
		c.Inputs = append(c.Inputs, inputs...)
	}
}

func (d *Driver) policy() SelectionPolicy {
	return SelectionPolicy{
		Order:          d.order,
		RequiredSize:   d.config.RequiredSize,
		ShardSize:      d.config.ShardSize,
		MinDocCount:    d.config.MinDocCount,
		ShowCountError: d.config.ShowCountError,
	}
}

func (d *Driver) reduceShard(fs winfs.FileSystem, shard string) (*Result, error) {
	buckets, err := ReadBuckets(fs, shard)
	if err != nil {
		return nil, err
	}

	// A loaded dictionary supports random access, so one catalog serves
	// all concurrent shard reductions
	catalog, err := d.dicts.Load(fs, d.config.Dictionary)
	if err != nil {
		return nil, err
	}

	return Reduce(buckets, d.policy(), catalog)
}

func (d *Driver) runShardReductions(fs winfs.FileSystem) ([]*Result, error) {
	shards := make([]string, 0)
	for _, input := range d.config.Inputs {
		matched, err := ListShards(fs, input)
		if err != nil {
			return nil, err
		}
		shards = append(shards, matched...)
	}
	if len(shards) == 0 {
		log.Warnf("No input shards")
		return nil, nil
	}
	log.Debugf("Number of input shards: %d", len(shards))

	bar := pb.New(len(shards)).Prefix("Reduce").Start()
	results := make([]*Result, len(shards))
	errs := make([]error, len(shards))

	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(d.config.MaxConcurrency))
	for i, shard := range shards {
		sem.Acquire(context.Background(), 1)
		wg.Add(1)
		go func(i int, shard string) {
			defer wg.Done()
			defer sem.Release(1)
			defer bar.Increment()
			results[i], errs[i] = d.reduceShard(fs, shard)
			if errs[i] != nil {
				log.Errorf("Error reducing shard %s: %s", shard, errs[i])
			}
		}(i, shard)
	}
	wg.Wait()
	bar.Finish()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (d *Driver) emitResult(result *Result) error {
	fs := winfs.InferFilesystem(d.config.WorkingLocation)
	outPath := fs.Join(d.config.WorkingLocation, "top-terms.tsv")

	writer, err := fs.OpenWriter(outPath)
	if err != nil {
		return err
	}

	emitter := newTSVEmitter(writer, d.config.ShowCountError)
	for _, bucket := range result.Buckets {
		if err := emitter.Emit(bucket); err != nil {
			emitter.close()
			return err
		}
	}
	if err := emitter.EmitOther(result.OtherCount); err != nil {
		emitter.close()
		return err
	}
	if err := emitter.close(); err != nil {
		return err
	}

	log.Debugf("Wrote %s to %s", humanize.Bytes(uint64(emitter.bytesWritten())), outPath)
	return nil
}

// run starts the Driver
func (d *Driver) run() error {
	if len(d.config.Inputs) == 0 {
		return fmt.Errorf("no inputs")
	}
	if d.config.Dictionary == "" {
		return fmt.Errorf("no dictionary")
	}

	fs := winfs.InferFilesystem(d.config.Inputs[0])
	results, err := d.runShardReductions(fs)
	if err != nil {
		return err
	}
	if results == nil {
		return nil
	}

	final, err := MergeShards(results, d.policy())
	if err != nil {
		return err
	}

	return d.emitResult(final)
}

var dictFlag = pflag.String("dict", "", "Term dictionary file (can be local or in S3)")
var outputDir = pflag.StringP("out", "o", "", "Output directory (can be local or in S3)")
var sizeFlag = pflag.Int("size", 0, "Number of top terms to return")
var verboseFlag = pflag.BoolP("verbose", "v", false, "Verbose logging")

// Main starts the Driver, using command-line arguments as shard inputs.
func (d *Driver) Main() {
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)

	if *verboseFlag {
		log.SetLevel(log.DebugLevel)
	}

	d.config.Inputs = append(d.config.Inputs, pflag.Args()...)
	if *dictFlag != "" {
		d.config.Dictionary = *dictFlag
	}
	if *outputDir != "" {
		d.config.WorkingLocation = *outputDir
	}
	if *sizeFlag > 0 {
		d.config.RequiredSize = *sizeFlag
		if viper.GetInt("shard_size") == 0 {
			d.config.ShardSize = DefaultShardSize(*sizeFlag)
		}
	}

	start := time.Now()
	if err := d.run(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Reduction Time: %s\n", time.Since(start))
}
