package stream

import "github.com/plyio/ply/internal/options"

// config holds the tunables a ReaderOption may adjust before a blocking read
// begins.
type config struct {
	listSafetyCap uint64
	chunkSize     int
	batchSize     int
}

func defaultConfig() *config {
	return &config{
		listSafetyCap: 1<<31 - 1,
		chunkSize:     64 * 1024,
		batchSize:     4096,
	}
}

// ReaderOption configures a blocking Read call (see ReadAll).
type ReaderOption = options.Option[*config]

// WithListSafetyCap overrides the maximum accepted list property length.
func WithListSafetyCap(limit uint64) ReaderOption {
	return options.NoError(func(c *config) { c.listSafetyCap = limit })
}

// WithChunkSize overrides the number of bytes read from the source per
// underlying Read call.
func WithChunkSize(n int) ReaderOption {
	return options.NoError(func(c *config) { c.chunkSize = n })
}

// WithBatchSize overrides the number of records ReadAll asks TryNextBatch
// for per call before checking whether the current element has drained.
func WithBatchSize(n int) ReaderOption {
	return options.NoError(func(c *config) { c.batchSize = n })
}
