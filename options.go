package sky

import (
	"github.com/davidcoallier/sky/pkg/log"
)

// FsyncMode defines durability behavior for engine writes.
type FsyncMode int

const (
	FsyncUnspecified FsyncMode = iota
	// FsyncAlways syncs every rewritten file, and its directory, before a
	// write is reported durable. This is the default.
	FsyncAlways
	// FsyncNever leaves flushing to the OS. This mode trades durability
	// for throughput and should be used with care.
	FsyncNever
)

// DefaultBlockSize is the serialized-size threshold above which a block
// is split in two.
const DefaultBlockSize = 64 << 10

// Options configures an ObjectFile handle.
type Options struct {
	// BlockSize is the split threshold in bytes. Zero means
	// DefaultBlockSize.
	BlockSize int
	// Fsync determines when file writes are synced.
	Fsync FsyncMode
	// Logger receives engine diagnostics. Nil means silent.
	Logger log.Logger
}

func (o Options) withDefaults() Options {
	if o.BlockSize <= 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.Fsync == FsyncUnspecified {
		o.Fsync = FsyncAlways
	}
	if o.Logger == nil {
		o.Logger = log.NewNopLogger()
	}
	return o
}

func (o Options) syncWrites() bool {
	return o.Fsync != FsyncNever
}
