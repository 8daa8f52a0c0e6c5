package sky

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidcoallier/sky/pkg/log"
)

const (
	headerFileName     = "header"
	actionsFileName    = "actions"
	propertiesFileName = "properties"
	lockFileName       = "lock"
)

// ObjectFile owns all events for one object type: the header's
// block-range index, the action and property registries, and the set of
// disk-backed blocks. All mutation happens under the process-level lock
// acquired by Open.
type ObjectFile struct {
	db   *Database
	name string
	path string
	opts Options

	logger log.Logger
	lock   *fileLock

	header     *header
	blocks     []*block
	actions    *Registry
	properties *Registry

	opened bool
}

func newObjectFile(db *Database, name string, opts Options) *ObjectFile {
	opts = opts.withDefaults()
	path := filepath.Join(db.path, name)
	return &ObjectFile{
		db:     db,
		name:   name,
		path:   path,
		opts:   opts,
		logger: opts.Logger.With(log.Str("object_type", name)),
		lock:   newFileLock(filepath.Join(path, lockFileName)),
	}
}

// Name returns the object type name.
func (of *ObjectFile) Name() string {
	return of.name
}

// Path returns the object file's directory.
func (of *ObjectFile) Path() string {
	return of.path
}

// Actions returns the action registry. Valid after Open.
func (of *ObjectFile) Actions() *Registry {
	return of.actions
}

// Properties returns the property registry. Valid after Open.
func (of *ObjectFile) Properties() *Registry {
	return of.properties
}

// Open acquires the exclusive lock, then loads the header, both
// registries, and the block set the header names. A missing header
// initializes a single empty block spanning the full id domain; it is
// first persisted when it changes.
func (of *ObjectFile) Open() error {
	if of.opened {
		return errors.New("sky: object file already open")
	}
	if err := os.MkdirAll(of.path, 0o755); err != nil {
		return err
	}
	if err := of.lock.lock(); err != nil {
		return err
	}

	if err := of.load(); err != nil {
		_ = of.lock.unlock()
		return err
	}
	of.opened = true
	of.logger.Debug("object file opened",
		log.Int("blocks", len(of.blocks)),
		log.Int("actions", of.actions.Len()),
		log.Int("properties", of.properties.Len()))
	return nil
}

func (of *ObjectFile) load() error {
	data, err := readFileIfExists(filepath.Join(of.path, headerFileName))
	if err != nil {
		return err
	}
	if data == nil {
		of.header = newHeader()
	} else {
		h, err := decodeHeader(data)
		if err != nil {
			return err
		}
		of.header = h
	}

	of.actions = newRegistry(filepath.Join(of.path, actionsFileName), of.opts.syncWrites())
	if err := of.actions.load(); err != nil {
		return err
	}
	of.properties = newRegistry(filepath.Join(of.path, propertiesFileName), of.opts.syncWrites())
	if err := of.properties.load(); err != nil {
		return err
	}

	of.blocks = make([]*block, 0, len(of.header.ranges))
	for _, r := range of.header.ranges {
		data, err := readFileIfExists(of.blockFilePath(r))
		if err != nil {
			return err
		}
		if data == nil {
			of.blocks = append(of.blocks, newBlock(r.minID, r.maxID))
			continue
		}
		b, err := decodeBlock(r.minID, r.maxID, data)
		if err != nil {
			return err
		}
		of.blocks = append(of.blocks, b)
	}
	return nil
}

// Close releases the lock. It is a no-op when the handle does not hold
// the lock.
func (of *ObjectFile) Close() error {
	if !of.opened {
		return nil
	}
	of.opened = false
	of.blocks = nil
	return of.lock.unlock()
}

// AddEvent validates ev against the registries and the wire format's
// length limits, routes it to the block
// owning objectID, and persists that block before returning. A block
// whose serialized size exceeds Options.BlockSize is split at its median
// object id; both new block files and the updated header are persisted
// before the old block file is removed, so a crash mid-split leaves
// either the pre-split or fully post-split state.
func (of *ObjectFile) AddEvent(objectID uint64, ev Event) error {
	if !of.opened {
		return errors.New("sky: object file not open")
	}
	if err := ev.validate(); err != nil {
		return err
	}
	if ev.ActionID != 0 && !of.actions.Has(ev.ActionID) {
		return fmt.Errorf("%w: action %d", ErrUnknownReference, ev.ActionID)
	}
	for id := range ev.props {
		if !of.properties.Has(id) {
			return fmt.Errorf("%w: property %d", ErrUnknownReference, id)
		}
	}

	i := of.header.find(objectID)
	if i < 0 {
		return corruptf("no block covers object id %d", objectID)
	}
	b := of.blocks[i]
	b.insertEvent(objectID, ev)

	data := b.encode()
	if len(data) <= of.opts.BlockSize {
		return writeFileAtomic(of.blockFilePath(of.header.ranges[i]), data, of.opts.syncWrites())
	}

	left, right := b.split()
	if left == nil {
		// Single-id range: nothing to split, the block stays oversized.
		return writeFileAtomic(of.blockFilePath(of.header.ranges[i]), data, of.opts.syncWrites())
	}
	return of.commitSplit(i, left, right)
}

// commitSplit persists both halves, then the rewritten header, then
// removes the old block file. Ordering matters: until the header lands,
// a reopen still sees the pre-split state.
func (of *ObjectFile) commitSplit(i int, left, right *block) error {
	old := of.header.ranges[i]
	leftRange := blockRange{minID: left.minID, maxID: left.maxID}
	rightRange := blockRange{minID: right.minID, maxID: right.maxID}

	sync := of.opts.syncWrites()
	if err := writeFileAtomic(of.blockFilePath(leftRange), left.encode(), sync); err != nil {
		return err
	}
	if err := writeFileAtomic(of.blockFilePath(rightRange), right.encode(), sync); err != nil {
		return err
	}

	of.header.replace(i, leftRange, rightRange)
	of.blocks = append(of.blocks, nil)
	copy(of.blocks[i+2:], of.blocks[i+1:])
	of.blocks[i] = left
	of.blocks[i+1] = right

	if err := writeFileAtomic(filepath.Join(of.path, headerFileName), of.header.encode(), sync); err != nil {
		return err
	}

	oldFile := of.blockFilePath(old)
	if oldFile != of.blockFilePath(leftRange) && oldFile != of.blockFilePath(rightRange) {
		if err := os.Remove(oldFile); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	of.logger.Debug("block split",
		log.Uint64("old_min", old.minID), log.Uint64("old_max", old.maxID),
		log.Uint64("median", left.maxID))
	return nil
}

// blockFilePath names a block file by its range, so the header alone
// identifies every block on disk.
func (of *ObjectFile) blockFilePath(r blockRange) string {
	return filepath.Join(of.path, fmt.Sprintf("%d-%d", r.minID, r.maxID))
}

// NewPathIterator returns an iterator over every path in the object
// file, in ascending object-id order. Valid after Open and until Close.
func (of *ObjectFile) NewPathIterator() *PathIterator {
	return &PathIterator{of: of}
}
