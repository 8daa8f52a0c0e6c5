package sky

import (
	"sort"
)

// block is one disk-backed partition of an object file. It holds every
// path whose object id falls in [minID, maxID], sorted by object id.
type block struct {
	minID uint64
	maxID uint64
	paths []*Path
}

func newBlock(minID, maxID uint64) *block {
	return &block{minID: minID, maxID: maxID}
}

func (b *block) contains(objectID uint64) bool {
	return objectID >= b.minID && objectID <= b.maxID
}

// findOrCreatePath locates the path for objectID, inserting a new empty
// one at its sorted position when absent.
func (b *block) findOrCreatePath(objectID uint64) *Path {
	i := sort.Search(len(b.paths), func(i int) bool {
		return b.paths[i].objectID >= objectID
	})
	if i < len(b.paths) && b.paths[i].objectID == objectID {
		return b.paths[i]
	}
	p := newPath(objectID)
	b.paths = append(b.paths, nil)
	copy(b.paths[i+1:], b.paths[i:])
	b.paths[i] = p
	return p
}

func (b *block) insertEvent(objectID uint64, ev Event) {
	b.findOrCreatePath(objectID).insert(ev)
}

func (b *block) eventCount() int {
	n := 0
	for _, p := range b.paths {
		n += p.Len()
	}
	return n
}

// Block file wire format: pathCount(4) followed by each path's
// length-prefixed serialized form, in ascending object-id order.
func (b *block) encode() []byte {
	var e encoder
	e.uint32(uint32(len(b.paths)))
	for _, p := range b.paths {
		p.encode(&e)
	}
	return e.b
}

func decodeBlock(minID, maxID uint64, data []byte) (*block, error) {
	d := decoder{b: data}
	count, err := d.uint32()
	if err != nil {
		return nil, err
	}
	b := newBlock(minID, maxID)
	b.paths = make([]*Path, 0, count)
	var prev uint64
	for i := 0; i < int(count); i++ {
		p, err := decodePath(&d)
		if err != nil {
			return nil, err
		}
		if !b.contains(p.objectID) {
			return nil, corruptf("block %d-%d: path %d outside range", minID, maxID, p.objectID)
		}
		if i > 0 && p.objectID <= prev {
			return nil, corruptf("block %d-%d: paths out of order at %d", minID, maxID, p.objectID)
		}
		prev = p.objectID
		b.paths = append(b.paths, p)
	}
	if d.remaining() != 0 {
		return nil, corruptf("block %d-%d: %d trailing bytes", minID, maxID, d.remaining())
	}
	return b, nil
}

// split partitions the block at the median object id among its current
// paths, returning [minID, median] and (median, maxID]. Every path lands
// on exactly one side; no event is lost or duplicated. Returns nil when
// the range cannot be subdivided (single-id range).
func (b *block) split() (*block, *block) {
	if b.minID == b.maxID || len(b.paths) == 0 {
		return nil, nil
	}
	median := b.paths[(len(b.paths)-1)/2].objectID
	if median >= b.maxID {
		median = b.maxID - 1
	}

	left := newBlock(b.minID, median)
	right := newBlock(median+1, b.maxID)
	for _, p := range b.paths {
		if p.objectID <= median {
			left.paths = append(left.paths, p)
		} else {
			right.paths = append(right.paths, p)
		}
	}
	return left, right
}
