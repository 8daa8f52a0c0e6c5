package sky

import (
	"math"
	"sort"
)

// blockRange is one header entry: the inclusive object-id range of a
// block file.
type blockRange struct {
	minID uint64
	maxID uint64
}

// header is the sorted index of block ranges for an object file. The
// ranges are pairwise disjoint and in aggregate cover the full object-id
// domain, so every id binary-searches to exactly one block.
type header struct {
	ranges []blockRange
}

// newHeader returns the initial header: a single block spanning the full
// id domain.
func newHeader() *header {
	return &header{ranges: []blockRange{{minID: 0, maxID: math.MaxUint64}}}
}

// find returns the index of the range containing objectID. Coverage is a
// load-time invariant, so a miss cannot happen on a validated header.
func (h *header) find(objectID uint64) int {
	i := sort.Search(len(h.ranges), func(i int) bool {
		return h.ranges[i].maxID >= objectID
	})
	if i < len(h.ranges) && objectID >= h.ranges[i].minID {
		return i
	}
	return -1
}

// replace substitutes entry i with two ranges, keeping the slice sorted
// by minID.
func (h *header) replace(i int, a, b blockRange) {
	h.ranges[i] = a
	h.ranges = append(h.ranges, blockRange{})
	copy(h.ranges[i+2:], h.ranges[i+1:])
	h.ranges[i+1] = b
	sort.Slice(h.ranges, func(i, j int) bool { return h.ranges[i].minID < h.ranges[j].minID })
}

func (h *header) validate() error {
	if len(h.ranges) == 0 {
		return corruptf("header: no block ranges")
	}
	if h.ranges[0].minID != 0 {
		return corruptf("header: id domain starts at %d, not 0", h.ranges[0].minID)
	}
	for i, r := range h.ranges {
		if r.maxID < r.minID {
			return corruptf("header: inverted range %d-%d", r.minID, r.maxID)
		}
		if i > 0 && r.minID != h.ranges[i-1].maxID+1 {
			return corruptf("header: gap or overlap before range %d-%d", r.minID, r.maxID)
		}
	}
	if h.ranges[len(h.ranges)-1].maxID != math.MaxUint64 {
		return corruptf("header: id domain ends early at %d", h.ranges[len(h.ranges)-1].maxID)
	}
	return nil
}

// Header wire format: blockCount(4) then blockCount x (minID(8), maxID(8)).
func (h *header) encode() []byte {
	var e encoder
	e.uint32(uint32(len(h.ranges)))
	for _, r := range h.ranges {
		e.uint64(r.minID)
		e.uint64(r.maxID)
	}
	return e.b
}

func decodeHeader(data []byte) (*header, error) {
	d := decoder{b: data}
	count, err := d.uint32()
	if err != nil {
		return nil, err
	}
	h := &header{ranges: make([]blockRange, 0, count)}
	for i := 0; i < int(count); i++ {
		minID, err := d.uint64()
		if err != nil {
			return nil, err
		}
		maxID, err := d.uint64()
		if err != nil {
			return nil, err
		}
		h.ranges = append(h.ranges, blockRange{minID: minID, maxID: maxID})
	}
	if d.remaining() != 0 {
		return nil, corruptf("header: %d trailing bytes", d.remaining())
	}
	sort.Slice(h.ranges, func(i, j int) bool { return h.ranges[i].minID < h.ranges[j].minID })
	if err := h.validate(); err != nil {
		return nil, err
	}
	return h, nil
}
