package sky

import (
	"sort"
)

// Path is the full ordered event history for one object id. Events are
// kept non-decreasing by timestamp; equal timestamps keep arrival order.
type Path struct {
	objectID uint64
	events   []Event
}

func newPath(objectID uint64) *Path {
	return &Path{objectID: objectID}
}

// ObjectID returns the id of the object this path belongs to.
func (p *Path) ObjectID() uint64 {
	return p.objectID
}

// Len returns the number of events on the path.
func (p *Path) Len() int {
	return len(p.events)
}

// insert places ev at the position that preserves timestamp ordering.
// The search is for the first strictly-greater timestamp, so ties land
// after existing equals and insertion order is stable.
func (p *Path) insert(ev Event) {
	i := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Timestamp > ev.Timestamp
	})
	p.events = append(p.events, Event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = ev
}

// encodeEvents serializes the ordered event stream alone, the form a
// Cursor is bound to.
func (p *Path) encodeEvents() []byte {
	var e encoder
	for _, ev := range p.events {
		ev.encode(&e)
	}
	return e.b
}

// Path wire format within a block file:
//
//	byteLen(4) | objectID(8) | eventCount(4) | event records
//
// byteLen counts the bytes after the length field, enabling partial reads
// that skip whole paths.
func (p *Path) encode(e *encoder) {
	at := e.reserveUint32()
	start := len(e.b)
	e.uint64(p.objectID)
	e.uint32(uint32(len(p.events)))
	for _, ev := range p.events {
		ev.encode(e)
	}
	e.fillUint32(at, uint32(len(e.b)-start))
}

func decodePath(d *decoder) (*Path, error) {
	n, err := d.uint32()
	if err != nil {
		return nil, err
	}
	body, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	sub := decoder{b: body}
	objectID, err := sub.uint64()
	if err != nil {
		return nil, err
	}
	count, err := sub.uint32()
	if err != nil {
		return nil, err
	}
	p := newPath(objectID)
	p.events = make([]Event, 0, count)
	var prev int64
	for i := 0; i < int(count); i++ {
		ev, err := decodeEvent(&sub)
		if err != nil {
			return nil, err
		}
		if i > 0 && ev.Timestamp < prev {
			return nil, corruptf("path %d: event %d out of timestamp order", objectID, i)
		}
		prev = ev.Timestamp
		p.events = append(p.events, ev)
	}
	if sub.remaining() != 0 {
		return nil, corruptf("path %d: %d trailing bytes", objectID, sub.remaining())
	}
	return p, nil
}
