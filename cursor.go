package sky

// Cursor is a transient read position over one path's encoded event
// stream. Bind it to paths with PathIterator.Next; events come back in
// timestamp order.
type Cursor struct {
	objectID uint64
	data     []byte
	off      int
	eof      bool
}

func NewCursor() *Cursor {
	return &Cursor{eof: true}
}

// bind points the cursor at a path's event buffer and resets its
// position.
func (c *Cursor) bind(objectID uint64, data []byte) {
	c.objectID = objectID
	c.data = data
	c.off = 0
	c.eof = len(data) == 0
}

// ObjectID returns the id of the path the cursor is bound to.
func (c *Cursor) ObjectID() uint64 {
	return c.objectID
}

// EOF reports whether the event stream is exhausted.
func (c *Cursor) EOF() bool {
	return c.eof
}

// NextEvent decodes the next event record and advances. It returns
// (nil, nil) once the stream is exhausted, and ErrCorrupt when a
// record's declared length overruns the buffer.
func (c *Cursor) NextEvent() (*Event, error) {
	if c.eof || c.off >= len(c.data) {
		c.eof = true
		return nil, nil
	}
	d := decoder{b: c.data, off: c.off}
	ev, err := decodeEvent(&d)
	if err != nil {
		return nil, err
	}
	c.off = d.off
	if c.off >= len(c.data) {
		c.eof = true
	}
	return &ev, nil
}
