package sky

import (
	"errors"
	"testing"
)

func TestCursorReadsEventsInOrder(t *testing.T) {
	p := newPath(5)
	for _, ts := range []int64{100, 50, 75} {
		p.insert(NewEvent(ts, 0, nil))
	}
	c := NewCursor()
	c.bind(p.objectID, p.encodeEvents())

	want := []int64{50, 75, 100}
	for i, ts := range want {
		ev, err := c.NextEvent()
		if err != nil {
			t.Fatalf("next event %d: %v", i, err)
		}
		if ev == nil {
			t.Fatalf("stream ended early at %d", i)
		}
		if ev.Timestamp != ts {
			t.Fatalf("event %d: want timestamp %d, got %d", i, ts, ev.Timestamp)
		}
	}
	if !c.EOF() {
		t.Fatal("cursor not at EOF after last event")
	}
	if ev, err := c.NextEvent(); err != nil || ev != nil {
		t.Fatalf("want (nil, nil) past EOF, got (%v, %v)", ev, err)
	}
}

func TestNewCursorStartsExhausted(t *testing.T) {
	c := NewCursor()
	if !c.EOF() {
		t.Fatal("unbound cursor should be at EOF")
	}
	if ev, err := c.NextEvent(); err != nil || ev != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", ev, err)
	}
}

func TestCursorCorruptRecordLength(t *testing.T) {
	var e encoder
	NewEvent(1, 0, nil).encode(&e)
	e.uint32(1 << 20) // declared length overruns the buffer
	e.bytes([]byte{0})

	c := NewCursor()
	c.bind(1, e.b)
	if _, err := c.NextEvent(); err != nil {
		t.Fatalf("first record should decode: %v", err)
	}
	if _, err := c.NextEvent(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}
}
