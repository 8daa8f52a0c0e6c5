package sky

import (
	"errors"
	"strings"
	"testing"
)

func timestamps(p *Path) []int64 {
	out := make([]int64, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Timestamp)
	}
	return out
}

func TestPathInsertOrdersByTimestamp(t *testing.T) {
	p := newPath(5)
	for _, ts := range []int64{100, 50, 75} {
		p.insert(NewEvent(ts, 0, nil))
	}
	got := timestamps(p)
	want := []int64{50, 75, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestPathInsertStableOnEqualTimestamps(t *testing.T) {
	p := newPath(1)
	p.insert(NewEvent(10, 1, nil))
	p.insert(NewEvent(10, 2, nil))
	p.insert(NewEvent(5, 3, nil))
	p.insert(NewEvent(10, 4, nil))

	wantActions := []uint32{3, 1, 2, 4}
	if len(p.events) != len(wantActions) {
		t.Fatalf("want %d events, got %d", len(wantActions), len(p.events))
	}
	for i, want := range wantActions {
		if p.events[i].ActionID != want {
			t.Fatalf("event %d: want action %d, got %d", i, want, p.events[i].ActionID)
		}
	}
}

func TestPathEncodeDecodeRoundTrip(t *testing.T) {
	p := newPath(42)
	p.insert(NewEvent(100, 1, map[uint32]Value{
		1: IntValue(-7),
		2: FloatValue(3.25),
		3: BoolValue(true),
		4: StringValue("premium"),
	}))
	p.insert(NewEvent(50, 0, map[uint32]Value{2: StringValue("")}))

	var e encoder
	p.encode(&e)
	d := decoder{b: e.b}
	got, err := decodePath(&d)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.objectID != 42 || got.Len() != 2 {
		t.Fatalf("want path 42 with 2 events, got %d with %d", got.objectID, got.Len())
	}
	if got.events[0].Timestamp != 50 || got.events[1].Timestamp != 100 {
		t.Fatalf("timestamps not preserved: %v", timestamps(got))
	}
	ev := got.events[1]
	if ev.ActionID != 1 {
		t.Fatalf("want action 1, got %d", ev.ActionID)
	}
	if v, ok := ev.Property(1); !ok || v.Kind != ValueInt || v.Int != -7 {
		t.Fatalf("int property not preserved: %+v", v)
	}
	if v, ok := ev.Property(2); !ok || v.Kind != ValueFloat || v.Float != 3.25 {
		t.Fatalf("float property not preserved: %+v", v)
	}
	if v, ok := ev.Property(3); !ok || v.Kind != ValueBool || !v.Bool {
		t.Fatalf("bool property not preserved: %+v", v)
	}
	if v, ok := ev.Property(4); !ok || v.Kind != ValueString || v.Str != "premium" {
		t.Fatalf("string property not preserved: %+v", v)
	}
}

func TestDecodePathRejectsOutOfOrderEvents(t *testing.T) {
	p := newPath(1)
	// Bypass insert to craft an unordered stream.
	p.events = []Event{NewEvent(5, 0, nil), NewEvent(3, 0, nil)}
	var e encoder
	p.encode(&e)
	d := decoder{b: e.b}
	if _, err := decodePath(&d); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}
}

func TestDecodeEventLengthOverrun(t *testing.T) {
	var e encoder
	e.uint32(100)
	e.bytes([]byte{1, 2, 3})
	d := decoder{b: e.b}
	if _, err := decodeEvent(&d); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}
}

func TestEventImmutableAfterConstruction(t *testing.T) {
	props := map[uint32]Value{1: IntValue(1)}
	ev := NewEvent(1, 0, props)
	props[1] = IntValue(99)
	if v, _ := ev.Property(1); v.Int != 1 {
		t.Fatalf("event property mutated through caller's map: %d", v.Int)
	}
}

func TestEventValidateWireLimits(t *testing.T) {
	atLimit := NewEvent(10, 0, map[uint32]Value{1: StringValue(strings.Repeat("x", maxWireLen))})
	if err := atLimit.validate(); err != nil {
		t.Fatalf("max-length string rejected: %v", err)
	}

	over := NewEvent(10, 0, map[uint32]Value{1: StringValue(strings.Repeat("x", maxWireLen+1))})
	if err := over.validate(); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("want ErrTooLarge for oversize string, got %v", err)
	}

	props := make(map[uint32]Value, maxWireLen+1)
	for i := 0; i <= maxWireLen; i++ {
		props[uint32(i+1)] = IntValue(int64(i))
	}
	crowded := NewEvent(10, 0, props)
	if err := crowded.validate(); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("want ErrTooLarge for %d properties, got %v", len(props), err)
	}
}
