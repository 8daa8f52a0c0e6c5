package sky

import (
	"fmt"
	"math"
	"sort"
)

// maxWireLen is the largest byte length a uint16 prefix can describe.
// String payloads, registry names and per-event property counts all
// share this ceiling.
const maxWireLen = math.MaxUint16

// ValueKind tags the payload type of a property value. The wire format has
// no implicit typing, so the tag is stored alongside the raw bytes.
type ValueKind uint8

const (
	ValueInt ValueKind = iota + 1
	ValueFloat
	ValueBool
	ValueString
)

// Value is one typed property payload.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

func IntValue(v int64) Value { return Value{Kind: ValueInt, Int: v} }

func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Float: v} }

func BoolValue(v bool) Value { return Value{Kind: ValueBool, Bool: v} }

func StringValue(v string) Value { return Value{Kind: ValueString, Str: v} }

// Event is one recorded occurrence on a path: a timestamp, an optional
// action id (0 = none) and a set of property values keyed by property id.
// Events are immutable once constructed.
type Event struct {
	Timestamp int64
	ActionID  uint32

	props map[uint32]Value
}

// NewEvent copies props so later mutation of the caller's map cannot reach
// the stored event.
func NewEvent(timestamp int64, actionID uint32, props map[uint32]Value) Event {
	ev := Event{Timestamp: timestamp, ActionID: actionID}
	if len(props) > 0 {
		ev.props = make(map[uint32]Value, len(props))
		for id, v := range props {
			ev.props[id] = v
		}
	}
	return ev
}

// Property returns the value stored under a property id.
func (ev Event) Property(id uint32) (Value, bool) {
	v, ok := ev.props[id]
	return v, ok
}

// PropertyIDs returns the event's property ids in ascending order.
func (ev Event) PropertyIDs() []uint32 {
	ids := make([]uint32, 0, len(ev.props))
	for id := range ev.props {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// validate rejects events the record format cannot represent. encode
// never checks lengths, so a value that wraps its uint16 prefix would
// otherwise persist as an unreadable record; callers must validate
// before encoding.
func (ev Event) validate() error {
	if len(ev.props) > maxWireLen {
		return fmt.Errorf("%w: %d properties on one event", ErrTooLarge, len(ev.props))
	}
	for id, v := range ev.props {
		if v.Kind == ValueString && len(v.Str) > maxWireLen {
			return fmt.Errorf("%w: string property %d is %d bytes", ErrTooLarge, id, len(v.Str))
		}
	}
	return nil
}

// Event record wire format:
//
//	recordLen(4) | timestamp(8) | actionID(4) | propCount(2) | props...
//
// where each property is propID(4) | kind(1) | payload. recordLen counts
// the bytes after the length field. Properties are written in ascending
// id order so encoding is deterministic.
func (ev Event) encode(e *encoder) {
	at := e.reserveUint32()
	start := len(e.b)
	e.uint64(uint64(ev.Timestamp))
	e.uint32(ev.ActionID)
	e.uint16(uint16(len(ev.props)))
	for _, id := range ev.PropertyIDs() {
		v := ev.props[id]
		e.uint32(id)
		e.uint8(uint8(v.Kind))
		switch v.Kind {
		case ValueInt:
			e.uint64(uint64(v.Int))
		case ValueFloat:
			e.uint64(math.Float64bits(v.Float))
		case ValueBool:
			if v.Bool {
				e.uint8(1)
			} else {
				e.uint8(0)
			}
		case ValueString:
			e.uint16(uint16(len(v.Str)))
			e.bytes([]byte(v.Str))
		}
	}
	e.fillUint32(at, uint32(len(e.b)-start))
}

func decodeEvent(d *decoder) (Event, error) {
	n, err := d.uint32()
	if err != nil {
		return Event{}, err
	}
	body, err := d.take(int(n))
	if err != nil {
		return Event{}, err
	}
	sub := decoder{b: body}
	ts, err := sub.uint64()
	if err != nil {
		return Event{}, err
	}
	actionID, err := sub.uint32()
	if err != nil {
		return Event{}, err
	}
	count, err := sub.uint16()
	if err != nil {
		return Event{}, err
	}
	ev := Event{Timestamp: int64(ts), ActionID: actionID}
	if count > 0 {
		ev.props = make(map[uint32]Value, count)
	}
	for i := 0; i < int(count); i++ {
		id, err := sub.uint32()
		if err != nil {
			return Event{}, err
		}
		kind, err := sub.uint8()
		if err != nil {
			return Event{}, err
		}
		var v Value
		v.Kind = ValueKind(kind)
		switch v.Kind {
		case ValueInt:
			u, err := sub.uint64()
			if err != nil {
				return Event{}, err
			}
			v.Int = int64(u)
		case ValueFloat:
			u, err := sub.uint64()
			if err != nil {
				return Event{}, err
			}
			v.Float = math.Float64frombits(u)
		case ValueBool:
			b, err := sub.uint8()
			if err != nil {
				return Event{}, err
			}
			v.Bool = b != 0
		case ValueString:
			sn, err := sub.uint16()
			if err != nil {
				return Event{}, err
			}
			p, err := sub.take(int(sn))
			if err != nil {
				return Event{}, err
			}
			v.Str = string(p)
		default:
			return Event{}, corruptf("unknown value kind %d for property %d", kind, id)
		}
		ev.props[id] = v
	}
	if sub.remaining() != 0 {
		return Event{}, corruptf("%d trailing bytes in event record", sub.remaining())
	}
	return ev, nil
}
