package sky

import (
	"fmt"
)

// Registry is an append-only name<->id table, used for both actions and
// properties. Ids are dense integers assigned from 1 so events can store
// compact numeric keys instead of repeating strings; an id is never
// reused even if its name is conceptually retired, keeping historical
// events interpretable.
type Registry struct {
	file  string
	fsync bool

	entries []registryEntry
	byName  map[string]uint32
	byID    map[uint32]string
	nextID  uint32
}

type registryEntry struct {
	id   uint32
	name string
}

func newRegistry(file string, fsync bool) *Registry {
	return &Registry{
		file:   file,
		fsync:  fsync,
		byName: make(map[string]uint32),
		byID:   make(map[uint32]string),
		nextID: 1,
	}
}

// Registry file wire format: count(4) then count x (id(4), nameLen(2),
// name bytes, not null-terminated).
func (r *Registry) encode() []byte {
	var e encoder
	e.uint32(uint32(len(r.entries)))
	for _, ent := range r.entries {
		e.uint32(ent.id)
		e.uint16(uint16(len(ent.name)))
		e.bytes([]byte(ent.name))
	}
	return e.b
}

// load replaces the in-memory table with the file's contents. An absent
// file leaves the registry empty. Ids must be strictly increasing;
// anything else is corruption.
func (r *Registry) load() error {
	data, err := readFileIfExists(r.file)
	if err != nil {
		return err
	}
	r.entries = nil
	r.byName = make(map[string]uint32)
	r.byID = make(map[uint32]string)
	r.nextID = 1
	if data == nil {
		return nil
	}

	d := decoder{b: data}
	count, err := d.uint32()
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		id, err := d.uint32()
		if err != nil {
			return err
		}
		n, err := d.uint16()
		if err != nil {
			return err
		}
		p, err := d.take(int(n))
		if err != nil {
			return err
		}
		if id < r.nextID {
			return corruptf("registry %s: id %d not monotonic", r.file, id)
		}
		name := string(p)
		r.entries = append(r.entries, registryEntry{id: id, name: name})
		r.byName[name] = id
		r.byID[id] = name
		r.nextID = id + 1
	}
	if d.remaining() != 0 {
		return corruptf("registry %s: %d trailing bytes", r.file, d.remaining())
	}
	return nil
}

func (r *Registry) save() error {
	return writeFileAtomic(r.file, r.encode(), r.fsync)
}

// GetOrCreate returns the stable id for name, allocating the next id and
// rewriting the registry file when the name is new. An id is handed out
// only once its entry is on disk; a failed save leaves the table as it
// was so a retry allocates the same id again.
func (r *Registry) GetOrCreate(name string) (uint32, error) {
	if id, ok := r.byName[name]; ok {
		return id, nil
	}
	if len(name) > maxWireLen {
		return 0, fmt.Errorf("%w: name is %d bytes", ErrTooLarge, len(name))
	}
	id := r.nextID
	r.nextID++
	r.entries = append(r.entries, registryEntry{id: id, name: name})
	r.byName[name] = id
	r.byID[id] = name
	if err := r.save(); err != nil {
		r.entries = r.entries[:len(r.entries)-1]
		delete(r.byName, name)
		delete(r.byID, id)
		r.nextID = id
		return 0, err
	}
	return id, nil
}

// Resolve returns the name registered under id.
func (r *Registry) Resolve(id uint32) (string, error) {
	name, ok := r.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownReference, id)
	}
	return name, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id uint32) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.entries)
}
