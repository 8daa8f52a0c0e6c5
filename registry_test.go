package sky

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return newRegistry(filepath.Join(t.TempDir(), "actions"), false)
}

func TestRegistryAssignsMonotonicIDs(t *testing.T) {
	r := newTestRegistry(t)
	login, err := r.GetOrCreate("login")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if login != 1 {
		t.Fatalf("want first id 1, got %d", login)
	}
	logout, err := r.GetOrCreate("logout")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if logout != 2 {
		t.Fatalf("want second id 2, got %d", logout)
	}
	again, err := r.GetOrCreate("login")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if again != login {
		t.Fatalf("id not stable: %d vs %d", again, login)
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	names := []string{"login", "logout", "purchase"}
	for _, name := range names {
		if _, err := r.GetOrCreate(name); err != nil {
			t.Fatalf("get or create %q: %v", name, err)
		}
	}

	reloaded := newRegistry(r.file, false)
	if err := reloaded.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.Len() != len(names) {
		t.Fatalf("want %d entries, got %d", len(names), reloaded.Len())
	}
	for i, name := range names {
		got, err := reloaded.Resolve(uint32(i + 1))
		if err != nil {
			t.Fatalf("resolve %d: %v", i+1, err)
		}
		if got != name {
			t.Fatalf("id %d: want %q, got %q", i+1, name, got)
		}
	}
	// Next allocation continues where the original left off.
	id, err := reloaded.GetOrCreate("signup")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if id != uint32(len(names)+1) {
		t.Fatalf("want next id %d, got %d", len(names)+1, id)
	}
}

func TestRegistryLoadMissingFile(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("want empty registry, got %d entries", r.Len())
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Resolve(42); !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("want ErrUnknownReference, got %v", err)
	}
}

func TestRegistryLoadTruncated(t *testing.T) {
	r := newTestRegistry(t)
	var e encoder
	e.uint32(2)
	e.uint32(1)
	e.uint16(5)
	e.bytes([]byte("login"))
	// second record missing
	if err := os.WriteFile(r.file, e.b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}
}

func TestRegistryGetOrCreateRejectsOversizeName(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.GetOrCreate(strings.Repeat("x", maxWireLen+1))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("rejected name was recorded: %d entries", r.Len())
	}

	// The rejection must not burn an id or poison the file.
	id, err := r.GetOrCreate("login")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if id != 1 {
		t.Fatalf("want id 1 after rejection, got %d", id)
	}
	reloaded := newRegistry(r.file, false)
	if err := reloaded.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("want 1 entry on disk, got %d", reloaded.Len())
	}
}

func TestRegistryGetOrCreateRollsBackOnSaveError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	r := newRegistry(filepath.Join(dir, "actions"), false)
	if _, err := r.GetOrCreate("login"); err == nil {
		t.Fatal("want save error for unwritable registry file")
	}
	if r.Len() != 0 || r.Has(1) {
		t.Fatal("failed save left the entry in memory")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	id, err := r.GetOrCreate("login")
	if err != nil {
		t.Fatalf("get or create after mkdir: %v", err)
	}
	if id != 1 {
		t.Fatalf("want id 1 on retry, got %d", id)
	}
	reloaded := newRegistry(r.file, false)
	if err := reloaded.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if name, err := reloaded.Resolve(id); err != nil || name != "login" {
		t.Fatalf("want persisted login, got %q, %v", name, err)
	}
}

func TestRegistryLoadNonMonotonic(t *testing.T) {
	r := newTestRegistry(t)
	var e encoder
	e.uint32(2)
	e.uint32(2)
	e.uint16(1)
	e.bytes([]byte("a"))
	e.uint32(1)
	e.uint16(1)
	e.bytes([]byte("b"))
	if err := os.WriteFile(r.file, e.b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}
}
