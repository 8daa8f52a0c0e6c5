package sky

import (
	"path/filepath"
	"testing"
)

func TestNewDatabase(t *testing.T) {
	db := NewDatabase("/etc/sky/data")
	if db.Path() != "/etc/sky/data" {
		t.Fatalf("unexpected path %q", db.Path())
	}
}

func TestObjectFilePathDerivation(t *testing.T) {
	db := NewDatabase("/etc/sky/data")
	of := db.ObjectFile("user", Options{})
	if of.Name() != "user" {
		t.Fatalf("unexpected name %q", of.Name())
	}
	if want := filepath.Join("/etc/sky/data", "user"); of.Path() != want {
		t.Fatalf("want path %q, got %q", want, of.Path())
	}
}
