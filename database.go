package sky

// Database is a named root directory holding one subdirectory per object
// type. Constructing one performs no I/O.
type Database struct {
	path string
}

func NewDatabase(path string) *Database {
	return &Database{path: path}
}

// Path returns the database's root directory.
func (db *Database) Path() string {
	return db.path
}

// ObjectFile returns a handle for one object type. The handle is purely
// in-memory until Open is called. A caller may hold several handles for
// the same name, but only one may hold the lock at a time.
func (db *Database) ObjectFile(name string, opts Options) *ObjectFile {
	return newObjectFile(db, name, opts)
}
