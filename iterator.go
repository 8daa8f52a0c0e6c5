package sky

// PathIterator walks every path in an object file in ascending
// (block.minID, path.objectID) order, rebinding a caller-supplied Cursor
// to each path's event stream. Blocks with no paths are skipped
// transparently. The iterator is transient: create one per traversal and
// discard it afterwards.
type PathIterator struct {
	of       *ObjectFile
	blockIdx int
	pathIdx  int
	eof      bool
}

// EOF reports whether every path has been visited.
func (it *PathIterator) EOF() bool {
	return it.eof
}

// Next advances to the next non-empty path and binds c to its event
// stream, returning true. It returns false once no further paths exist
// in any block; c is then at EOF as well.
func (it *PathIterator) Next(c *Cursor) bool {
	for !it.eof {
		if it.blockIdx >= len(it.of.blocks) {
			break
		}
		b := it.of.blocks[it.blockIdx]
		if it.pathIdx >= len(b.paths) {
			it.blockIdx++
			it.pathIdx = 0
			continue
		}
		p := b.paths[it.pathIdx]
		it.pathIdx++
		if p.Len() == 0 {
			continue
		}
		c.bind(p.objectID, p.encodeEvents())
		return true
	}
	it.eof = true
	c.bind(0, nil)
	return false
}
