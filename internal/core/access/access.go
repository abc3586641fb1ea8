package access

// Access declares read and write intent over a dense id space. The same type
// is used at two granularities: component ids for the coarse declaration and
// archetype-component ids (storage locations) for the precise one.
//
// Write access implies read access: AddWrite records the id in both sets.
// ReadAll/WriteAll are universal markers; they are compatible only with a
// completely empty declaration, in either direction.
type Access struct {
	reads    bitSet
	writes   bitSet
	readAll  bool
	writeAll bool
}

func (a *Access) AddRead(id int) {
	a.reads.insert(id)
}

func (a *Access) AddWrite(id int) {
	a.reads.insert(id)
	a.writes.insert(id)
}

// MarkReadAll declares read access to everything, present and future.
func (a *Access) MarkReadAll() { a.readAll = true }

// MarkWriteAll declares write access to everything, present and future.
func (a *Access) MarkWriteAll() {
	a.readAll = true
	a.writeAll = true
}

func (a *Access) HasRead(id int) bool  { return a.readAll || a.reads.contains(id) }
func (a *Access) HasWrite(id int) bool { return a.writeAll || a.writes.contains(id) }
func (a *Access) ReadsAll() bool       { return a.readAll }
func (a *Access) WritesAll() bool      { return a.writeAll }

// IsEmpty reports whether nothing at all has been declared.
func (a *Access) IsEmpty() bool {
	return !a.readAll && !a.writeAll && a.reads.isEmpty() && a.writes.isEmpty()
}

// Compatible reports whether a and other may be held concurrently:
// no id is written by one side and touched by the other, and universal
// markers only ever pair with an empty declaration.
func (a *Access) Compatible(other *Access) bool {
	if a.readAll || a.writeAll {
		return other.IsEmpty()
	}
	if other.readAll || other.writeAll {
		return a.IsEmpty()
	}
	return !a.writes.intersects(&other.reads) && !other.writes.intersects(&a.reads)
}

// Conflicts returns the ids where one side writes and the other reads or
// writes. Universal-marker conflicts involve every id, so no list is
// returned for them; callers detect that case via Compatible.
func (a *Access) Conflicts(other *Access) []int {
	ids := a.writes.intersection(&other.reads)
	for _, id := range other.writes.intersection(&a.reads) {
		if !containsID(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Extend merges other's declaration into a.
func (a *Access) Extend(other *Access) {
	a.reads.unionWith(&other.reads)
	a.writes.unionWith(&other.writes)
	a.readAll = a.readAll || other.readAll
	a.writeAll = a.writeAll || other.writeAll
}

func (a *Access) Clone() *Access {
	return &Access{
		reads:    a.reads.clone(),
		writes:   a.writes.clone(),
		readAll:  a.readAll,
		writeAll: a.writeAll,
	}
}

// Reads returns every id declared for reading, in ascending order.
func (a *Access) Reads() []int { return a.reads.ids() }

// Writes returns every id declared for writing, in ascending order.
func (a *Access) Writes() []int { return a.writes.ids() }

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
