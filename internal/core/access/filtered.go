package access

// FilteredAccess scopes an Access declaration with the filter terms that
// produced it. Two declarations whose filters can never match the same
// entity are compatible even when their raw access overlaps: a query
// restricted to entities without X cannot race a query restricted to
// entities with X.
type FilteredAccess struct {
	Access  Access
	with    bitSet
	without bitSet
}

func (f *FilteredAccess) AddWith(id int) {
	f.with.insert(id)
}

func (f *FilteredAccess) AddWithout(id int) {
	f.without.insert(id)
}

// Compatible reports whether f and other may coexist on one system.
func (f *FilteredAccess) Compatible(other *FilteredAccess) bool {
	if f.Access.Compatible(&other.Access) {
		return true
	}
	return f.with.intersects(&other.without) || f.without.intersects(&other.with)
}

// Conflicts returns the component ids behind an incompatibility.
func (f *FilteredAccess) Conflicts(other *FilteredAccess) []int {
	if f.Compatible(other) {
		return nil
	}
	return f.Access.Conflicts(&other.Access)
}

func (f *FilteredAccess) Clone() *FilteredAccess {
	return &FilteredAccess{
		Access:  *f.Access.Clone(),
		with:    f.with.clone(),
		without: f.without.clone(),
	}
}

// FilteredAccessSet accumulates every filtered declaration registered on one
// system, plus their combined unfiltered union for fast rejection.
type FilteredAccessSet struct {
	combined Access
	filtered []*FilteredAccess
}

// ConflictsWith returns the component ids on which candidate collides with
// any previously added declaration. Empty means compatible.
func (s *FilteredAccessSet) ConflictsWith(candidate *FilteredAccess) []int {
	if s.combined.Compatible(&candidate.Access) {
		return nil
	}
	var ids []int
	for _, f := range s.filtered {
		for _, id := range f.Conflicts(candidate) {
			if !containsID(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	// A universal marker collision carries no per-id detail; report the
	// candidate's own reads so the error still names something concrete.
	if ids == nil && (s.combined.ReadsAll() || s.combined.WritesAll() ||
		candidate.Access.ReadsAll() || candidate.Access.WritesAll()) {
		ids = candidate.Access.Reads()
	}
	return ids
}

// HasUniversal reports whether any added declaration used a universal marker.
func (s *FilteredAccessSet) HasUniversal() bool {
	return s.combined.ReadsAll() || s.combined.WritesAll()
}

// IsEmpty reports whether nothing has been added yet.
func (s *FilteredAccessSet) IsEmpty() bool {
	return len(s.filtered) == 0 && s.combined.IsEmpty()
}

func (s *FilteredAccessSet) Add(f *FilteredAccess) {
	s.combined.Extend(&f.Access)
	s.filtered = append(s.filtered, f)
}

// Extend merges every declaration from other into s.
func (s *FilteredAccessSet) Extend(other *FilteredAccessSet) {
	s.combined.Extend(&other.combined)
	for _, f := range other.filtered {
		s.filtered = append(s.filtered, f.Clone())
	}
}

// Combined returns the union of every added declaration's raw access.
func (s *FilteredAccessSet) Combined() *Access { return &s.combined }

func (s *FilteredAccessSet) Clone() *FilteredAccessSet {
	clone := &FilteredAccessSet{combined: *s.combined.Clone()}
	clone.filtered = make([]*FilteredAccess, len(s.filtered))
	for i, f := range s.filtered {
		clone.filtered[i] = f.Clone()
	}
	return clone
}
