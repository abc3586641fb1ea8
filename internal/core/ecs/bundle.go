package ecs

// BundleID is a dense identifier for a registered bundle.
type BundleID int

// Bundle is a named component set, typically loaded from spawn-table data.
type Bundle struct {
	ID         BundleID
	Name       string
	Components []ComponentID
}

// Bundles tracks every bundle registered with a world.
type Bundles struct {
	byName map[string]BundleID
	list   []Bundle
}

func newBundles() *Bundles {
	return &Bundles{byName: make(map[string]BundleID, 8)}
}

// Register adds a named bundle, replacing any previous definition under the
// same name.
func (b *Bundles) Register(name string, comps []ComponentID) BundleID {
	if id, ok := b.byName[name]; ok {
		b.list[id].Components = append([]ComponentID(nil), comps...)
		return id
	}
	id := BundleID(len(b.list))
	b.byName[name] = id
	b.list = append(b.list, Bundle{
		ID:         id,
		Name:       name,
		Components: append([]ComponentID(nil), comps...),
	})
	return id
}

func (b *Bundles) Get(name string) (Bundle, bool) {
	id, ok := b.byName[name]
	if !ok {
		return Bundle{}, false
	}
	return b.list[id], true
}

func (b *Bundles) Len() int { return len(b.list) }

// BundlesView is the read-only window handed to systems that declare
// structural metadata access.
type BundlesView struct {
	bundles *Bundles
}

func (v BundlesView) Get(name string) (Bundle, bool) { return v.bundles.Get(name) }
func (v BundlesView) Len() int                       { return v.bundles.Len() }
