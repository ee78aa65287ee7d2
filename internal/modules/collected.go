package modules

// PackageInfo locates one discovered module file.
type PackageInfo struct {
	Key      Key
	FilePath string
	Version  string
}

// LatestEntry is the parsed record of the highest-ranked version of a package
// on one architecture.
type LatestEntry struct {
	Record       *Record
	CreationDate string
	Installer    string
}

// PackageIndex is an insertion-ordered set of PackageInfo for one
// architecture.
type PackageIndex struct {
	keys  []Key
	infos map[Key]PackageInfo
}

// NewPackageIndex returns an empty index.
func NewPackageIndex() *PackageIndex {
	return &PackageIndex{infos: make(map[Key]PackageInfo)}
}

// Add stores info unless its key is already present. It reports whether the
// info was added.
func (p *PackageIndex) Add(info PackageInfo) bool {
	if _, ok := p.infos[info.Key]; ok {
		return false
	}
	p.keys = append(p.keys, info.Key)
	p.infos[info.Key] = info
	return true
}

// Get returns the info stored under k.
func (p *PackageIndex) Get(k Key) (PackageInfo, bool) {
	info, ok := p.infos[k]
	return info, ok
}

// Keys returns the keys in insertion order.
func (p *PackageIndex) Keys() []Key {
	out := make([]Key, len(p.keys))
	copy(out, p.keys)
	return out
}

// Versions returns the infos of one package in insertion order, which is
// newest first for collected data.
func (p *PackageIndex) Versions(pk PackageKey) []PackageInfo {
	var out []PackageInfo
	for _, k := range p.keys {
		if k.PackageKey() == pk {
			out = append(out, p.infos[k])
		}
	}
	return out
}

// Len returns the number of entries.
func (p *PackageIndex) Len() int {
	return len(p.keys)
}

// LatestIndex maps each package to its per-architecture latest entry,
// preserving the order in which packages were first seen.
type LatestIndex struct {
	keys    []PackageKey
	entries map[PackageKey]map[string]*LatestEntry
}

// NewLatestIndex returns an empty index.
func NewLatestIndex() *LatestIndex {
	return &LatestIndex{entries: make(map[PackageKey]map[string]*LatestEntry)}
}

// Set stores entry for (pk, arch) unless that slot is already populated. The
// first write wins; Set reports whether entry was stored.
func (l *LatestIndex) Set(pk PackageKey, arch string, entry *LatestEntry) bool {
	slots, ok := l.entries[pk]
	if !ok {
		slots = make(map[string]*LatestEntry)
		l.entries[pk] = slots
		l.keys = append(l.keys, pk)
	}
	if _, taken := slots[arch]; taken {
		return false
	}
	slots[arch] = entry
	return true
}

// Has reports whether (pk, arch) is populated.
func (l *LatestIndex) Has(pk PackageKey, arch string) bool {
	_, ok := l.entries[pk][arch]
	return ok
}

// Get returns the entry for (pk, arch).
func (l *LatestIndex) Get(pk PackageKey, arch string) (*LatestEntry, bool) {
	e, ok := l.entries[pk][arch]
	return e, ok
}

// Arches returns the architecture slots of pk. The map must not be modified.
func (l *LatestIndex) Arches(pk PackageKey) map[string]*LatestEntry {
	return l.entries[pk]
}

// Keys returns the package keys in insertion order.
func (l *LatestIndex) Keys() []PackageKey {
	out := make([]PackageKey, len(l.keys))
	copy(out, l.keys)
	return out
}

// Len returns the number of packages.
func (l *LatestIndex) Len() int {
	return len(l.keys)
}

// Collected is the snapshot produced by a collection run.
type Collected struct {
	// Architectures lists architecture names in configuration order.
	Architectures []string

	// PackageInfos holds every discovered file per architecture.
	PackageInfos map[string]*PackageIndex

	// Latest holds the latest parsed version of each package per
	// architecture.
	Latest *LatestIndex
}

// NewCollected returns an empty snapshot for the given architectures.
func NewCollected(arches []string) *Collected {
	c := &Collected{
		Architectures: append([]string(nil), arches...),
		PackageInfos:  make(map[string]*PackageIndex, len(arches)),
		Latest:        NewLatestIndex(),
	}
	for _, a := range arches {
		c.PackageInfos[a] = NewPackageIndex()
	}
	return c
}

// Index returns the package index of arch, creating it if needed.
func (c *Collected) Index(arch string) *PackageIndex {
	idx, ok := c.PackageInfos[arch]
	if !ok {
		idx = NewPackageIndex()
		c.PackageInfos[arch] = idx
		c.Architectures = append(c.Architectures, arch)
	}
	return idx
}

// Empty reports whether no package was successfully parsed.
func (c *Collected) Empty() bool {
	return c == nil || c.Latest == nil || c.Latest.Len() == 0
}

// PackageRef maps each package name to its primary category, preserving the
// order in which packages were assigned.
type PackageRef struct {
	order []string
	cats  map[string]string
}

// NewPackageRef returns an empty mapping.
func NewPackageRef() *PackageRef {
	return &PackageRef{cats: make(map[string]string)}
}

// Set assigns category to pkg.
func (r *PackageRef) Set(pkg, category string) {
	if _, ok := r.cats[pkg]; !ok {
		r.order = append(r.order, pkg)
	}
	r.cats[pkg] = category
}

// Get returns the category assigned to pkg.
func (r *PackageRef) Get(pkg string) (string, bool) {
	c, ok := r.cats[pkg]
	return c, ok
}

// Packages returns the package names in assignment order.
func (r *PackageRef) Packages() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of packages.
func (r *PackageRef) Len() int {
	return len(r.order)
}
