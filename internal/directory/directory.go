// Package directory wraps the caller-supplied name-to-address mapping
// (the "externs" of the external interface) that the emitter consults
// to resolve Variable and Function nodes.
package directory

// Directory resolves identifier names to addresses. Variables resolve
// to the address of the backing int; functions resolve to an entry
// point. Ingestion is last-writer-wins: if the same name is supplied
// twice, the later entry replaces the earlier one.
type Directory struct {
	addrs map[string]uint64
}

// New builds a Directory from a name-to-address mapping, such as a Go
// map built from resolved variable/function addresses. Callers
// constructing externs programmatically (e.g. by walking an ordered
// list where duplicates must keep last-writer-wins semantics) should
// use Put in insertion order instead.
func New(externs map[string]uint64) *Directory {
	d := &Directory{addrs: make(map[string]uint64, len(externs))}
	for name, addr := range externs {
		d.addrs[name] = addr
	}
	return d
}

// Empty returns a Directory with no entries.
func Empty() *Directory {
	return &Directory{addrs: make(map[string]uint64)}
}

// Put ingests a single (name, address) pair, overwriting any existing
// entry for the same name.
func (d *Directory) Put(name string, addr uint64) {
	d.addrs[name] = addr
}

// Lookup resolves name to its address. ok is false if name was never
// ingested.
func (d *Directory) Lookup(name string) (addr uint64, ok bool) {
	addr, ok = d.addrs[name]
	return addr, ok
}

// Len reports the number of distinct names currently held.
func (d *Directory) Len() int { return len(d.addrs) }
