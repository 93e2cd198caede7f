package inventory

import (
	"sort"
	"strings"
)

// Object is a single documented symbol.
type Object struct {
	Name     string // fully qualified name, e.g. "os.path.join"
	Domain   string // e.g. "py"
	Role     string // e.g. "function"
	Priority int
	URI      string // relative to the project base URL, "$" already expanded
	DispName string // display name, equal to Name when not overridden
}

// Key is the "domain:role" pair used in the inventory file.
func (o Object) Key() string {
	return o.Domain + ":" + o.Role
}

// Inventory is the object index of one documentation project.
type Inventory struct {
	Project string
	Version string
	BaseURL string
	Objects []Object

	byName map[string][]int
}

// New creates an inventory and indexes its objects.
func New(project, version, baseURL string, objects []Object) *Inventory {
	inv := &Inventory{Project: project, Version: version, BaseURL: baseURL, Objects: objects}
	inv.index()
	return inv
}

func (inv *Inventory) index() {
	inv.byName = make(map[string][]int, len(inv.Objects))
	for i, o := range inv.Objects {
		inv.byName[o.Name] = append(inv.byName[o.Name], i)
	}
}

// Len returns the number of objects.
func (inv *Inventory) Len() int { return len(inv.Objects) }

// Lookup finds an object by name. When several roles share the name the one
// with the lowest priority value wins.
func (inv *Inventory) Lookup(name string) (Object, bool) {
	idx := inv.byName[name]
	if len(idx) == 0 {
		return Object{}, false
	}
	best := inv.Objects[idx[0]]
	for _, i := range idx[1:] {
		if inv.Objects[i].Priority < best.Priority {
			best = inv.Objects[i]
		}
	}
	return best, true
}

// LookupRole finds an object by name restricted to a "domain:role" key or a
// bare role name.
func (inv *Inventory) LookupRole(role, name string) (Object, bool) {
	for _, i := range inv.byName[name] {
		o := inv.Objects[i]
		if o.Key() == role || o.Role == role {
			return o, true
		}
	}
	return Object{}, false
}

// URL returns the absolute location of an object.
func (inv *Inventory) URL(o Object) string {
	if strings.Contains(o.URI, "://") {
		return o.URI
	}
	return strings.TrimRight(inv.BaseURL, "/") + "/" + strings.TrimLeft(o.URI, "/")
}

// Resolve looks up name and returns its absolute URL.
func (inv *Inventory) Resolve(name string) (string, bool) {
	o, ok := inv.Lookup(name)
	if !ok {
		return "", false
	}
	return inv.URL(o), true
}

// Set holds the inventories of several targets keyed by target name.
type Set map[string]*Inventory

// Names returns the target names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve accepts "target:name" or a bare name. A bare name is searched in
// every inventory in target name order.
func (s Set) Resolve(ref string) (string, bool) {
	if target, name, ok := strings.Cut(ref, ":"); ok {
		if inv, found := s[target]; found {
			return inv.Resolve(name)
		}
	}
	for _, n := range s.Names() {
		if u, ok := s[n].Resolve(ref); ok {
			return u, true
		}
	}
	return "", false
}
