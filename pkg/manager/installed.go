package manager

import "sort"

// Installed mirrors, per provider, the set of provider-side identifiers that
// are currently installed. It is loaded once at startup and mutated by every
// install and uninstall. It is not safe for concurrent use.
type Installed struct {
	sets map[Method]map[string]struct{}
}

// NewInstalled returns an empty cache.
func NewInstalled() *Installed {
	return &Installed{sets: make(map[Method]map[string]struct{})}
}

// Has reports whether id is installed through m.
func (c *Installed) Has(m Method, id string) bool {
	_, ok := c.sets[m][id]
	return ok
}

// Add marks id as installed through m.
func (c *Installed) Add(m Method, id string) {
	set, ok := c.sets[m]
	if !ok {
		set = make(map[string]struct{})
		c.sets[m] = set
	}
	set[id] = struct{}{}
}

// Remove forgets id for m.
func (c *Installed) Remove(m Method, id string) {
	delete(c.sets[m], id)
}

// Replace swaps the whole set for m, as after a list-installed.
func (c *Installed) Replace(m Method, ids []string) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	c.sets[m] = set
}

// IDs returns the identifiers installed through m, sorted.
func (c *Installed) IDs(m Method) []string {
	ids := make([]string, 0, len(c.sets[m]))
	for id := range c.sets[m] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
