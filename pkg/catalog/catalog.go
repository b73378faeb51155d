package catalog

import "sort"

var byKey = func() map[string]*Package {
	m := make(map[string]*Package, len(packages))
	for i := range packages {
		m[packages[i].Key] = &packages[i]
	}
	return m
}()

// All returns every package in table order.
func All() []*Package {
	all := make([]*Package, len(packages))
	for i := range packages {
		all[i] = &packages[i]
	}
	return all
}

// Lookup returns the package with key.
func Lookup(key string) (*Package, bool) {
	p, ok := byKey[key]
	return p, ok
}

// Keys returns every package key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InCategory returns the packages of c sorted by label.
func InCategory(c Category) []*Package {
	var out []*Package
	for i := range packages {
		if packages[i].Category == c {
			out = append(out, &packages[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}
