package tree

import "sort"

// IgnoreSet holds exact, case-sensitive basenames.
type IgnoreSet struct {
	names map[string]struct{}
}

// NewIgnoreSet constructs an IgnoreSet from the provided basenames.
func NewIgnoreSet(names ...string) IgnoreSet {
	set := IgnoreSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		set.names[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is a member of the set.
func (set IgnoreSet) Contains(name string) bool {
	_, exists := set.names[name]
	return exists
}

// Names returns the members in sorted order.
func (set IgnoreSet) Names() []string {
	names := make([]string, 0, len(set.names))
	for name := range set.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultDirectoryIgnores lists directories that are printed but never expanded.
func DefaultDirectoryIgnores() IgnoreSet {
	return NewIgnoreSet(
		"android",
		"node_modules",
		".git",
		".next",
		"out",
		"build",
		"dist",
		".turbo",
		".vercel",
		"__pycache__",
	)
}

// DefaultFileIgnores lists entries that are never printed.
func DefaultFileIgnores() IgnoreSet {
	return NewIgnoreSet(".DS_Store")
}
