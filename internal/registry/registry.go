// Package registry maps widget type names to their default size and props.
package registry

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Default is what a new widget of a given type starts with.
type Default[P any] struct {
	W     int
	H     int
	Props P
}

// Registry resolves the defaults for a widget type. A miss means the type is
// unknown.
type Registry[P any] interface {
	ResolveDefault(typ string) (Default[P], bool)
}

// Static is an in-memory registry that remembers registration order.
type Static[P any] struct {
	defaults map[string]Default[P]
	order    []string
}

// NewStatic creates an empty registry.
func NewStatic[P any]() *Static[P] {
	return &Static[P]{defaults: make(map[string]Default[P])}
}

// Register adds or replaces a widget type. Sizes below 1 are raised to 1.
func (s *Static[P]) Register(typ string, d Default[P]) {
	d.W = max(d.W, 1)
	d.H = max(d.H, 1)
	if _, ok := s.defaults[typ]; !ok {
		s.order = append(s.order, typ)
	}
	s.defaults[typ] = d
}

// ResolveDefault implements Registry.
func (s *Static[P]) ResolveDefault(typ string) (Default[P], bool) {
	d, ok := s.defaults[typ]
	return d, ok
}

// Types returns the registered type names in registration order.
func (s *Static[P]) Types() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Suggest returns the registered type closest to typ by edit distance, or ""
// when nothing is close enough to be a plausible typo.
func (s *Static[P]) Suggest(typ string) string {
	in := strings.ToLower(strings.TrimSpace(typ))
	if in == "" {
		return ""
	}

	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, name := range s.order {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, in) {
			cands = append(cands, candidate{name: name, dist: 0})
			continue
		}
		dist := levenshtein.ComputeDistance(in, lower)
		if dist > distanceLimit(len(lower)) {
			continue
		}
		cands = append(cands, candidate{name: name, dist: dist})
	}
	if len(cands) == 0 {
		return ""
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].dist < cands[j].dist
	})
	return cands[0].name
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
