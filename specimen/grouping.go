package specimen

import "fmt"

// Grouping is an ordered mapping from a categorical label value to the
// set positions of its members. It is built once per label key and
// reused by every group-keyed computation (ANOVA design matrices,
// per-group disparity, classification folds) instead of re-filtering
// the set at each call site.
//
// Group order is first-occurrence order over the set — deterministic
// for a fixed Set, independent of map iteration.
type Grouping struct {
	key         string
	groups      []string         // first-occurrence order
	members     map[string][]int // group → ascending set positions
	assignments []string         // per-specimen group, set order
}

// GroupBy partitions a Set by one categorical label key.
// Every specimen must carry the key (ErrUnknownLabel otherwise): a
// partial partition would bias any test run on top of it.
func GroupBy(set *Set, key string) (*Grouping, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptySet
	}

	g := &Grouping{
		key:         key,
		members:     make(map[string][]int),
		assignments: make([]string, set.Len()),
	}
	for i, sp := range set.specimens {
		val, ok := sp.Label(key)
		if !ok {
			return nil, fmt.Errorf("specimen %q, key %q: %w", sp.id, key, ErrUnknownLabel)
		}
		if _, seen := g.members[val]; !seen {
			g.groups = append(g.groups, val)
		}
		g.members[val] = append(g.members[val], i)
		g.assignments[i] = val
	}

	return g, nil
}

// Key returns the label key this grouping was built from.
func (g *Grouping) Key() string { return g.key }

// Groups returns the group names in first-occurrence order (copy).
func (g *Grouping) Groups() []string {
	out := make([]string, len(g.groups))
	copy(out, g.groups)

	return out
}

// Members returns the ascending set positions belonging to a group (copy).
// Unknown group names yield an empty slice.
func (g *Grouping) Members(group string) []int {
	m := g.members[group]
	out := make([]int, len(m))
	copy(out, m)

	return out
}

// Assignments returns the per-specimen group value in set order (copy).
func (g *Grouping) Assignments() []string {
	out := make([]string, len(g.assignments))
	copy(out, g.assignments)

	return out
}

// Len reports the number of distinct groups.
func (g *Grouping) Len() int { return len(g.groups) }

// Size reports the member count of a group (0 for unknown names).
func (g *Grouping) Size(group string) int { return len(g.members[group]) }
