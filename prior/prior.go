// Package prior stores prior-knowledge constraints for structure
// learning: two disjoint sets of forbidden and required directed edges
// over a sorted label set.
package prior

import (
	"fmt"
	"sort"
)

// Pair is an ordered (from, to) vertex-index pair.
type Pair struct {
	X, Y int
}

// Knowledge holds insertion-ordered forbidden/required edge sets,
// resolved against a sorted label set. Knowledge.labels defines the
// index space every Pair is expressed in.
type Knowledge struct {
	labels    []string
	index     map[string]int
	forbidden []Pair
	required  []Pair
	isForb    map[Pair]bool
	isReq     map[Pair]bool
}

// New builds a Knowledge store: labels are sorted, forbidden/required
// label pairs are resolved to indices (a reference to an unknown label
// is fatal), and it is fatal for a pair to appear in both sets.
func New(labels []string, forbidden, required [][2]string) (*Knowledge, error) {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	index := make(map[string]int, len(sorted))
	for i, l := range sorted {
		index[l] = i
	}

	k := &Knowledge{
		labels: sorted,
		index:  index,
		isForb: make(map[Pair]bool),
		isReq:  make(map[Pair]bool),
	}

	for _, fp := range forbidden {
		x, y, err := k.resolve(fp[0], fp[1])
		if err != nil {
			return nil, err
		}
		if k.isReq[Pair{x, y}] {
			return nil, fmt.Errorf("prior: %s->%s is both forbidden and required", fp[0], fp[1])
		}
		k.addForbidden(x, y)
	}
	for _, rp := range required {
		x, y, err := k.resolve(rp[0], rp[1])
		if err != nil {
			return nil, err
		}
		if k.isForb[Pair{x, y}] {
			return nil, fmt.Errorf("prior: %s->%s is both forbidden and required", rp[0], rp[1])
		}
		k.addRequired(x, y)
	}
	return k, nil
}

func (k *Knowledge) resolve(from, to string) (int, int, error) {
	x, ok := k.index[from]
	if !ok {
		return 0, 0, fmt.Errorf("prior: unknown label %q", from)
	}
	y, ok := k.index[to]
	if !ok {
		return 0, 0, fmt.Errorf("prior: unknown label %q", to)
	}
	return x, y, nil
}

func (k *Knowledge) addForbidden(x, y int) {
	p := Pair{x, y}
	if !k.isForb[p] {
		k.isForb[p] = true
		k.forbidden = append(k.forbidden, p)
	}
}

func (k *Knowledge) addRequired(x, y int) {
	p := Pair{x, y}
	if !k.isReq[p] {
		k.isReq[p] = true
		k.required = append(k.required, p)
	}
}

// AddForbidden marks x->y forbidden. Fails if x->y is already required
// (F and R must stay disjoint).
func (k *Knowledge) AddForbidden(x, y int) error {
	if k.isReq[Pair{x, y}] {
		return fmt.Errorf("prior: cannot forbid %d->%d, already required", x, y)
	}
	k.addForbidden(x, y)
	return nil
}

// AddRequired marks x->y required. Fails if x->y is already forbidden.
func (k *Knowledge) AddRequired(x, y int) error {
	if k.isForb[Pair{x, y}] {
		return fmt.Errorf("prior: cannot require %d->%d, already forbidden", x, y)
	}
	k.addRequired(x, y)
	return nil
}

// IsForbidden reports whether x->y is forbidden.
func (k *Knowledge) IsForbidden(x, y int) bool { return k.isForb[Pair{x, y}] }

// IsRequired reports whether x->y is required.
func (k *Knowledge) IsRequired(x, y int) bool { return k.isReq[Pair{x, y}] }

// Forbidden returns the forbidden pairs in insertion order.
func (k *Knowledge) Forbidden() []Pair { return append([]Pair(nil), k.forbidden...) }

// Required returns the required pairs in insertion order.
func (k *Knowledge) Required() []Pair { return append([]Pair(nil), k.required...) }

// Labels returns the sorted label set this store resolves indices against.
func (k *Knowledge) Labels() []string { return append([]string(nil), k.labels...) }

// IndexOf resolves a label to its index.
func (k *Knowledge) IndexOf(label string) (int, bool) {
	i, ok := k.index[label]
	return i, ok
}
