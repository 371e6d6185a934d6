package domain

// Predicate is one active column filter. The JSON shape is what the table
// widget reports and what the snapshot store keeps.
type Predicate struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// FilterSet holds at most one predicate per field, in insertion order.
type FilterSet []Predicate

// Set replaces the predicate for p.ID in place, or appends it.
func (fs FilterSet) Set(p Predicate) FilterSet {
	for i := range fs {
		if fs[i].ID == p.ID {
			out := fs.Clone()
			out[i] = p
			return out
		}
	}
	return append(fs.Clone(), p)
}

func (fs FilterSet) Remove(id string) FilterSet {
	out := make(FilterSet, 0, len(fs))
	for _, p := range fs {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func (fs FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(fs))
	copy(out, fs)
	return out
}

// Equal compares as sets of (id, value) pairs.
func (fs FilterSet) Equal(other FilterSet) bool {
	if len(fs) != len(other) {
		return false
	}
	want := make(map[Predicate]int, len(fs))
	for _, p := range fs {
		want[p]++
	}
	for _, p := range other {
		if want[p] == 0 {
			return false
		}
		want[p]--
	}
	return true
}

// Normalize collapses duplicate ids (the later value wins, at the earlier
// position).
func Normalize(ps []Predicate) FilterSet {
	var fs FilterSet
	for _, p := range ps {
		if p.ID == "" {
			continue
		}
		fs = fs.Set(p)
	}
	if fs == nil {
		fs = FilterSet{}
	}
	return fs
}

// SyncState is the synchronizer lifecycle. It moves from Uninitialized to
// Reconciled once and never back.
type SyncState int

const (
	Uninitialized SyncState = iota
	Reconciled
)

func (s SyncState) String() string {
	if s == Reconciled {
		return "reconciled"
	}
	return "uninitialized"
}
