package stats

import "sort"

// NoneKey is the sentinel seeded into weapon and cause tables so "most used"
// queries stay defined on players who never got a kill (or never died).
const NoneKey = "None"

// FreqEntry is one key/count pair of a FreqTable.
type FreqEntry struct {
	Key   string
	Count int
}

// FreqTable is an insertion-ordered frequency table. Ties on count are broken
// in favor of the first-inserted key, so Top and Sorted are deterministic
// regardless of map iteration order.
type FreqTable struct {
	counts map[string]int
	order  []string
}

// NewFreqTable returns a table seeded with the given keys at count zero,
// in order.
func NewFreqTable(seed ...string) *FreqTable {
	t := &FreqTable{counts: make(map[string]int, len(seed))}
	for _, k := range seed {
		t.AddN(k, 0)
	}
	return t
}

// Add increments the count for key by one.
func (t *FreqTable) Add(key string) { t.AddN(key, 1) }

// AddN increments the count for key by n, inserting the key if absent.
func (t *FreqTable) AddN(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// Count returns the count for key, zero if absent.
func (t *FreqTable) Count(key string) int { return t.counts[key] }

// Len returns the number of distinct keys, including zero-count seeds.
func (t *FreqTable) Len() int { return len(t.order) }

// Total returns the sum of all counts.
func (t *FreqTable) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Top returns the entry with the highest count. On a tie the first-inserted
// key wins. The zero entry is returned for an empty table.
func (t *FreqTable) Top() FreqEntry {
	best := FreqEntry{}
	found := false
	for _, k := range t.order {
		if !found || t.counts[k] > best.Count {
			best = FreqEntry{Key: k, Count: t.counts[k]}
			found = true
		}
	}
	return best
}

// Sorted returns all entries ordered by descending count, insertion order on
// ties.
func (t *FreqTable) Sorted() []FreqEntry {
	entries := make([]FreqEntry, 0, len(t.order))
	for _, k := range t.order {
		entries = append(entries, FreqEntry{Key: k, Count: t.counts[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Counts returns a copy of the underlying key→count map.
func (t *FreqTable) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the table.
func (t *FreqTable) Clone() *FreqTable {
	out := NewFreqTable()
	for _, k := range t.order {
		out.AddN(k, t.counts[k])
	}
	return out
}

// Merge returns a new table holding the key-wise sum of both operands.
// The receiver's insertion order takes precedence for shared keys.
func (t *FreqTable) Merge(other *FreqTable) *FreqTable {
	out := t.Clone()
	if other != nil {
		for _, k := range other.order {
			out.AddN(k, other.counts[k])
		}
	}
	return out
}
