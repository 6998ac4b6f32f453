package stats

// CategoryTable maps raw weapon or vehicle identifiers onto coarser reporting
// buckets. Tables are data supplied by the caller, not engine logic.
type CategoryTable map[string]string

// MapCategories folds the identifiers of src into their mapped categories,
// summing counts onto the category bucket. When the same identifier appears
// in several tables, later tables take precedence. Identifiers absent from
// every table pass through unchanged unless dropUnmapped is set, in which
// case they are omitted. The source table is never modified.
func MapCategories(src *FreqTable, dropUnmapped bool, tables ...CategoryTable) *FreqTable {
	if len(tables) == 0 {
		return src.Clone()
	}

	lookup := make(map[string]string)
	for _, table := range tables {
		for raw, category := range table {
			lookup[raw] = category
		}
	}

	out := NewFreqTable()
	for _, entry := range src.Sorted() {
		key := entry.Key
		if mapped, ok := lookup[key]; ok {
			key = mapped
		} else if dropUnmapped {
			continue
		}
		out.AddN(key, entry.Count)
	}
	return out
}
