package access

import "iter"

// An Entry is a record together with the number of consecutive times it was
// observed.
type Entry struct {
	Record Record
	Count  int
}

// Log is an ordered list of register accesses where runs of identical reads
// are collapsed into one entry.
//
// Only reads are run-length encoded. Writes always get their own entry, even
// when identical to the previous one, so that matchers counting writes stay
// exact.
//
// A Log is not safe for concurrent use. Owners such as regmock.State guard it
// with their own lock and hand out copies.
type Log struct {
	entries []Entry
}

// Push appends a record. A read that is field-identical to the last entry only
// increments that entry's count.
func (l *Log) Push(record Record) {
	if n := len(l.entries); n > 0 && record.IsRead() {
		last := &l.entries[n-1]
		if last.Record.IsRead() && last.Record.Equal(record) {
			last.Count++
			return
		}
	}

	l.entries = append(l.entries, Entry{Record: record, Count: 1})
}

// IsBeingPolled reports whether the last entry is a read of addr that was
// repeated more than threshold times.
func (l Log) IsBeingPolled(addr Addr, threshold int) bool {
	n := len(l.entries)
	if n == 0 {
		return false
	}

	last := l.entries[n-1]

	return last.Record.IsRead() &&
		last.Record.Targets(addr) &&
		last.Count > threshold
}

// Compressed yields each entry's record once, hiding how often a read was
// repeated. Use it when only the order of distinct accesses matters.
func (l Log) Compressed() iter.Seq[Record] {
	entries := l.entries

	return func(yield func(Record) bool) {
		for _, e := range entries {
			if !yield(e.Record) {
				return
			}
		}
	}
}

// Full yields every access in chronological order, expanding each entry
// Count times.
func (l Log) Full() iter.Seq[Record] {
	entries := l.entries

	return func(yield func(Record) bool) {
		for _, e := range entries {
			for range e.Count {
				if !yield(e.Record) {
					return
				}
			}
		}
	}
}

// Len returns the number of accesses in the full view.
func (l Log) Len() int {
	total := 0
	for _, e := range l.entries {
		total += e.Count
	}

	return total
}

// NumGroups returns the number of entries, which is the length of the
// compressed view.
func (l Log) NumGroups() int {
	return len(l.entries)
}

// Entries returns a copy of the entries.
func (l Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = Entry{Record: e.Record.Clone(), Count: e.Count}
	}

	return out
}

// Clone returns an independent copy of the log.
func (l Log) Clone() Log {
	return Log{entries: l.Entries()}
}

// Reset drops every entry.
func (l *Log) Reset() {
	l.entries = nil
}
