package ui

import (
	"sort"
	"strings"

	"procwatch/internal/metrics"
)

// Column identifies a sortable table column.
type Column int

const (
	ColumnPID Column = iota
	ColumnName
	ColumnCPU
	ColumnMemory
)

// SortState is the presenter's sort preference: one (column, direction)
// pair, updated by each sort request. Re-sorting is a display transform
// only; the snapshot's own ordering is never touched.
type SortState struct {
	Column     Column
	Descending bool
	Active     bool
}

// Toggle applies a sort request for col: selecting a new column starts
// ascending, repeating the same column flips the direction.
func (s *SortState) Toggle(col Column) {
	if s.Active && s.Column == col {
		s.Descending = !s.Descending
		return
	}
	s.Column = col
	s.Descending = false
	s.Active = true
}

// SortRecords returns a copy of records ordered per state: numeric compare
// for PID/CPU/Memory, lexicographic (case-insensitive) for Name. The input
// slice is left untouched.
func SortRecords(records []metrics.ProcessRecord, state SortState) []metrics.ProcessRecord {
	out := make([]metrics.ProcessRecord, len(records))
	copy(out, records)
	if !state.Active {
		return out
	}
	less := func(a, b metrics.ProcessRecord) bool {
		switch state.Column {
		case ColumnPID:
			return a.PID < b.PID
		case ColumnName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case ColumnCPU:
			return a.CPUPercent < b.CPUPercent
		case ColumnMemory:
			return a.MemoryBytes < b.MemoryBytes
		default:
			return false
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if state.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
