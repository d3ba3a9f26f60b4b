package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procwatch/internal/metrics"
)

func sampleRecords() []metrics.ProcessRecord {
	return []metrics.ProcessRecord{
		{PID: 30, Name: "bravo", CPUPercent: 12.0, MemoryBytes: 100, Status: "running"},
		{PID: 10, Name: "alpha", CPUPercent: 40.0, MemoryBytes: 300, Status: "sleeping"},
		{PID: 20, Name: "Charlie", CPUPercent: 5.0, MemoryBytes: 200, Status: "running"},
	}
}

func pids(records []metrics.ProcessRecord) []int32 {
	out := make([]int32, len(records))
	for i, r := range records {
		out[i] = r.PID
	}
	return out
}

func TestToggleFlipsDirectionOnSameColumn(t *testing.T) {
	records := sampleRecords()
	var state SortState

	state.Toggle(ColumnCPU)
	asc := SortRecords(records, state)
	assert.Equal(t, []int32{20, 30, 10}, pids(asc))

	state.Toggle(ColumnCPU)
	desc := SortRecords(records, state)
	assert.Equal(t, []int32{10, 30, 20}, pids(desc))

	// Same rows either way, just permuted.
	assert.ElementsMatch(t, pids(asc), pids(desc))
	// The input is never mutated.
	assert.Equal(t, []int32{30, 10, 20}, pids(records))
}

func TestToggleNewColumnStartsAscending(t *testing.T) {
	var state SortState
	state.Toggle(ColumnCPU)
	state.Toggle(ColumnCPU)
	require.True(t, state.Descending)

	state.Toggle(ColumnMemory)
	assert.Equal(t, ColumnMemory, state.Column)
	assert.False(t, state.Descending)
}

func TestSortByNameIsCaseInsensitive(t *testing.T) {
	var state SortState
	state.Toggle(ColumnName)

	got := SortRecords(sampleRecords(), state)
	assert.Equal(t, []int32{10, 30, 20}, pids(got), "alpha, bravo, Charlie")
}

func TestInactiveStateKeepsSnapshotOrder(t *testing.T) {
	got := SortRecords(sampleRecords(), SortState{})
	assert.Equal(t, []int32{30, 10, 20}, pids(got))
}
