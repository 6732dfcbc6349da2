package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRowsCoversEveryRowOnce(t *testing.T) {
	for _, height := range []int{0, 1, 15, 16, 17, 100, 1000} {
		counts := make([]int32, height)
		RowsN(height, 4, func(start, end int) {
			for y := start; y < end; y++ {
				atomic.AddInt32(&counts[y], 1)
			}
		})
		for y, c := range counts {
			if c != 1 {
				t.Errorf("height %d: row %d visited %d times", height, y, c)
			}
		}
	}
}

func TestRowsSingleWorkerRunsInline(t *testing.T) {
	calls := 0
	RowsN(500, 1, func(start, end int) {
		calls++
		if start != 0 || end != 500 {
			t.Errorf("Expected chunk [0,500), got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestRowsDefaultWorkers(t *testing.T) {
	var total int64
	Rows(257, func(start, end int) {
		atomic.AddInt64(&total, int64(end-start))
	})
	if total != 257 {
		t.Errorf("Expected 257 rows, got %d", total)
	}
}
