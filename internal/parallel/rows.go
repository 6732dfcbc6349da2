// Package parallel splits per-row image work across goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerChunk keeps tiny images on a single goroutine.
const minRowsPerChunk = 16

// Rows calls fn over [0, height) in contiguous [start, end) chunks and blocks
// until every chunk has returned. Chunks never overlap, so fn may write the
// output rows of its chunk without locking.
func Rows(height int, fn func(start, end int)) {
	RowsN(height, runtime.GOMAXPROCS(0), fn)
}

// RowsN is Rows with an explicit worker limit. workers <= 0 means GOMAXPROCS.
func RowsN(height, workers int, fn func(start, end int)) {
	if height <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := min(workers, (height+minRowsPerChunk-1)/minRowsPerChunk)
	if chunks <= 1 {
		fn(0, height)
		return
	}

	chunkSize := (height + chunks - 1) / chunks
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < height; start += chunkSize {
		start, end := start, min(start+chunkSize, height)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	// fn cannot fail, Wait only joins.
	_ = g.Wait()
}
