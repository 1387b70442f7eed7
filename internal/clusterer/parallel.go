package clusterer

import (
	"runtime"
	"sync"

	"github.com/theodesp/unionfind"

	"geocluster/internal/geometry"
)

const defaultChunkSize = 256

// Pair records an overlap between rectangles I and J, always with I < J so
// the symmetric duplicate never appears.
type Pair struct {
	I, J int
}

// OverlapPairs discovers all overlapping rectangle pairs concurrently. The
// rectangle slice is split into fixed-size chunks handed to a fixed pool of
// workers; the tree is fully built before any worker starts and is only
// read afterwards, so queries need no synchronization. Each chunk writes
// its pairs into its own slot, the slots are concatenated after the join.
//
// workers <= 0 means one worker per CPU, chunkSize <= 0 picks a default.
func OverlapPairs(rects []geometry.Rect, workers, chunkSize int) []Pair {
	if len(rects) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	tree := IndexRects(rects)

	numChunks := (len(rects) + chunkSize - 1) / chunkSize
	chunkPairs := make([][]Pair, numChunks)

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for c := range jobs {
				start := c * chunkSize
				end := start + chunkSize
				if end > len(rects) {
					end = len(rects)
				}
				var pairs []Pair
				for i := start; i < end; i++ {
					for _, match := range tree.SearchIntersect(searchBounds(rects[i])) {
						if j := match.(*entry).id; i < j {
							pairs = append(pairs, Pair{I: i, J: j})
						}
					}
				}
				chunkPairs[c] = pairs
			}
		}()
	}
	for c := 0; c < numChunks; c++ {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	var flat []Pair
	for _, pairs := range chunkPairs {
		flat = append(flat, pairs...)
	}
	return flat
}

// GroupOverlappingParallel runs overlap discovery across workers and then
// performs the union step on the calling goroutine. The forest is mutated
// by exactly one goroutine; parallelizing the unions would need locks or
// atomics on the parent array for no measurable gain, the index queries are
// where the time goes.
func GroupOverlappingParallel(rects []geometry.Rect, workers, chunkSize int) *unionfind.UnionFind {
	uf := unionfind.New(len(rects))
	for _, p := range OverlapPairs(rects, workers, chunkSize) {
		uf.Union(p.I, p.J)
	}
	return uf
}

// ClusterParallel is Cluster with concurrent overlap discovery. It produces
// the same component partition as the sequential version for any input.
func ClusterParallel(rects []geometry.Rect, workers, chunkSize int) []geometry.Rect {
	if len(rects) == 0 {
		return nil
	}
	return MergeComponents(rects, GroupOverlappingParallel(rects, workers, chunkSize))
}
