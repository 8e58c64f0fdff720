package classify

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/tallydesk/docintake/internal/entity"
)

// BatchItem is one (text, path) pair to classify.
type BatchItem struct {
	Text string
	Path string
}

// BatchResult reports one item's outcome; Err is set when that item failed
// without affecting the rest of the batch.
type BatchResult struct {
	Path   string
	Result entity.DocumentTypeResult
	Err    error
}

// DetectBatch classifies items concurrently with a bounded worker pool.
// There is no shared state between items and no ordering requirement, so
// the map is embarrassingly parallel; results come back indexed by input
// position. workers <= 0 sizes the pool to the available cores.
func (c *Classifier) DetectBatch(ctx context.Context, items []BatchItem, workers int) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]BatchResult, len(items))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = c.detectOne(ctx, items[i])
			}
		}()
	}

	for i := range items {
		select {
		case indexes <- i:
		case <-ctx.Done():
			results[i] = BatchResult{Path: items[i].Path, Err: ctx.Err()}
		}
	}
	close(indexes)
	wg.Wait()

	return results
}

// detectOne isolates a single item: a panic inside classification is
// reported as that item's failure, never the batch's.
func (c *Classifier) detectOne(ctx context.Context, item BatchItem) (res BatchResult) {
	res.Path = item.Path
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("classifier.batch.item_panic", "path", item.Path, "panic", r)
			res.Err = fmt.Errorf("classify %s: %v", item.Path, r)
		}
	}()
	res.Result = c.Detect(item.Text, item.Path)
	return res
}
