package reactive

// batchDepths tracks nested Batch calls per goroutine, piggybacking on the
// tracking context.
type batchState struct {
	depth int
}

func batchDepth() int {
	return getTrackingContext().batch.depth
}

// Batch groups multiple writes into a single flush. Watchers affected by
// writes inside fn are queued, deduplicated by id, and run once in ascending
// id order when the outermost batch closes. Batches nest; only the
// outermost close flushes.
//
// Example:
//
//	reactive.Batch(func() {
//	    user.Set("first", "Ada")
//	    user.Set("last", "Lovelace")
//	})
//	// watchers of both fields ran once
func Batch(fn func()) {
	ctx := getTrackingContext()
	ctx.batch.depth++
	defer func() {
		ctx.batch.depth--
		if ctx.batch.depth == 0 && !Async {
			Flush()
		}
	}()
	fn()
}
