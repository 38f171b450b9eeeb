// Package executor runs caller-supplied operations over a chunk list
// concurrently.
//
// Concurrency is across chunks only: the elements of one chunk are always
// processed in order by a single task. Tasks are queued through a bounded
// worker pool, so the number of chunks never dictates the number of
// goroutines.
//
// # Failure handling
//
// The first operation to fail records its error and stops the run. Tasks
// that have not started yet are skipped; tasks already running are never
// interrupted. After every task has been joined, the recorded error is
// returned as a *types.OperationError carrying the failing chunk index.
// Errors from other tasks that fail concurrently are counted and logged at
// debug level, then discarded. Panics raised by an operation are recovered
// and reported the same way.
//
// No rollback is attempted: mutations performed by ForEach before a sibling
// failed are left in place.
//
// # Ordering
//
// Map and MapChunks write each result to the slot of its input chunk, so
// output order always matches input order. Reduce folds each chunk from its
// first element, then folds the per-chunk partials in input order starting
// from the initial value.
package executor
