package executor

import "sync"

// failure is the single first-error slot shared by the tasks of one run.
// The stop flag and the recorded error are guarded by the same mutex.
type failure struct {
	mu      sync.Mutex
	stop    bool
	index   int
	err     error
	dropped int
}

// record stores err if no error has been recorded yet and stops the run.
// It reports whether err was kept.
func (f *failure) record(index int, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stop {
		f.dropped++
		return false
	}
	f.stop = true
	f.index = index
	f.err = err
	return true
}

func (f *failure) stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stop
}

func (f *failure) result() (index, dropped int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index, f.dropped, f.err
}
