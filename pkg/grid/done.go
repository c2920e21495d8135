package grid

import "sync"

// DoneSignal is a one-shot broadcast that tells waiters the poll loop exited.
type DoneSignal struct {
	doneC chan struct{}
	mu    sync.Mutex
}

func NewDoneSignal() *DoneSignal {
	return &DoneSignal{
		doneC: make(chan struct{}),
	}
}

func (e *DoneSignal) Emit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	select {
	case <-e.doneC:
		// already emitted
	default:
		close(e.doneC)
	}
}

// Chan returns a channel that is closed once the signal is emitted.
func (e *DoneSignal) Chan() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doneC
}
