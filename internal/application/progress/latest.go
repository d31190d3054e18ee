// Package progress carries run progress from a pipeline to its observer as
// values on a channel. Only the newest value is retained: a slow observer
// skips intermediate snapshots instead of stalling the pipeline.
package progress

import "sync"

type Latest[T any] struct {
	ch     chan T
	mu     sync.Mutex
	closed bool
}

func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{ch: make(chan T, 1)}
}

// Publish replaces any unread value with v. It never blocks. Publishing on a
// nil or closed Latest is a no-op.
func (l *Latest[T]) Publish(v T) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	for {
		select {
		case l.ch <- v:
			return
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// C is the channel observers receive from. It is closed by Close.
func (l *Latest[T]) C() <-chan T {
	return l.ch
}

func (l *Latest[T]) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
}
