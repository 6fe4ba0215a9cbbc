package ai

import "sync"

// LazyClient creates a client on first use and hands the same client, or the
// same construction error, to every later caller. There is no teardown and no
// reinitialization.
type LazyClient[T any] struct {
	once   sync.Once
	build  func() (T, error)
	client T
	err    error
}

// NewLazyClient returns an uninitialized LazyClient that will call build once.
func NewLazyClient[T any](build func() (T, error)) *LazyClient[T] {
	return &LazyClient[T]{build: build}
}

// Get returns the client, building it on the first call.
func (l *LazyClient[T]) Get() (T, error) {
	l.once.Do(func() {
		l.client, l.err = l.build()
	})
	return l.client, l.err
}
