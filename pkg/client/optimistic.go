package client

import "sync"

// Optimistic holds a value that is updated before the server confirms it.
// Applies are serialised so a rollback never overwrites a later prediction.
type Optimistic[T any] struct {
	apply sync.Mutex

	mu      sync.Mutex
	current T
}

func NewOptimistic[T any](initial T) *Optimistic[T] {
	return &Optimistic[T]{current: initial}
}

func (o *Optimistic[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

func (o *Optimistic[T]) set(v T) {
	o.mu.Lock()
	o.current = v
	o.mu.Unlock()
}

// Apply shows predict(current) immediately, then runs confirm with the
// value the prediction was made from. On success the value becomes what
// confirm returns; on error the prior value is restored and the error
// returned. A second Apply waits until the first has settled.
func (o *Optimistic[T]) Apply(predict func(T) T, confirm func(prior T) (T, error)) (T, error) {
	o.apply.Lock()
	defer o.apply.Unlock()

	prior := o.Get()
	o.set(predict(prior))

	confirmed, err := confirm(prior)
	if err != nil {
		o.set(prior)
		return prior, err
	}
	o.set(confirmed)
	return confirmed, nil
}
