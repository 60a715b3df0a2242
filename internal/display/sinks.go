package display

import "errors"

// Sinks owns the async workers behind the network displays so they can be
// closed on shutdown.
type Sinks struct {
	workers []*Async
}

func (s *Sinks) Add(a *Async) {
	s.workers = append(s.workers, a)
}

// Workers returns the registered workers in registration order.
func (s *Sinks) Workers() []*Async {
	if s == nil {
		return nil
	}
	return s.workers
}

// Len reports the number of registered workers.
func (s *Sinks) Len() int {
	if s == nil {
		return 0
	}
	return len(s.workers)
}

// Close stops every worker.
func (s *Sinks) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, w := range s.workers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
