package frameasync

import "slices"

// Selected is the output of a [Select] future.
type Selected[T any] struct {
	Index int // Index of the future that completed.
	Value T   // Its output.
}

// Select returns a [Future] that polls each of fs, in order, and completes
// with the output of the first one to complete. The others are dropped
// (see [Dropper]) and never polled again.
//
// When passed no arguments, Select returns a [Future] that never completes.
func Select[T any](fs ...Future[T]) Future[Selected[T]] {
	return &selectFuture[T]{fs: slices.Clone(fs)}
}

type selectFuture[T any] struct {
	fs []Future[T]
}

func (s *selectFuture[T]) Poll(cx *Context) Poll[Selected[T]] {
	for i, f := range s.fs {
		v, ok := f.Poll(cx).Value()
		if !ok {
			continue
		}
		for j, f := range s.fs {
			if j != i {
				drop(f)
			}
		}
		s.fs = nil
		return Ready(Selected[T]{Index: i, Value: v})
	}
	return Pending[Selected[T]]()
}

func (s *selectFuture[T]) Drop() {
	for _, f := range s.fs {
		drop(f)
	}
	s.fs = nil
}

// Join returns a [Future] that polls each of fs until all of them complete,
// and then completes with their outputs, in argument order.
//
// When passed no arguments, Join returns a [Future] that completes with
// a nil slice on its first poll.
func Join[T any](fs ...Future[T]) Future[[]T] {
	return &joinFuture[T]{fs: slices.Clone(fs), n: len(fs)}
}

type joinFuture[T any] struct {
	fs  []Future[T]
	out []T
	n   int
}

func (j *joinFuture[T]) Poll(cx *Context) Poll[[]T] {
	if j.out == nil && len(j.fs) != 0 {
		j.out = make([]T, len(j.fs))
	}
	for i, f := range j.fs {
		if f == nil {
			continue
		}
		if v, ok := f.Poll(cx).Value(); ok {
			j.out[i] = v
			j.fs[i] = nil
			j.n--
		}
	}
	if j.n != 0 {
		return Pending[[]T]()
	}
	j.fs = nil
	return Ready(j.out)
}

func (j *joinFuture[T]) Drop() {
	for _, f := range j.fs {
		if f != nil {
			drop(f)
		}
	}
	j.fs = nil
}
