/*
Package speculative provides functions for consuming parallel
iterators, similar to the functions in package parallel, except that
the implementations here terminate early when they can.

Any and All terminate early if the final return value is known early
(if any of the predicates invoked in parallel returns true for Any, or
false for All).

ErrForEach terminates early if any of the functions invoked in
parallel returns an error value different from nil.

Early termination means that no further items are passed to the
invoked functions. None of the functions stop invocations that are
already running, and all of them return only after the parts of the
iterator that were already started have terminated.
*/
package speculative

import (
	"sync/atomic"

	"github.com/exascience/ndpar/parallel"
)

/*
Any reports whether pred returns true for at least one item of it.

Once pred returns true for some item, the remaining items are skipped.
*/
func Any[T any](it parallel.Iterator[T], pred func(item T) bool) bool {
	c := &anyConsumer[T]{pred: pred}
	it.DriveUnindexed(c)
	return atomic.LoadInt32(&c.found) != 0
}

/*
All reports whether pred returns true for all items of it.

Once pred returns false for some item, the remaining items are
skipped.
*/
func All[T any](it parallel.Iterator[T], pred func(item T) bool) bool {
	return !Any(it, func(item T) bool { return !pred(item) })
}

type anyConsumer[T any] struct {
	pred  func(T) bool
	found int32
}

func noReduce() {}

func (c *anyConsumer[T]) SplitAt(int) (parallel.Consumer[T], parallel.Consumer[T], func()) {
	return c, c, noReduce
}

func (c *anyConsumer[T]) Folder() parallel.Folder[T] { return c }
func (c *anyConsumer[T]) Full() bool                 { return atomic.LoadInt32(&c.found) != 0 }
func (c *anyConsumer[T]) Complete()                  {}

func (c *anyConsumer[T]) Consume(item T) {
	if c.pred(item) {
		atomic.StoreInt32(&c.found, 1)
	}
}

/*
ErrForEach invokes f for every item of it in parallel, until an
invocation returns an error value different from nil.

ErrForEach returns the left-most non-nil error value among the
invocations that took place. Because items are skipped once an error
occurred, this is not necessarily the error of the left-most failing
item.
*/
func ErrForEach[T any](it parallel.Iterator[T], f func(item T) error) error {
	var err error
	it.DriveUnindexed(errConsumer[T]{f: f, result: &err, failed: new(int32)})
	return err
}

type errConsumer[T any] struct {
	f      func(T) error
	result *error
	failed *int32
}

func (c errConsumer[T]) SplitAt(int) (parallel.Consumer[T], parallel.Consumer[T], func()) {
	left, right := c, c
	left.result, right.result = new(error), new(error)
	return left, right, func() {
		if *left.result != nil {
			*c.result = *left.result
		} else {
			*c.result = *right.result
		}
	}
}

func (c errConsumer[T]) Folder() parallel.Folder[T] { return &errFolder[T]{c: c} }
func (c errConsumer[T]) Full() bool                 { return atomic.LoadInt32(c.failed) != 0 }

type errFolder[T any] struct {
	c   errConsumer[T]
	err error
}

func (f *errFolder[T]) Consume(item T) {
	if f.err != nil {
		return
	}
	if err := f.c.f(item); err != nil {
		f.err = err
		atomic.StoreInt32(f.c.failed, 1)
	}
}

func (f *errFolder[T]) Complete()  { *f.c.result = f.err }
func (f *errFolder[T]) Full() bool { return f.err != nil || f.c.Full() }
