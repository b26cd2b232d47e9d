package parallel

import "fmt"

func noReduce() {}

// ForEach invokes f for every item of it in parallel.
//
// If one or more invocations of f panic, ForEach eventually panics with
// the left-most recovered panic value.
func ForEach[T any](it Iterator[T], f func(item T)) {
	it.DriveUnindexed(forEachConsumer[T]{f})
}

type forEachConsumer[T any] struct {
	f func(T)
}

func (c forEachConsumer[T]) SplitAt(int) (Consumer[T], Consumer[T], func()) {
	return c, c, noReduce
}

func (c forEachConsumer[T]) Folder() Folder[T] { return c }
func (c forEachConsumer[T]) Full() bool        { return false }
func (c forEachConsumer[T]) Consume(item T)    { c.f(item) }
func (c forEachConsumer[T]) Complete()         {}

// Fold folds the items of it in parallel.
//
// Each sequentially drained part starts from a fresh identity() value
// and is folded with fold; the results of the parts are then combined
// by repeated invocations of reduce, in the order of the parts.
func Fold[T, R any](
	it Iterator[T],
	identity func() R,
	fold func(acc R, item T) R,
	reduce func(x, y R) R,
) R {
	var result R
	it.DriveUnindexed(foldConsumer[T, R]{&result, identity, fold, reduce})
	return result
}

// Reduce combines the items of it in parallel with op, which must be
// associative. identity() must return a neutral element for op.
func Reduce[T any](it Iterator[T], identity func() T, op func(x, y T) T) T {
	return Fold(it, identity, op, op)
}

// Sum returns the sum of the items of it.
func Sum[T Number](it Iterator[T]) T {
	return Reduce(it,
		func() (zero T) { return },
		func(x, y T) T { return x + y },
	)
}

// Count returns the number of items of it.
func Count[T any](it Iterator[T]) int {
	return Fold(it,
		func() int { return 0 },
		func(n int, _ T) int { return n + 1 },
		func(x, y int) int { return x + y },
	)
}

type foldConsumer[T, R any] struct {
	result   *R
	identity func() R
	fold     func(R, T) R
	reduce   func(R, R) R
}

func (c foldConsumer[T, R]) SplitAt(int) (Consumer[T], Consumer[T], func()) {
	left, right := c, c
	left.result, right.result = new(R), new(R)
	return left, right, func() {
		*c.result = c.reduce(*left.result, *right.result)
	}
}

func (c foldConsumer[T, R]) Folder() Folder[T] {
	return &foldFolder[T, R]{c.identity(), c.result, c.fold}
}

func (c foldConsumer[T, R]) Full() bool { return false }

type foldFolder[T, R any] struct {
	acc    R
	result *R
	fold   func(R, T) R
}

func (f *foldFolder[T, R]) Consume(item T) { f.acc = f.fold(f.acc, item) }
func (f *foldFolder[T, R]) Complete()      { *f.result = f.acc }
func (f *foldFolder[T, R]) Full() bool     { return false }

// Collect returns the items of it as a slice, in iteration order.
//
// For Indexed iterators, the slice is allocated up front and each part
// writes its items directly to their final positions. Collect panics if
// such an iterator yields a different number of items than its Len
// method reported.
func Collect[T any](it Iterator[T]) []T {
	if ix, ok := it.(Indexed[T]); ok {
		result := make([]T, ix.Len())
		ix.Drive(collectConsumer[T]{result})
		return result
	}
	return Fold(it,
		func() []T { return nil },
		func(acc []T, item T) []T { return append(acc, item) },
		func(x, y []T) []T { return append(x, y...) },
	)
}

type collectConsumer[T any] struct {
	target []T
}

func (c collectConsumer[T]) SplitAt(index int) (Consumer[T], Consumer[T], func()) {
	if index < 0 || index > len(c.target) {
		panic(fmt.Sprintf("split index out of range: %v not in 0:%v", index, len(c.target)))
	}
	return collectConsumer[T]{c.target[:index:index]}, collectConsumer[T]{c.target[index:]}, noReduce
}

func (c collectConsumer[T]) Folder() Folder[T] { return &collectFolder[T]{target: c.target} }
func (c collectConsumer[T]) Full() bool        { return false }

type collectFolder[T any] struct {
	target []T
	n      int
}

func (f *collectFolder[T]) Consume(item T) {
	if f.n >= len(f.target) {
		panic(fmt.Sprintf("too many items: expected %v", len(f.target)))
	}
	f.target[f.n] = item
	f.n++
}

func (f *collectFolder[T]) Complete() {
	if f.n != len(f.target) {
		panic(fmt.Sprintf("expected %v items, but got %v", len(f.target), f.n))
	}
}

func (f *collectFolder[T]) Full() bool { return false }
