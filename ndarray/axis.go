package ndarray

import "fmt"

// axisRange is the state shared by AxisIter and AxisIterMut: the
// half-open interval of lane indices from index to end along one axis.
type axisRange[T any] struct {
	lane       Array[T]
	stride     int
	index, end int
	retired    bool
}

func (r *axisRange[T]) check() {
	if r.retired {
		panic(ErrRetired)
	}
}

func (r *axisRange[T]) len() int {
	r.check()
	return r.end - r.index
}

func (r *axisRange[T]) next() (lane Array[T], ok bool) {
	r.check()
	if r.index >= r.end {
		return
	}
	lane = r.lane
	lane.offset += r.index * r.stride
	r.index++
	return lane, true
}

// split partitions r at i and retires r. The resulting ranges cover
// lanes [index, index+i) and [index+i, end), so they never share a lane.
func (r *axisRange[T]) split(i int) (left, right axisRange[T]) {
	if n := r.len(); i < 0 || i > n {
		panic(fmt.Sprintf("split index out of range: %v not in 0:%v", i, n))
	}
	mid := r.index + i
	left, right = *r, *r
	left.end = mid
	right.index = mid
	r.retired = true
	return
}

/*
An AxisIter iterates over the lanes of an array along one axis and
yields them as read-only views.

An AxisIter is exactly sized and can be split in two at any index.
After SplitAt, the receiver is retired and panics when used again.
*/
type AxisIter[T any] struct {
	r axisRange[T]
}

// Len returns the number of lanes that remain to be yielded.
func (it *AxisIter[T]) Len() int { return it.r.len() }

// Next returns the next lane, or false if there is none.
func (it *AxisIter[T]) Next() (View[T], bool) {
	lane, ok := it.r.next()
	return View[T]{lane}, ok
}

// SplitAt splits it into an iterator over the first i remaining lanes
// and an iterator over the rest. SplitAt panics unless 0 <= i <= Len().
func (it *AxisIter[T]) SplitAt(i int) (*AxisIter[T], *AxisIter[T]) {
	left, right := it.r.split(i)
	return &AxisIter[T]{left}, &AxisIter[T]{right}
}

/*
An AxisIterMut iterates over the lanes of an array along one axis and
yields them as mutable views.

Lanes along one axis start at distinct multiples of the axis stride
and never overlap, so the iterators returned by SplitAt reference
disjoint memory and can be written to concurrently. After SplitAt, the
receiver is retired and panics when used again.
*/
type AxisIterMut[T any] struct {
	r axisRange[T]
}

// Len returns the number of lanes that remain to be yielded.
func (it *AxisIterMut[T]) Len() int { return it.r.len() }

// Next returns the next lane, or false if there is none.
func (it *AxisIterMut[T]) Next() (ViewMut[T], bool) {
	lane, ok := it.r.next()
	return ViewMut[T]{lane}, ok
}

// SplitAt splits it into an iterator over the first i remaining lanes
// and an iterator over the rest. SplitAt panics unless 0 <= i <= Len().
func (it *AxisIterMut[T]) SplitAt(i int) (*AxisIterMut[T], *AxisIterMut[T]) {
	left, right := it.r.split(i)
	return &AxisIterMut[T]{left}, &AxisIterMut[T]{right}
}
