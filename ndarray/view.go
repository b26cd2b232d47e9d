package ndarray

import "golang.org/x/exp/constraints"

// A View is a read-only window onto (a part of) an Array.
type View[T any] struct {
	a Array[T]
}

// Shape returns the extents of v.
func (v View[T]) Shape() []int { return v.a.Shape() }

// Ndim returns the number of dimensions of v.
func (v View[T]) Ndim() int { return v.a.Ndim() }

// Size returns the number of elements of v.
func (v View[T]) Size() int { return v.a.Size() }

// At returns the element at the given index. A 0-dimensional view is
// accessed without indices.
func (v View[T]) At(idx ...int) T { return v.a.At(idx...) }

// Values returns a copy of the elements of v in row-major order.
func (v View[T]) Values() []T { return v.a.Values() }

// AxisIter returns a read-only iterator over the lanes of v along axis.
func (v View[T]) AxisIter(axis int) *AxisIter[T] { return v.a.AxisIter(axis) }

// AsSlice returns the elements of a contiguous 1-dimensional view as a
// slice that shares storage with the array. The slice must not be
// modified. The second result is false for any other view.
func (v View[T]) AsSlice() ([]T, bool) { return v.a.asSlice() }

// A ViewMut is a window onto (a part of) an Array through which the
// elements can be modified. ViewMut values obtained from the same
// AxisIterMut never overlap.
type ViewMut[T any] struct {
	a Array[T]
}

// View returns a read-only view of the same elements.
func (v ViewMut[T]) View() View[T] { return View[T]{v.a} }

// Shape returns the extents of v.
func (v ViewMut[T]) Shape() []int { return v.a.Shape() }

// Ndim returns the number of dimensions of v.
func (v ViewMut[T]) Ndim() int { return v.a.Ndim() }

// Size returns the number of elements of v.
func (v ViewMut[T]) Size() int { return v.a.Size() }

// At returns the element at the given index.
func (v ViewMut[T]) At(idx ...int) T { return v.a.At(idx...) }

// Set stores x at the given index.
func (v ViewMut[T]) Set(x T, idx ...int) { v.a.Set(x, idx...) }

// Values returns a copy of the elements of v in row-major order.
func (v ViewMut[T]) Values() []T { return v.a.Values() }

// Fill sets every element of v to x.
func (v ViewMut[T]) Fill(x T) {
	data := v.a.data
	v.a.each(func(offset int) {
		data[offset] = x
	})
}

// Apply replaces every element of v by the result of f.
func (v ViewMut[T]) Apply(f func(T) T) {
	data := v.a.data
	v.a.each(func(offset int) {
		data[offset] = f(data[offset])
	})
}

// AxisIterMut returns a mutable iterator over the lanes of v along
// axis.
func (v ViewMut[T]) AxisIterMut(axis int) *AxisIterMut[T] { return v.a.AxisIterMut(axis) }

// AsSlice returns the elements of a contiguous 1-dimensional view as a
// writable slice that shares storage with the array. The second result
// is false for any other view.
func (v ViewMut[T]) AsSlice() ([]T, bool) { return v.a.asSlice() }

func (a *Array[T]) asSlice() ([]T, bool) {
	if len(a.shape) != 1 {
		return nil, false
	}
	n := a.shape[0]
	switch {
	case n == 0:
		return nil, true
	case n == 1 || a.strides[0] == 1:
		return a.data[a.offset : a.offset+n : a.offset+n], true
	}
	return nil, false
}

// Sum returns the sum of all elements of v.
func Sum[T constraints.Integer | constraints.Float](v View[T]) (sum T) {
	data := v.a.data
	v.a.each(func(offset int) {
		sum += data[offset]
	})
	return
}
