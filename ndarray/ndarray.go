/*
Package ndarray provides a minimal strided N-dimensional array with
sequential, splittable axis iterators.

An Array shares its backing storage with every View, ViewMut, and axis
iterator derived from it. Axis iterators are exactly sized and can be
split at any index into two iterators over disjoint, contiguous ranges
of lanes, which is what package par needs to drive them in parallel.

Arrays of float64 can be created on top of the storage of a gonum
mat.Dense without copying, see FromDense.
*/
package ndarray

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Error represents array handling errors. Values of this type are
// used as panic values for programming errors, similar to the errors
// of gonum's mat package.
type Error struct{ string }

func (err Error) Error() string { return err.string }

var (
	ErrIndexOutOfRange = Error{"ndarray: index out of range"}
	ErrAxisOutOfRange  = Error{"ndarray: axis out of range"}
	ErrShape           = Error{"ndarray: dimension mismatch"}
	ErrRetired         = Error{"ndarray: use of retired axis iterator"}
)

/*
An Array is a dense N-dimensional array with arbitrary strides over a
shared backing slice.

The zero Array is a valid 0-dimensional array without storage and
must not be accessed.
*/
type Array[T any] struct {
	data    []T
	shape   []int
	strides []int
	offset  int
}

// New returns a zero-filled array with the given shape in row-major
// order. New panics if any extent is negative.
func New[T any](shape ...int) *Array[T] {
	size := checkShape(shape)
	return &Array[T]{
		data:    make([]T, size),
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
	}
}

// FromSlice returns an array with the given shape that uses data as
// its backing storage in row-major order. The length of data must be
// equal to the product of the extents.
func FromSlice[T any](data []T, shape ...int) (*Array[T], error) {
	size := 1
	for _, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("ndarray: negative extent in shape %v", shape)
		}
		size *= n
	}
	if size != len(data) {
		return nil, fmt.Errorf("ndarray: %v elements do not fit shape %v", len(data), shape)
	}
	return &Array[T]{
		data:    data,
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
	}, nil
}

// FromDense returns a 2-dimensional array that shares its storage with
// m. Writes through the array, or through mutable views and axis
// iterators derived from it, are visible in m and vice versa.
func FromDense(m *mat.Dense) *Array[float64] {
	raw := m.RawMatrix()
	return &Array[float64]{
		data:    raw.Data,
		shape:   []int{raw.Rows, raw.Cols},
		strides: []int{raw.Stride, 1},
	}
}

// ToDense copies a 2-dimensional array into a new mat.Dense.
func ToDense(a *Array[float64]) (*mat.Dense, error) {
	if a.Ndim() != 2 {
		return nil, fmt.Errorf("ndarray: cannot convert %v-dimensional array to a matrix", a.Ndim())
	}
	rows, cols := a.shape[0], a.shape[1]
	if rows == 0 || cols == 0 {
		return nil, mat.ErrZeroLength
	}
	return mat.NewDense(rows, cols, a.Values()), nil
}

func checkShape(shape []int) (size int) {
	size = 1
	for _, n := range shape {
		if n < 0 {
			panic(fmt.Sprintf("invalid shape: %v", shape))
		}
		size *= n
	}
	return
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		if shape[i] > 0 {
			stride *= shape[i]
		}
	}
	return strides
}

// Shape returns a copy of the extents of a.
func (a *Array[T]) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Ndim returns the number of dimensions of a.
func (a *Array[T]) Ndim() int {
	return len(a.shape)
}

// Size returns the number of elements of a.
func (a *Array[T]) Size() int {
	size := 1
	for _, n := range a.shape {
		size *= n
	}
	return size
}

func (a *Array[T]) index(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(ErrShape)
	}
	offset := a.offset
	for i, k := range idx {
		if k < 0 || k >= a.shape[i] {
			panic(ErrIndexOutOfRange)
		}
		offset += k * a.strides[i]
	}
	return offset
}

// At returns the element at the given index. At panics if the number
// of indices does not match the number of dimensions, or if an index
// is out of range.
func (a *Array[T]) At(idx ...int) T {
	return a.data[a.index(idx)]
}

// Set stores v at the given index, with the same preconditions as At.
func (a *Array[T]) Set(v T, idx ...int) {
	a.data[a.index(idx)] = v
}

// each invokes f with the storage offset of every element of a, in
// row-major logical order.
func (a *Array[T]) each(f func(offset int)) {
	if a.Size() == 0 {
		return
	}
	ndim := len(a.shape)
	if ndim == 0 {
		f(a.offset)
		return
	}
	idx := make([]int, ndim)
	offset := a.offset
	for {
		f(offset)
		d := ndim - 1
		for ; d >= 0; d-- {
			idx[d]++
			offset += a.strides[d]
			if idx[d] < a.shape[d] {
				break
			}
			offset -= idx[d] * a.strides[d]
			idx[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// Values returns a copy of the elements of a in row-major logical
// order.
func (a *Array[T]) Values() []T {
	values := make([]T, 0, a.Size())
	a.each(func(offset int) {
		values = append(values, a.data[offset])
	})
	return values
}

// Slice returns an array that shares storage with a, restricted to
// the half-open interval from low to high along the given axis.
func (a *Array[T]) Slice(axis, low, high int) *Array[T] {
	a.checkAxis(axis)
	if low < 0 || high < low || high > a.shape[axis] {
		panic(fmt.Sprintf("invalid slice %v:%v for axis %v of extent %v", low, high, axis, a.shape[axis]))
	}
	shape := a.Shape()
	shape[axis] = high - low
	return &Array[T]{
		data:    a.data,
		shape:   shape,
		strides: a.strides,
		offset:  a.offset + low*a.strides[axis],
	}
}

// View returns a read-only view of the whole array.
func (a *Array[T]) View() View[T] {
	return View[T]{*a}
}

// ViewMut returns a mutable view of the whole array.
func (a *Array[T]) ViewMut() ViewMut[T] {
	return ViewMut[T]{*a}
}

func (a *Array[T]) checkAxis(axis int) {
	if axis < 0 || axis >= len(a.shape) {
		panic(ErrAxisOutOfRange)
	}
}

// lanes returns the lane layout of a along axis: every lane is the
// subarray with that axis removed.
func (a *Array[T]) lanes(axis int) axisRange[T] {
	a.checkAxis(axis)
	shape := make([]int, 0, len(a.shape)-1)
	strides := make([]int, 0, len(a.shape)-1)
	for i := range a.shape {
		if i != axis {
			shape = append(shape, a.shape[i])
			strides = append(strides, a.strides[i])
		}
	}
	return axisRange[T]{
		lane: Array[T]{
			data:    a.data,
			shape:   shape,
			strides: strides,
			offset:  a.offset,
		},
		stride: a.strides[axis],
		end:    a.shape[axis],
	}
}

// AxisIter returns a read-only iterator over the lanes of a along axis.
func (a *Array[T]) AxisIter(axis int) *AxisIter[T] {
	return &AxisIter[T]{a.lanes(axis)}
}

// AxisIterMut returns a mutable iterator over the lanes of a along
// axis.
func (a *Array[T]) AxisIterMut(axis int) *AxisIterMut[T] {
	return &AxisIterMut[T]{a.lanes(axis)}
}

// OuterIter returns a read-only iterator over the outermost axis.
func (a *Array[T]) OuterIter() *AxisIter[T] {
	return a.AxisIter(0)
}

// OuterIterMut returns a mutable iterator over the outermost axis.
func (a *Array[T]) OuterIterMut() *AxisIterMut[T] {
	return a.AxisIterMut(0)
}
