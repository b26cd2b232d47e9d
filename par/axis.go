package par

import (
	"github.com/exascience/ndpar/ndarray"
	"github.com/exascience/ndpar/parallel"
)

// AxisPar is the parallel iterator over the read-only lanes of an axis.
type AxisPar[T any] = Parallel[ndarray.View[T], *ndarray.AxisIter[T]]

// AxisParMut is the parallel iterator over the mutable lanes of an
// axis.
type AxisParMut[T any] = Parallel[ndarray.ViewMut[T], *ndarray.AxisIterMut[T]]

var (
	_ parallel.Indexed[ndarray.View[float64]]    = (*AxisPar[float64])(nil)
	_ parallel.Indexed[ndarray.ViewMut[float64]] = (*AxisParMut[float64])(nil)
)

// Axis returns a parallel iterator over the lanes that it yields.
func Axis[T any](it *ndarray.AxisIter[T]) *AxisPar[T] {
	return From[ndarray.View[T]](it)
}

// AxisMut returns a parallel iterator over the mutable lanes that it
// yields.
func AxisMut[T any](it *ndarray.AxisIterMut[T]) *AxisParMut[T] {
	return From[ndarray.ViewMut[T]](it)
}

// Outer returns a parallel iterator over the lanes of the outermost
// axis of a.
func Outer[T any](a *ndarray.Array[T]) *AxisPar[T] {
	return Axis(a.OuterIter())
}

// OuterMut returns a parallel iterator over the mutable lanes of the
// outermost axis of a.
func OuterMut[T any](a *ndarray.Array[T]) *AxisParMut[T] {
	return AxisMut(a.OuterIterMut())
}
