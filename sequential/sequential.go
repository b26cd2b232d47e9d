// Package sequential provides sequential implementations of the
// functions provided by the parallel package. This is useful for
// testing and debugging.
//
// The functions accept any iterator with a Next method, which includes
// the axis iterators of package ndarray and the producers of package
// parallel. They drain the iterator in order, on the calling goroutine.
package sequential

import "github.com/exascience/ndpar/parallel"

// An Iterator yields items until its Next method returns false.
type Iterator[T any] interface {
	Next() (T, bool)
}

// ForEach invokes f for every item of it.
func ForEach[T any](it Iterator[T], f func(item T)) {
	for {
		item, ok := it.Next()
		if !ok {
			return
		}
		f(item)
	}
}

// Fold folds the items of it into init.
func Fold[T, R any](it Iterator[T], init R, fold func(acc R, item T) R) R {
	ForEach(it, func(item T) {
		init = fold(init, item)
	})
	return init
}

// Sum returns the sum of the items of it.
func Sum[T parallel.Number](it Iterator[T]) (sum T) {
	ForEach(it, func(item T) {
		sum += item
	})
	return
}

// Count returns the number of items of it.
func Count[T any](it Iterator[T]) (n int) {
	ForEach(it, func(T) {
		n++
	})
	return
}

// Collect returns the items of it as a slice.
func Collect[T any](it Iterator[T]) (result []T) {
	ForEach(it, func(item T) {
		result = append(result, item)
	})
	return
}
