// Package ndpar provides parallel iteration over the axes of
// N-dimensional arrays.
//
// Iterating over one axis of an array yields lanes, which are subarrays
// with that axis removed. The axis iterators of ndpar/ndarray know how
// many lanes remain, and can be split in two at any index in constant
// time. Package ndpar/par turns such iterators into parallel iterators,
// so that the lanes are processed by several goroutines without manual
// chunking.
//
// Ndpar provides the following subpackages:
//
// ndpar/ndarray provides a strided N-dimensional array, read-only and
// mutable views, and read-only and mutable axis iterators. Arrays of
// float64 can share the storage of a gonum mat.Dense.
//
// ndpar/par wraps splittable iterators, in particular the axis
// iterators of ndpar/ndarray, as parallel iterators.
//
// ndpar/parallel provides the producer and consumer abstractions of
// parallel iterators, the bridge that splits producers and consumers
// in parallel, and functions such as Map, ForEach, Fold, Sum, and
// Collect.
//
// ndpar/speculative provides Any, All, and ErrForEach, which stop
// consuming items as soon as the final result is known.
//
// ndpar/sequential provides sequential implementations of the
// functions from ndpar/parallel, for testing and debugging purposes.
//
// Ndpar has been influenced to various extents by ideas from Cilk,
// Threading Building Blocks, and Rust's rayon and ndarray crates. See
// http://supertech.csail.mit.edu/papers/steal.pdf for some theoretical
// background on work stealing.
package ndpar
