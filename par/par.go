/*
Package par turns sequential, exactly sized, splittable iterators into
parallel iterators.

The typical use is to iterate over the lanes of an ndarray.Array along
one axis in parallel:

	a := ndarray.FromDense(m)
	sum := parallel.Sum(parallel.Map(par.Outer(a), func(row ndarray.View[float64]) float64 {
		return row.At(0)
	}))

The resulting iterators implement parallel.Indexed, so they can be
used with all functions of package parallel. They are split by the
splitting primitive of the wrapped iterator, so mutable lanes handed
out in parallel never overlap.
*/
package par

import (
	"fmt"

	"github.com/exascience/ndpar/parallel"
)

/*
A SplitIterator is a sequential iterator that knows the number of
items it still yields, and that can be split in two at any index.

SplitAt(i) must return an iterator over the first i remaining items
and an iterator over the rest, preserving their order. If the items
give write access to shared memory, the two iterators must never give
access to the same memory.
*/
type SplitIterator[T, I any] interface {
	Len() int
	Next() (T, bool)
	SplitAt(index int) (I, I)
}

// Parallel is a parallel iterator over the items of a SplitIterator.
//
// A Parallel can be driven only once.
type Parallel[T any, I SplitIterator[T, I]] struct {
	iter   I
	cost   func(n int) float64
	driven bool
}

// From returns a parallel iterator over the items of iter.
func From[T any, I SplitIterator[T, I]](iter I) *Parallel[T, I] {
	return &Parallel[T, I]{iter: iter}
}

// WithCost replaces the cost model, which by default estimates the
// cost of n items as n, and returns p.
func (p *Parallel[T, I]) WithCost(cost func(n int) float64) *Parallel[T, I] {
	p.cost = cost
	return p
}

// DriveUnindexed implements the method of the parallel.Iterator
// interface.
func (p *Parallel[T, I]) DriveUnindexed(c parallel.Consumer[T]) {
	parallel.Bridge[T](p, c)
}

// Drive implements the method of the parallel.Bounded interface.
func (p *Parallel[T, I]) Drive(c parallel.Consumer[T]) {
	parallel.Bridge[T](p, c)
}

func (p *Parallel[T, I]) check() {
	if p.driven {
		panic("parallel iterator already driven")
	}
}

// UpperBound implements the method of the parallel.Bounded interface.
func (p *Parallel[T, I]) UpperBound() int {
	p.check()
	return p.iter.Len()
}

// Len implements the method of the parallel.Exact interface.
func (p *Parallel[T, I]) Len() int {
	p.check()
	return p.iter.Len()
}

// WithProducer implements the method of the parallel.Indexed
// interface. It panics if p has already been driven.
func (p *Parallel[T, I]) WithProducer(cb parallel.ProducerCallback[T]) {
	p.check()
	p.driven = true
	cb(&producer[T, I]{iter: p.iter, cost: p.cost})
}

// producer splits the wrapped iterator on behalf of parallel.Bridge.
type producer[T any, I SplitIterator[T, I]] struct {
	iter    I
	cost    func(n int) float64
	retired bool
}

func (p *producer[T, I]) check() {
	if p.retired {
		panic("use of retired producer")
	}
}

func (p *producer[T, I]) Next() (T, bool) {
	p.check()
	return p.iter.Next()
}

func (p *producer[T, I]) Len() int {
	p.check()
	return p.iter.Len()
}

func (p *producer[T, I]) Cost(n int) float64 {
	if p.cost == nil {
		return float64(n)
	}
	return p.cost(n)
}

func (p *producer[T, I]) SplitAt(index int) (parallel.Producer[T], parallel.Producer[T]) {
	if n := p.Len(); index < 0 || index > n {
		panic(fmt.Sprintf("split index out of range: %v not in 0:%v", index, n))
	}
	left, right := p.iter.SplitAt(index)
	p.retired = true
	return &producer[T, I]{iter: left, cost: p.cost}, &producer[T, I]{iter: right, cost: p.cost}
}
