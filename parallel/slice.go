package parallel

import "fmt"

// Slice returns an Indexed iterator over the elements of s.
func Slice[T any](s []T) Indexed[T] {
	return &sliceIter[T]{s: s}
}

type sliceIter[T any] struct {
	s      []T
	driven bool
}

func (it *sliceIter[T]) DriveUnindexed(c Consumer[T]) { Bridge[T](it, c) }
func (it *sliceIter[T]) Drive(c Consumer[T])          { Bridge[T](it, c) }
func (it *sliceIter[T]) UpperBound() int              { return len(it.s) }
func (it *sliceIter[T]) Len() int                     { return len(it.s) }

func (it *sliceIter[T]) WithProducer(cb ProducerCallback[T]) {
	if it.driven {
		panic("parallel iterator already driven")
	}
	it.driven = true
	cb(&sliceProducer[T]{it.s})
}

type sliceProducer[T any] struct {
	s []T
}

func (p *sliceProducer[T]) Next() (item T, ok bool) {
	if len(p.s) == 0 {
		return
	}
	item, p.s = p.s[0], p.s[1:]
	return item, true
}

func (p *sliceProducer[T]) Len() int           { return len(p.s) }
func (p *sliceProducer[T]) Cost(n int) float64 { return float64(n) }

func (p *sliceProducer[T]) SplitAt(index int) (Producer[T], Producer[T]) {
	if index < 0 || index > len(p.s) {
		panic(fmt.Sprintf("split index out of range: %v not in 0:%v", index, len(p.s)))
	}
	return &sliceProducer[T]{p.s[:index:index]}, &sliceProducer[T]{p.s[index:]}
}
