// Package parallel provides parallel iterators: data sources that can be
// recursively split into independent parts, and consumers that process
// and combine the results of these parts.
//
// A parallel iterator advertises its capabilities by the interfaces it
// implements. Every parallel iterator implements Iterator. An iterator
// that knows an upper bound of the number of items it yields implements
// Bounded, one that knows the exact number implements Exact, and one
// that can hand out a Producer that splits at arbitrary indices
// implements Indexed. The functions in this package use the most
// capable interface available.
//
// Splitting is driven by Bridge, which divides a Producer and a
// Consumer at the same indices until the parts are small enough, and
// then drains each part sequentially in its own goroutine. The Go
// scheduler distributes these goroutines over runtime.GOMAXPROCS(0)
// worker threads.
package parallel

import "golang.org/x/exp/constraints"

// Number is the constraint for the element types accepted by Sum.
type Number interface {
	constraints.Integer | constraints.Float
}

// A Producer is a splittable source of items with a known length.
//
// The methods of this interface are typically not called by user
// programs, but by Bridge.
type Producer[T any] interface {
	// Next returns the next item, or false if there are no more items.
	Next() (T, bool)

	// Len returns the number of items that remain to be yielded.
	Len() int

	// Cost estimates the cost of processing n items of this producer.
	Cost(n int) float64

	// SplitAt divides the producer into one producer for the first
	// index items and one for the remaining items, preserving their
	// order. The receiver must not be used anymore afterwards.
	//
	// SplitAt panics unless 0 <= index <= Len().
	SplitAt(index int) (left, right Producer[T])
}

// LenBounds is implemented by producers that restrict the number of
// items a sequentially drained part may have. MinLen is at least 1,
// and MaxLen is at least MinLen.
type LenBounds interface {
	MinLen() int
	MaxLen() int
}

// A ProducerCallback receives the Producer of an Indexed iterator.
type ProducerCallback[T any] func(p Producer[T])

/*
A Consumer receives the items of a parallel iterator.

Consumers store their results in locations that they own. When a
consumer is split, the returned reduce function combines the results
of left and right into the location of the receiver. It is invoked
only after both halves have completed.

The methods of this interface are typically not called by user
programs, but implemented by the functions of this package and called
by Bridge.
*/
type Consumer[T any] interface {
	// SplitAt divides the consumer for a split of its producer at
	// index.
	SplitAt(index int) (left, right Consumer[T], reduce func())

	// Folder returns a folder that consumes a sequential part of the
	// items.
	Folder() Folder[T]

	// Full reports whether the consumer does not need any further
	// items.
	Full() bool
}

// A Folder consumes items sequentially.
type Folder[T any] interface {
	// Consume processes one item.
	Consume(item T)

	// Complete stores the result of the folder in the location of the
	// consumer that created it.
	Complete()

	// Full reports whether the folder does not need any further
	// items.
	Full() bool
}

// An Iterator is a parallel iterator.
type Iterator[T any] interface {
	// DriveUnindexed feeds all items to c, which does not rely on the
	// positions of the items.
	DriveUnindexed(c Consumer[T])
}

// A Bounded iterator knows an upper bound of the number of items it
// yields.
type Bounded[T any] interface {
	Iterator[T]

	// UpperBound returns the maximum number of items.
	UpperBound() int

	// Drive feeds all items to c, which may rely on the positions of
	// the items as communicated by its SplitAt method.
	Drive(c Consumer[T])
}

// An Exact iterator knows the exact number of items it yields.
type Exact[T any] interface {
	Bounded[T]

	// Len returns the number of items.
	Len() int
}

// An Indexed iterator can hand out a Producer for its items.
type Indexed[T any] interface {
	Exact[T]

	// WithProducer passes a producer for the items to cb. An iterator
	// can only be driven once.
	WithProducer(cb ProducerCallback[T])
}
