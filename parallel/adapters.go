package parallel

import "math"

// Map returns an iterator that yields f(item) for every item of it.
//
// If it is Indexed, so is the result.
func Map[T, U any](it Iterator[T], f func(item T) U) Iterator[U] {
	if ix, ok := it.(Indexed[T]); ok {
		return &indexedMap[T, U]{ix, f}
	}
	return &mapIter[T, U]{it, f}
}

type mapIter[T, U any] struct {
	base Iterator[T]
	f    func(T) U
}

func (it *mapIter[T, U]) DriveUnindexed(c Consumer[U]) {
	it.base.DriveUnindexed(mapConsumer[T, U]{c, it.f})
}

type mapConsumer[T, U any] struct {
	base Consumer[U]
	f    func(T) U
}

func (c mapConsumer[T, U]) SplitAt(index int) (Consumer[T], Consumer[T], func()) {
	left, right, reduce := c.base.SplitAt(index)
	return mapConsumer[T, U]{left, c.f}, mapConsumer[T, U]{right, c.f}, reduce
}

func (c mapConsumer[T, U]) Folder() Folder[T] { return mapFolder[T, U]{c.base.Folder(), c.f} }
func (c mapConsumer[T, U]) Full() bool        { return c.base.Full() }

type mapFolder[T, U any] struct {
	base Folder[U]
	f    func(T) U
}

func (f mapFolder[T, U]) Consume(item T) { f.base.Consume(f.f(item)) }
func (f mapFolder[T, U]) Complete()      { f.base.Complete() }
func (f mapFolder[T, U]) Full() bool     { return f.base.Full() }

type indexedMap[T, U any] struct {
	base Indexed[T]
	f    func(T) U
}

func (it *indexedMap[T, U]) DriveUnindexed(c Consumer[U]) { Bridge[U](it, c) }
func (it *indexedMap[T, U]) Drive(c Consumer[U])          { Bridge[U](it, c) }
func (it *indexedMap[T, U]) UpperBound() int              { return it.base.Len() }
func (it *indexedMap[T, U]) Len() int                     { return it.base.Len() }

func (it *indexedMap[T, U]) WithProducer(cb ProducerCallback[U]) {
	it.base.WithProducer(func(p Producer[T]) {
		cb(&mapProducer[T, U]{p, it.f})
	})
}

type mapProducer[T, U any] struct {
	base Producer[T]
	f    func(T) U
}

func (p *mapProducer[T, U]) Next() (result U, ok bool) {
	item, ok := p.base.Next()
	if ok {
		result = p.f(item)
	}
	return
}

func (p *mapProducer[T, U]) Len() int           { return p.base.Len() }
func (p *mapProducer[T, U]) Cost(n int) float64 { return p.base.Cost(n) }
func (p *mapProducer[T, U]) MinLen() int        { return minLen(p.base) }
func (p *mapProducer[T, U]) MaxLen() int        { return maxLen(p.base) }

func (p *mapProducer[T, U]) SplitAt(index int) (Producer[U], Producer[U]) {
	left, right := p.base.SplitAt(index)
	return &mapProducer[T, U]{left, p.f}, &mapProducer[T, U]{right, p.f}
}

// Filter returns an iterator that yields only the items of it for
// which pred returns true, preserving their order. The result is never
// Indexed.
func Filter[T any](it Iterator[T], pred func(item T) bool) Iterator[T] {
	return &filterIter[T]{it, pred}
}

type filterIter[T any] struct {
	base Iterator[T]
	pred func(T) bool
}

func (it *filterIter[T]) DriveUnindexed(c Consumer[T]) {
	it.base.DriveUnindexed(filterConsumer[T]{c, it.pred})
}

type filterConsumer[T any] struct {
	base Consumer[T]
	pred func(T) bool
}

func (c filterConsumer[T]) SplitAt(index int) (Consumer[T], Consumer[T], func()) {
	left, right, reduce := c.base.SplitAt(index)
	return filterConsumer[T]{left, c.pred}, filterConsumer[T]{right, c.pred}, reduce
}

func (c filterConsumer[T]) Folder() Folder[T] { return filterFolder[T]{c.base.Folder(), c.pred} }
func (c filterConsumer[T]) Full() bool        { return c.base.Full() }

type filterFolder[T any] struct {
	base Folder[T]
	pred func(T) bool
}

func (f filterFolder[T]) Consume(item T) {
	if f.pred(item) {
		f.base.Consume(item)
	}
}

func (f filterFolder[T]) Complete()  { f.base.Complete() }
func (f filterFolder[T]) Full() bool { return f.base.Full() }

// Enumerated pairs an item with its position in the iteration order.
type Enumerated[T any] struct {
	Index int
	Item  T
}

// Enumerate returns an iterator that yields every item of it together
// with its position.
func Enumerate[T any](it Indexed[T]) Indexed[Enumerated[T]] {
	return &enumerateIter[T]{it}
}

type enumerateIter[T any] struct {
	base Indexed[T]
}

func (it *enumerateIter[T]) DriveUnindexed(c Consumer[Enumerated[T]]) { Bridge[Enumerated[T]](it, c) }
func (it *enumerateIter[T]) Drive(c Consumer[Enumerated[T]])          { Bridge[Enumerated[T]](it, c) }
func (it *enumerateIter[T]) UpperBound() int                          { return it.base.Len() }
func (it *enumerateIter[T]) Len() int                                 { return it.base.Len() }

func (it *enumerateIter[T]) WithProducer(cb ProducerCallback[Enumerated[T]]) {
	it.base.WithProducer(func(p Producer[T]) {
		cb(&enumerateProducer[T]{p, 0})
	})
}

type enumerateProducer[T any] struct {
	base   Producer[T]
	offset int
}

func (p *enumerateProducer[T]) Next() (result Enumerated[T], ok bool) {
	result.Item, ok = p.base.Next()
	if ok {
		result.Index = p.offset
		p.offset++
	}
	return
}

func (p *enumerateProducer[T]) Len() int           { return p.base.Len() }
func (p *enumerateProducer[T]) Cost(n int) float64 { return p.base.Cost(n) }
func (p *enumerateProducer[T]) MinLen() int        { return minLen(p.base) }
func (p *enumerateProducer[T]) MaxLen() int        { return maxLen(p.base) }

func (p *enumerateProducer[T]) SplitAt(index int) (Producer[Enumerated[T]], Producer[Enumerated[T]]) {
	left, right := p.base.SplitAt(index)
	return &enumerateProducer[T]{left, p.offset}, &enumerateProducer[T]{right, p.offset + index}
}

// WithMinLen returns an iterator whose sequentially drained parts have
// at least n items, unless the whole iterator has fewer items.
func WithMinLen[T any](it Indexed[T], n int) Indexed[T] {
	return &lenBoundsIter[T]{it, n, math.MaxInt}
}

// WithMaxLen returns an iterator whose sequentially drained parts have
// at most n items, unless this conflicts with a minimum length.
func WithMaxLen[T any](it Indexed[T], n int) Indexed[T] {
	return &lenBoundsIter[T]{it, 1, n}
}

type lenBoundsIter[T any] struct {
	base     Indexed[T]
	min, max int
}

func (it *lenBoundsIter[T]) DriveUnindexed(c Consumer[T]) { Bridge[T](it, c) }
func (it *lenBoundsIter[T]) Drive(c Consumer[T])          { Bridge[T](it, c) }
func (it *lenBoundsIter[T]) UpperBound() int              { return it.base.Len() }
func (it *lenBoundsIter[T]) Len() int                     { return it.base.Len() }

func (it *lenBoundsIter[T]) WithProducer(cb ProducerCallback[T]) {
	it.base.WithProducer(func(p Producer[T]) {
		cb(&lenBoundsProducer[T]{p, it.min, it.max})
	})
}

type lenBoundsProducer[T any] struct {
	Producer[T]
	min, max int
}

func (p *lenBoundsProducer[T]) MinLen() int {
	if n := minLen(p.Producer); n > p.min {
		return n
	}
	if p.min < 1 {
		return 1
	}
	return p.min
}

func (p *lenBoundsProducer[T]) MaxLen() int {
	if n := maxLen(p.Producer); n < p.max {
		return n
	}
	if p.max < 1 {
		return 1
	}
	return p.max
}

func (p *lenBoundsProducer[T]) SplitAt(index int) (Producer[T], Producer[T]) {
	left, right := p.Producer.SplitAt(index)
	return &lenBoundsProducer[T]{left, p.min, p.max}, &lenBoundsProducer[T]{right, p.min, p.max}
}
