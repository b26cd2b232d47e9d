package parallel

import (
	"math"
	"sync"

	"github.com/exascience/ndpar/internal"
)

// CostThreshold is the producer cost above which a range is still
// split after the initial split budget is used up.
const CostThreshold = 10 * 1024.0

// Bridge drives c with the producer of it. It is the generic
// implementation of DriveUnindexed and Drive for Indexed iterators.
func Bridge[T any](it Indexed[T], c Consumer[T]) {
	n := it.Len()
	it.WithProducer(func(p Producer[T]) {
		BridgeProducerConsumer(n, p, c)
	})
}

// BridgeProducerConsumer recursively splits p, which yields n items,
// together with c, and drains the resulting parts in parallel.
//
// If the consumer function panics in one or more parts, the
// corresponding goroutines recover the panics, and
// BridgeProducerConsumer eventually panics with the left-most
// recovered panic value.
func BridgeProducerConsumer[T any](n int, p Producer[T], c Consumer[T]) {
	bridge(n, p, c, newSplitter(n, minLen(p), maxLen(p)))
}

func bridge[T any](n int, p Producer[T], c Consumer[T], s splitter) {
	if c.Full() {
		c.Folder().Complete()
		return
	}
	if s.trySplit(n, p.Cost(n)) {
		mid := n / 2
		lp, rp := p.SplitAt(mid)
		lc, rc, reduce := c.SplitAt(mid)
		join(
			func() { bridge(mid, lp, lc, s) },
			func() { bridge(n-mid, rp, rc, s) },
		)
		reduce()
		return
	}
	f := c.Folder()
	for !f.Full() {
		item, ok := p.Next()
		if !ok {
			break
		}
		f.Consume(item)
	}
	f.Complete()
}

// join invokes left and right in parallel, and returns when both have
// terminated. If either panics, join panics with the left-most panic
// value once both have terminated.
func join(left, right func()) {
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = recover()
			wg.Done()
		}()
		right()
	}()
	func() {
		defer wg.Wait()
		left()
	}()
	if p != nil {
		panic(p)
	}
}

// splitter decides how far a range is divided. It is copied into both
// halves of a split.
type splitter struct {
	splits int
	min    int
}

func newSplitter(n, minLen, maxLen int) splitter {
	if maxLen == math.MaxInt {
		maxLen = 0
	}
	return splitter{
		splits: internal.SplitBudget(n, maxLen),
		min:    minLen,
	}
}

func (s *splitter) trySplit(n int, cost float64) bool {
	if n/2 < s.min {
		return false
	}
	if s.splits > 0 {
		s.splits /= 2
		return true
	}
	return cost > CostThreshold
}

func minLen[T any](p Producer[T]) int {
	if b, ok := p.(LenBounds); ok {
		return b.MinLen()
	}
	return 1
}

func maxLen[T any](p Producer[T]) int {
	if b, ok := p.(LenBounds); ok {
		return b.MaxLen()
	}
	return math.MaxInt
}
