package parallel

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeSlice(size int) []int {
	result := make([]int, size)
	for i := range result {
		result[i] = i
	}
	return result
}

// leafConsumer records the number of items of every sequentially
// drained part.
type leafConsumer struct {
	mu    *sync.Mutex
	sizes *[]int
}

func (c leafConsumer) SplitAt(int) (Consumer[int], Consumer[int], func()) { return c, c, noReduce }
func (c leafConsumer) Folder() Folder[int]                                { return &leafFolder{c: c} }
func (c leafConsumer) Full() bool                                         { return false }

type leafFolder struct {
	c leafConsumer
	n int
}

func (f *leafFolder) Consume(int) { f.n++ }
func (f *leafFolder) Full() bool  { return false }

func (f *leafFolder) Complete() {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	*f.c.sizes = append(*f.c.sizes, f.n)
}

func leafSizes(it Iterator[int]) []int {
	var sizes []int
	it.DriveUnindexed(leafConsumer{new(sync.Mutex), &sizes})
	return sizes
}

func TestCollect(t *testing.T) {
	s := makeSlice(10000)

	t.Run("Slice", func(t *testing.T) {
		require.Equal(t, s, Collect[int](Slice(s)))
	})

	t.Run("Map", func(t *testing.T) {
		got := Collect(Map(Slice(s), func(i int) int { return 2 * i }))
		for i, x := range got {
			require.Equal(t, 2*i, x)
		}
	})

	t.Run("Filter", func(t *testing.T) {
		got := Collect(Filter(Slice(s), func(i int) bool { return i%3 == 0 }))
		require.Len(t, got, 3334)
		for i, x := range got {
			require.Equal(t, 3*i, x)
		}
	})

	t.Run("MapAfterFilter", func(t *testing.T) {
		got := Collect(Map(Filter(Slice(s), func(i int) bool { return i%2 == 1 }), func(i int) int { return -i }))
		require.Len(t, got, 5000)
		for i, x := range got {
			require.Equal(t, -(2*i + 1), x)
		}
	})

	t.Run("Enumerate", func(t *testing.T) {
		got := Collect[Enumerated[int]](Enumerate(Slice(s)))
		require.Len(t, got, len(s))
		for i, e := range got {
			require.Equal(t, i, e.Index)
			require.Equal(t, i, e.Item)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		require.Empty(t, Collect[int](Slice([]int(nil))))
		require.Empty(t, Collect(Filter(Slice([]int(nil)), func(int) bool { return true })))
	})
}

func TestReduce(t *testing.T) {
	s := makeSlice(12345)
	require.Equal(t, 12345*12344/2, Sum[int](Slice(s)))
	require.Equal(t, 12345, Count[int](Slice(s)))
	require.Equal(t, 12344, Reduce[int](Slice(s), func() int { return -1 }, func(x, y int) int {
		if x > y {
			return x
		}
		return y
	}))
	require.Equal(t, 0, Sum[int](Slice([]int{})))
}

func TestLenBounds(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(0))
	runtime.GOMAXPROCS(4)

	t.Run("MaxLen", func(t *testing.T) {
		sizes := leafSizes(WithMaxLen(Slice(makeSlice(100)), 1))
		require.Len(t, sizes, 100)
		for _, n := range sizes {
			require.Equal(t, 1, n)
		}
	})

	t.Run("MinLen", func(t *testing.T) {
		sizes := leafSizes(WithMinLen(Slice(makeSlice(1000)), 10))
		var total int
		for _, n := range sizes {
			require.GreaterOrEqual(t, n, 10)
			total += n
		}
		require.Equal(t, 1000, total)
	})

	t.Run("NoSplit", func(t *testing.T) {
		require.Equal(t, []int{1000}, leafSizes(WithMinLen(Slice(makeSlice(1000)), 1000)))
	})

	t.Run("Map", func(t *testing.T) {
		it := Map(WithMaxLen(Slice(makeSlice(64)), 4), func(i int) int { return i })
		for _, n := range leafSizes(it) {
			require.LessOrEqual(t, n, 4)
		}
	})

	t.Run("Default", func(t *testing.T) {
		sizes := leafSizes(Slice(makeSlice(1000)))
		require.Greater(t, len(sizes), 1)
		var total int
		for _, n := range sizes {
			total += n
		}
		require.Equal(t, 1000, total)
	})
}

func TestSplitter(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(0))
	runtime.GOMAXPROCS(2)

	s := newSplitter(100, 1, 0)
	require.Equal(t, 2, s.splits)
	require.True(t, s.trySplit(100, 100))
	require.True(t, s.trySplit(50, 50))
	require.False(t, s.trySplit(25, 25))
	require.True(t, s.trySplit(25, CostThreshold+1))
	require.False(t, s.trySplit(1, CostThreshold+1))

	require.Equal(t, 50, newSplitter(100, 1, 2).splits)
}

func TestPanic(t *testing.T) {
	require.PanicsWithValue(t, "item 500", func() {
		ForEach(Slice(makeSlice(1000)), func(i int) {
			if i == 500 {
				panic("item 500")
			}
		})
	})
}

func TestJoin(t *testing.T) {
	var left, right bool
	join(func() { left = true }, func() { right = true })
	require.True(t, left)
	require.True(t, right)

	require.PanicsWithValue(t, "left", func() {
		join(func() { panic("left") }, func() { panic("right") })
	})
	require.PanicsWithValue(t, "right", func() {
		join(func() {}, func() { panic("right") })
	})
}

// shortIter reports one item more than its producer yields.
type shortIter struct {
	Indexed[int]
}

func (it shortIter) Len() int { return it.Indexed.Len() + 1 }

func (it shortIter) Drive(c Consumer[int]) { Bridge[int](it, c) }

func TestCollectLength(t *testing.T) {
	require.Panics(t, func() {
		Collect[int](shortIter{Slice(makeSlice(100))})
	})
}

func TestSliceProducer(t *testing.T) {
	it := Slice(makeSlice(10))
	require.Equal(t, 10, it.Len())
	it.WithProducer(func(p Producer[int]) {
		require.PanicsWithValue(t, "split index out of range: 11 not in 0:10", func() { p.SplitAt(11) })
		left, right := p.SplitAt(3)
		require.Equal(t, 3, left.Len())
		require.Equal(t, 7, right.Len())
		x, ok := right.Next()
		require.True(t, ok)
		require.Equal(t, 3, x)
	})
	require.PanicsWithValue(t, "parallel iterator already driven", func() {
		it.WithProducer(func(Producer[int]) {})
	})
}
