package par

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/exascience/ndpar/ndarray"
	"github.com/exascience/ndpar/parallel"
	"github.com/exascience/ndpar/sequential"
)

type rowProducer = parallel.Producer[ndarray.View[int]]

func makeRows(rows, cols int) *ndarray.Array[int] {
	data := make([]int, rows*cols)
	for i := range data {
		data[i] = i
	}
	a, err := ndarray.FromSlice(data, rows, cols)
	if err != nil {
		panic(err)
	}
	return a
}

func values(it sequential.Iterator[ndarray.View[int]]) [][]int {
	result := [][]int{}
	sequential.ForEach(it, func(v ndarray.View[int]) {
		result = append(result, v.Values())
	})
	return result
}

func withProducer(a *ndarray.Array[int], f func(p rowProducer)) {
	Outer(a).WithProducer(func(p rowProducer) { f(p) })
}

// splitRandomly splits p at random indices until depth is reached, and
// returns the leaves from left to right.
func splitRandomly(p rowProducer, depth int, rng *rand.Rand) []rowProducer {
	if depth == 0 {
		return []rowProducer{p}
	}
	left, right := p.SplitAt(rng.Intn(p.Len() + 1))
	return append(splitRandomly(left, depth-1, rng), splitRandomly(right, depth-1, rng)...)
}

func TestLen(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			a := makeRows(n, 3)
			p := Outer(a)
			require.Equal(t, n, p.Len())
			require.Equal(t, n, p.UpperBound())
			require.Equal(t, n, sequential.Count[ndarray.View[int]](a.OuterIter()))
			require.Equal(t, n, parallel.Count[ndarray.View[int]](p))
		})
	}
}

func TestEmpty(t *testing.T) {
	a := ndarray.New[int](0, 4)
	p := Outer(a)
	require.Equal(t, 0, p.Len())
	var calls int32
	rows := parallel.Collect(parallel.Map[ndarray.View[int]](p, func(v ndarray.View[int]) []int {
		atomic.AddInt32(&calls, 1)
		return v.Values()
	}))
	require.Empty(t, rows)
	require.Zero(t, calls)
}

func TestOrderPreservation(t *testing.T) {
	a := makeRows(37, 2)
	want := values(a.OuterIter())
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 100; round++ {
		var got [][]int
		withProducer(a, func(p rowProducer) {
			for _, leaf := range splitRandomly(p, 1+round%5, rng) {
				got = append(got, values(leaf)...)
			}
		})
		require.Equal(t, want, got)
	}
}

func TestPartition(t *testing.T) {
	const n = 9
	a := makeRows(n, 2)
	want := values(a.OuterIter())
	for i := 0; i <= n; i++ {
		withProducer(a, func(p rowProducer) {
			left, right := p.SplitAt(i)
			require.Equal(t, i, left.Len())
			require.Equal(t, n-i, right.Len())
			require.Equal(t, want[:i], values(left))
			require.Equal(t, want[i:], values(right))
		})
	}
}

func TestRetired(t *testing.T) {
	a := makeRows(8, 2)

	withProducer(a, func(p rowProducer) {
		p.SplitAt(4)
		require.PanicsWithValue(t, "use of retired producer", func() { p.Next() })
		require.PanicsWithValue(t, "use of retired producer", func() { p.SplitAt(0) })
	})

	withProducer(a, func(p rowProducer) {
		require.PanicsWithValue(t, "split index out of range: 9 not in 0:8", func() { p.SplitAt(9) })
		require.PanicsWithValue(t, "split index out of range: -1 not in 0:8", func() { p.SplitAt(-1) })
	})

	p := Outer(a)
	parallel.ForEach[ndarray.View[int]](p, func(ndarray.View[int]) {})
	require.PanicsWithValue(t, "parallel iterator already driven", func() {
		parallel.ForEach[ndarray.View[int]](p, func(ndarray.View[int]) {})
	})
}

func TestDisjointMutation(t *testing.T) {
	a := ndarray.New[int](64, 16)

	t.Run("Split", func(t *testing.T) {
		OuterMut(a).WithProducer(func(p parallel.Producer[ndarray.ViewMut[int]]) {
			left, right := p.SplitAt(32)
			var g errgroup.Group
			for sentinel, half := range []parallel.Producer[ndarray.ViewMut[int]]{left, right} {
				half, sentinel := half, -1-sentinel
				g.Go(func() error {
					for row, ok := half.Next(); ok; row, ok = half.Next() {
						for col := 0; col < 16; col++ {
							if row.At(col) != 0 {
								return errors.New("overlapping write")
							}
							row.Set(sentinel, col)
						}
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())
		})
		for i, x := range a.Values() {
			if i < 32*16 {
				require.Equal(t, -1, x)
			} else {
				require.Equal(t, -2, x)
			}
		}
	})

	t.Run("Bridge", func(t *testing.T) {
		parallel.ForEach(
			parallel.Enumerate[ndarray.ViewMut[int]](OuterMut(a)),
			func(row parallel.Enumerated[ndarray.ViewMut[int]]) {
				row.Item.Fill(row.Index)
			},
		)
		it := a.OuterIter()
		for i := 0; i < 64; i++ {
			row, _ := it.Next()
			for _, x := range row.Values() {
				require.Equal(t, i, x)
			}
		}
	})
}

func TestSumAcrossThreads(t *testing.T) {
	data := make([]float64, 8*3)
	for i := range data {
		data[i] = float64(i*i%17) + 0.5
	}
	a := ndarray.FromDense(mat.NewDense(8, 3, data))
	want := sequential.Fold[ndarray.View[float64]](a.OuterIter(), 0.0, func(sum float64, row ndarray.View[float64]) float64 {
		return sum + row.At(0)
	})

	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(0))
	for _, threads := range []int{1, 2, 8} {
		t.Run(fmt.Sprint(threads), func(t *testing.T) {
			runtime.GOMAXPROCS(threads)
			got := parallel.Sum(parallel.Map[ndarray.View[float64]](Outer(a), func(row ndarray.View[float64]) float64 {
				return row.At(0)
			}))
			require.Equal(t, want, got)
		})
	}
}

func TestWithCost(t *testing.T) {
	a := makeRows(100, 1)
	var calls int32
	p := Outer(a).WithCost(func(n int) float64 {
		atomic.AddInt32(&calls, 1)
		return 1e9
	})
	got := parallel.Collect(parallel.Map[ndarray.View[int]](p, func(v ndarray.View[int]) int { return v.At(0) }))
	require.Len(t, got, 100)
	for i, x := range got {
		require.Equal(t, i, x)
	}
	require.NotZero(t, atomic.LoadInt32(&calls))
}

func TestColumns(t *testing.T) {
	a := makeRows(4, 6)
	sums := parallel.Collect(parallel.Map[ndarray.View[int]](Axis(a.AxisIter(1)), ndarray.Sum[int]))
	require.Equal(t, []int{36, 40, 44, 48, 52, 56}, sums)
}

func TestPanicPropagation(t *testing.T) {
	a := makeRows(100, 1)
	require.PanicsWithValue(t, "row 73", func() {
		parallel.ForEach[ndarray.View[int]](Outer(a), func(row ndarray.View[int]) {
			if x := row.At(0); x == 73 {
				panic(fmt.Sprintf("row %v", x))
			}
		})
	})
}
