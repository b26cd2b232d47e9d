package internal

import (
	"fmt"
	"runtime"
)

// SplitBudget returns the number of times a range of n items is split
// in half before the splits are left to the cost model. The default
// takes runtime.GOMAXPROCS(0) into account. If maxLen > 0, the budget
// is raised so that no part ends up with more than maxLen items.
func SplitBudget(n, maxLen int) (splits int) {
	if n < 0 {
		panic(fmt.Sprintf("invalid range size: %v", n))
	}
	splits = runtime.GOMAXPROCS(0)
	if maxLen > 0 {
		if s := n / maxLen; s > splits {
			splits = s
		}
	}
	return
}
