package calc

import "math"

// Allocation is the split of a per-group size under an unequal allocation
// ratio.
type Allocation struct {
	N1    int     `json:"n1"`
	N2    int     `json:"n2"`
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

// AdjustForAttrition inflates n so that n survive an expected dropout rate.
// Rates outside (0, 1) leave n unchanged. It reports false when the inflated
// size exceeds MaxSize.
func AdjustForAttrition(n int, dropoutRate float64) (int, bool) {
	if math.IsNaN(dropoutRate) || dropoutRate <= 0 || dropoutRate >= 1 {
		return n, true
	}
	return sizeOf(float64(n) / (1 - dropoutRate))
}

// ApplyAllocationRatio converts a per-group size into two group sizes where
// group 2 is ratio times group 1. A non-positive ratio means equal groups.
// It reports false when either group is not finite or exceeds MaxSize.
func ApplyAllocationRatio(nPerGroup, ratio float64) (Allocation, bool) {
	if math.IsNaN(ratio) || ratio <= 0 {
		ratio = 1
	}
	n1, ok1 := sizeOf(nPerGroup)
	n2, ok2 := sizeOf(nPerGroup * ratio)
	if !ok1 || !ok2 {
		return Allocation{}, false
	}
	return Allocation{N1: n1, N2: n2, Total: n1 + n2, Ratio: ratio}, true
}
