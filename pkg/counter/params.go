package counter

import (
	"math"
	"math/big"
	"slices"

	"github.com/samber/lo"
)

// threshold is the largest cell size accepted by the hashing search for tolerance epsilon
func threshold(epsilon float64) uint64 {
	return uint64(1 + 9.84*(1+epsilon/(1+epsilon))*(1+1/epsilon)*(1+1/epsilon))
}

// iterations is the number of independent hash draws needed for confidence 1-delta
func iterations(delta float64) int {
	return max(1, int(math.Ceil(17*math.Log2(3/delta))))
}

// median rescales every (cell, hash) measurement to the smallest hash count and returns the median cell with that hash count
func median(cells []uint64, hashes []uint64) Result {
	minHash := lo.Min(hashes)
	scaled := make([]*big.Int, len(cells))
	for i := range cells {
		scaled[i] = new(big.Int).Lsh(new(big.Int).SetUint64(cells[i]), uint(hashes[i]-minHash))
	}
	slices.SortFunc(scaled, func(a, b *big.Int) int { return a.Cmp(b) })

	cell := scaled[len(scaled)/2]
	hash := minHash
	for cell.BitLen() > 64 {
		cell.Rsh(cell, 1)
		hash++
	}
	return Result{CellCount: cell.Uint64(), HashCount: hash}
}
