package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreshold(t *testing.T) {
	assert.Equal(t, uint64(72), threshold(0.8))
	assert.Greater(t, threshold(0.1), threshold(0.8))
	assert.GreaterOrEqual(t, threshold(1), uint64(50))
}

func TestIterations(t *testing.T) {
	assert.Equal(t, 67, iterations(0.2))
	assert.Greater(t, iterations(0.01), iterations(0.2))
	assert.Equal(t, 1, iterations(3))
}

func TestMedianRescalesToSmallestHash(t *testing.T) {
	//** Arrange
	cells := []uint64{40, 30, 50}
	hashes := []uint64{3, 4, 3}

	//** Act
	result := median(cells, hashes)

	//** Assert
	// Rescaled to hash 3 the measurements are 40, 60 and 50
	assert.Equal(t, Result{CellCount: 50, HashCount: 3}, result)
}

func TestMedianKeepsCellWithinSixtyFourBits(t *testing.T) {
	result := median([]uint64{1, 1 << 40, 1 << 40}, []uint64{0, 40, 40})

	assert.Equal(t, Result{CellCount: 1 << 63, HashCount: 17}, result)
}
