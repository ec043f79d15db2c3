package sched

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeightOfBaseline(t *testing.T) {
	require.Equal(t, int64(1024), WeightOf(0))
}

func TestWeightOfMonotoneDecreasing(t *testing.T) {
	for nice := NiceMin; nice < NiceMax; nice++ {
		require.Greater(t, WeightOf(nice), WeightOf(nice+1),
			"weight must strictly decrease from nice %d to %d", nice, nice+1)
	}
}

func TestWeightOfSaturatesOutOfRange(t *testing.T) {
	require.Equal(t, WeightOf(NiceMin), WeightOf(-100))
	require.Equal(t, WeightOf(NiceMax), WeightOf(100))
}

func TestWeightOfKnownValues(t *testing.T) {
	require.Equal(t, int64(88761), WeightOf(-20))
	require.Equal(t, int64(9548), WeightOf(-10))
	require.Equal(t, int64(3121), WeightOf(-5))
	require.Equal(t, int64(110), WeightOf(10))
	require.Equal(t, int64(15), WeightOf(19))
}
