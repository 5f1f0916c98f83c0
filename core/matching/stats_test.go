package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeDistribution(t *testing.T) {
	s := Summarize([]Match{{Total: 87.5}, {Total: 62}, {Total: 20}})
	require.InDelta(t, 87.5, s.Top, 1e-9)
	require.InDelta(t, 56.5, s.Mean, 1e-9)
	// Sample standard deviation of {87.5, 62, 20}.
	require.InDelta(t, 34.0845, s.StdDev, 1e-3)
}

func TestSummarizeSingleMatch(t *testing.T) {
	s := Summarize([]Match{{Total: 42}})
	require.Equal(t, 42.0, s.Top)
	require.Equal(t, 42.0, s.Mean)
	require.Zero(t, s.StdDev)
}
