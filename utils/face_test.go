package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorRoundTrip(t *testing.T) {
	in := []float64{0.125, -0.5, 0.333}
	enc, err := EncodeDescriptor(in)
	require.NoError(t, err)

	out, err := DecodeDescriptor(enc)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = EncodeDescriptor(nil)
	assert.Error(t, err)

	_, err = DecodeDescriptor("not json")
	assert.Error(t, err)
}

func TestDescriptorDistance(t *testing.T) {
	a := []float64{1, 2, 3}
	assert.Zero(t, DescriptorDistance(a, a))

	b := []float64{1, 2, 4}
	assert.InDelta(t, 1.0, DescriptorDistance(a, b), 0.0001)

	// mismatched or empty vectors never match
	assert.True(t, math.IsInf(DescriptorDistance(a, []float64{1, 2}), 1))
	assert.True(t, math.IsInf(DescriptorDistance(nil, nil), 1))
}
