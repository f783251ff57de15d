package utils

import (
	"encoding/json"
	"errors"
	"math"
)

// Face descriptors are the 128-float vectors produced by the browser capture
// library; two captures of the same person land within this distance.
const FaceMatchThreshold = 0.6

func EncodeDescriptor(d []float64) (string, error) {
	if len(d) == 0 {
		return "", errors.New("empty descriptor")
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeDescriptor(s string) ([]float64, error) {
	var d []float64
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, err
	}
	return d, nil
}

// DescriptorDistance is the euclidean distance between two descriptors.
// Mismatched lengths never match.
func DescriptorDistance(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
