package vector

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"nil a", nil, []float64{1, 2}, 0},
		{"nil b", []float64{1, 2}, nil, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"zero norm a", []float64{0, 0}, []float64{1, 2}, 0},
		{"zero norm b", []float64{1, 2}, []float64{0, 0}, 0},
		{"scaled", []float64{2, 4, 6}, []float64{1, 2, 3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineBounds(t *testing.T) {
	// 任意输入结果都必须落在 [-1, 1]
	vecs := [][]float64{
		{0.1, -0.9, 3.3},
		{1e9, 1e9, 1e9},
		{-1e-9, 2e-9, -3e-9},
		{5, 5, 5},
	}
	for _, a := range vecs {
		for _, b := range vecs {
			got := Cosine(a, b)
			if got < -1 || got > 1 {
				t.Errorf("Cosine(%v, %v) = %v out of [-1, 1]", a, b, got)
			}
		}
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name string
		vecs [][]float64
		want []float64
	}{
		{"empty", nil, nil},
		{"single", [][]float64{{1, 2, 3}}, []float64{1, 2, 3}},
		{"pair", [][]float64{{0, 0}, {2, 4}}, []float64{1, 2}},
		{"skips mismatched", [][]float64{{1, 1}, {9, 9, 9}, {3, 3}}, []float64{2, 2}},
		{"skips empty", [][]float64{nil, {4, 6}}, []float64{4, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Centroid(tt.vecs)
			if len(got) != len(tt.want) {
				t.Fatalf("Centroid() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Centroid()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
