package math

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dot returns the dot product of the two vectors.
// The vectors must have the same length.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// Mean returns the average of the values, or 0 for an empty set.
func Mean(vv []float64) float64 {
	if len(vv) == 0 {
		return 0
	}
	return stat.Mean(vv, nil)
}

// Clamp bounds v into the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Uniform returns a generator of uniform values in [lo, hi) from a seeded source,
// so that repeated runs produce identical sequences.
func Uniform(seed uint64, lo, hi float64) func() float64 {
	u := distuv.Uniform{
		Min: lo,
		Max: hi,
		Src: rand.NewSource(seed),
	}
	return u.Rand
}

// UniformVec fills a new vector of the given size from the generator.
func UniformVec(n int, gen func() float64) []float64 {
	vec := make([]float64, n)
	for i := range vec {
		vec[i] = gen()
	}
	return vec
}

// UniformMat fills a new rows x cols matrix from the generator, row by row.
func UniformMat(rows, cols int, gen func() float64) [][]float64 {
	mat := make([][]float64, rows)
	for i := range mat {
		mat[i] = UniformVec(cols, gen)
	}
	return mat
}
