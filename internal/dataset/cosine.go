// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package dataset

import "math"

// cosineMatrix computes the pairwise cosine similarity of the given row
// vectors as a row-major n*n matrix. Zero vectors have similarity 0 with
// everything, including themselves.
func cosineMatrix(vectors [][]float64) []float64 {
	n := len(vectors)

	norms := make([]float64, n)
	for i, vec := range vectors {
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		norms[i] = math.Sqrt(sum)
	}

	sims := make([]float64, n*n)
	for i := 0; i < n; i++ {
		sims[i*n+i] = 1
		if norms[i] == 0 {
			sims[i*n+i] = 0
		}
		for j := i + 1; j < n; j++ {
			var dot float64
			for k, v := range vectors[i] {
				dot += v * vectors[j][k]
			}
			var sim float64
			if norms[i] > 0 && norms[j] > 0 {
				sim = dot / (norms[i] * norms[j])
			}
			sims[i*n+j] = sim
			sims[j*n+i] = sim
		}
	}
	return sims
}
