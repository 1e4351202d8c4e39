// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package recommend

import "fmt"

// Matrix is a dense, row-major square similarity matrix. Row i holds the
// similarity of entry i to every other entry; Data[i*N+j] is sim(i, j).
type Matrix struct {
	N    int
	Data []float64
}

// NewMatrix validates the backing slice against the declared size.
// The size must be positive and the slice must hold exactly N*N values.
func NewMatrix(n int, data []float64) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("matrix size must be positive, got %d", n)
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("matrix data length %d does not match %dx%d", len(data), n, n)
	}
	return &Matrix{N: n, Data: data}, nil
}

// Row returns the similarity row for entry i. The returned slice aliases
// the matrix storage and must not be modified.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.N : (i+1)*m.N]
}

// At returns sim(i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.N+j]
}
