// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package dataset

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// tokenize lowercases text and splits on any non-letter, non-digit rune.
// Single-character tokens are kept; the tag corpus contains meaningful short
// tokens like genre abbreviations.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// tfidfVectors converts documents into L2-normalized TF-IDF vectors over a
// shared vocabulary. IDF uses smoothing so terms present in every document
// still carry a non-zero weight:
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//
// Rows of the returned matrix are document vectors; the vocabulary is sorted
// for deterministic output.
func tfidfVectors(docs []string) [][]float64 {
	n := len(docs)
	tokens := make([][]string, n)
	df := make(map[string]int)

	for i, doc := range docs {
		tokens[i] = tokenize(doc)
		seen := make(map[string]bool, len(tokens[i]))
		for _, t := range tokens[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	for i, t := range vocab {
		index[t] = i
		idf[i] = math.Log(float64(1+n)/float64(1+df[t])) + 1
	}

	vectors := make([][]float64, n)
	for i := range docs {
		vec := make([]float64, len(vocab))
		for _, t := range tokens[i] {
			vec[index[t]] += idf[index[t]]
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors
}

// normalize scales vec to unit L2 norm in place. The zero vector is left
// unchanged.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
