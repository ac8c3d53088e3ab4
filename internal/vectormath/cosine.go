// Package vectormath provides the similarity primitives shared by the
// vector index implementations.
package vectormath

import (
	"math"
	"sort"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// NearestK scores every document against the query and returns the k
// closest, highest similarity first. Ties keep corpus order, so results
// are deterministic for a fixed index and query.
func NearestK(query []float32, docs []domain.Document, embeddings [][]float32, k int) []domain.Match {
	matches := make([]domain.Match, 0, len(docs))
	for i := range docs {
		matches = append(matches, domain.Match{
			Document:   docs[i],
			Similarity: CosineSimilarity(query, embeddings[i]),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if k > 0 && k < len(matches) {
		matches = matches[:k]
	}
	return matches
}
