//go:generate go run go.uber.org/mock/mockgen -source=embedder.go -destination=../mocks/mock_embedder.go -package=mocks
package ai

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// DefaultEmbeddingSize is the vector dimension used when no remote
// embedding endpoint is configured.
const DefaultEmbeddingSize = 256

type IEmbedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}

// HashingEmbedder transforms a raw string into a fixed-size numerical vector.
// It uses the "Hashing Trick" (Feature Hashing) to map words to vector indices,
// then L2-normalizes so cosine scoring reduces to a dot product. It needs no
// external model, which keeps ingestion working when the remote embedding
// endpoint is unreachable.
type HashingEmbedder struct {
	size int
}

func NewHashingEmbedder(size int) *HashingEmbedder {
	if size <= 0 {
		size = DefaultEmbeddingSize
	}
	return &HashingEmbedder{size: size}
}

func (h *HashingEmbedder) Dimension() int {
	return h.size
}

func (h *HashingEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, h.size)

	// 1. Minimal preprocessing: Just lowercase.
	// We KEEP punctuation because "x-ray" is a different signal than "xray".
	// We KEEP numbers because "t2" is different from "t".
	cleanText := strings.ToLower(text)

	// 2. Tokenization and hashing.
	words := strings.Fields(cleanText)
	for _, w := range words {
		hash := fnv.New32a()
		hash.Write([]byte(w))
		idx := int(hash.Sum32()) % h.size

		// Binary feature (1.0 if present) or count.
		// For short medical context strings, 1.0 is often more robust.
		vec[idx] = 1.0
	}

	// 3. L2 normalization.
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when either is
// empty, zero, or the dimensions differ.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
