package vectorstore

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	chromem "github.com/philippgille/chromem-go"
)

// embeddingDim is the dimension of the local hashing embedder.
const embeddingDim = 384

// newHashingEmbedder returns a deterministic, fully local embedding function:
// each lowercased token is hashed into a fixed-size bucket vector which is
// then L2-normalized. It gives keyword-level similarity without any network
// or model dependency, which is all the collection wrapper needs.
func newHashingEmbedder() chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		vector := make([]float32, embeddingDim)

		for _, token := range tokenize(text) {
			h := fnv.New32a()
			h.Write([]byte(token))
			vector[h.Sum32()%embeddingDim]++
		}

		var norm float64
		for _, v := range vector {
			norm += float64(v) * float64(v)
		}
		if norm == 0 {
			// Zero vectors break cosine similarity; pin empty inputs to a
			// fixed unit vector instead.
			vector[0] = 1
			return vector, nil
		}

		scale := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= scale
		}
		return vector, nil
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
