package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
)

// encodeVector packs an embedding as little-endian float32 bytes. Empty
// vectors are stored as NULL.
func encodeVector(vector []float32) []byte {
	if len(vector) == 0 {
		return nil
	}
	buf := make([]byte, len(vector)*4)
	for i, value := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(value))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(blob))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
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

// ErrNotIndexed indicates that the video has no embedded chunks to search.
var ErrNotIndexed = errors.New("store: video has no embedding index")

// Search ranks the video's chunks by cosine similarity to the query vector
// and returns the top k. Chunks without embeddings are ignored.
func (s *Store) Search(ctx context.Context, videoID string, query []float32, k int) ([]SearchResult, error) {
	if len(query) == 0 {
		return nil, errors.New("store: empty query vector")
	}
	if k <= 0 {
		k = 3
	}

	chunks, err := s.loadChunks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		results = append(results, SearchResult{
			Chunk: chunk,
			Score: cosineSimilarity(query, chunk.Embedding),
		})
	}
	if len(results) == 0 {
		return nil, ErrNotIndexed
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}
