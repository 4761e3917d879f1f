// Package embeddings implements the text/image embedding provider contract
// consumed (optionally) by vector-search callers, plus a deterministic stub
// suitable for tests and demos that need stable vectors without a real model.
//
// Grounded on original_source/searus_embeddings/src/lib.rs and
// src/embeddings/mod.rs (TextEmbedder / ImageEmbedder / StubTextEmbedder).
package embeddings

// TextEmbedder generates an embedding vector for text.
type TextEmbedder interface {
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
}

// ImageEmbedder generates an embedding vector for raw image bytes.
type ImageEmbedder interface {
	Embed(imageBytes []byte) ([]float32, error)
}
