package embeddings

// DefaultDimension is the stub embedder's default vector width (384, per
// the source's StubTextEmbedder::default).
const DefaultDimension = 384

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
)

// StubEmbedder produces a deterministic, fixed-dimension vector from a
// hash of its input: the same text or image bytes always embeds to the
// same vector, which is what tests need without paying for a real model.
// The hash seeds a linear congruential generator that fills the vector.
type StubEmbedder struct {
	Dimension int
}

// NewStubEmbedder builds a stub embedder with the given dimension.
func NewStubEmbedder(dimension int) *StubEmbedder {
	return &StubEmbedder{Dimension: dimension}
}

// DefaultStubEmbedder builds a stub embedder at DefaultDimension.
func DefaultStubEmbedder() *StubEmbedder {
	return &StubEmbedder{Dimension: DefaultDimension}
}

// Embed implements TextEmbedder.
func (e *StubEmbedder) Embed(text string) ([]float32, error) {
	return deterministicVector(hashBytes([]byte(text)), e.Dimension), nil
}

// EmbedBatch implements TextEmbedder, embedding each text independently.
func (e *StubEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.Embed(text)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

// StubImageEmbedder mirrors StubEmbedder for raw image bytes.
type StubImageEmbedder struct {
	Dimension int
}

// NewStubImageEmbedder builds a stub image embedder with the given dimension.
func NewStubImageEmbedder(dimension int) *StubImageEmbedder {
	return &StubImageEmbedder{Dimension: dimension}
}

// DefaultStubImageEmbedder builds a stub image embedder at DefaultDimension.
func DefaultStubImageEmbedder() *StubImageEmbedder {
	return &StubImageEmbedder{Dimension: DefaultDimension}
}

// Embed implements ImageEmbedder.
func (e *StubImageEmbedder) Embed(imageBytes []byte) ([]float32, error) {
	return deterministicVector(hashBytes(imageBytes), e.Dimension), nil
}

// hashBytes is the base-31 polynomial hash the source's StubTextEmbedder
// folds over the input bytes, used here purely as a fast, well-distributed
// seed source for the LCG.
func hashBytes(data []byte) uint64 {
	var hash uint64
	for _, b := range data {
		hash = hash*31 + uint64(b)
	}
	return hash
}

// deterministicVector fills dimension entries in [0, 1) via a linear
// congruential generator seeded with seed.
func deterministicVector(seed uint64, dimension int) []float32 {
	vec := make([]float32, dimension)
	for i := range vec {
		seed = seed*lcgMultiplier + lcgIncrement
		val := float32((seed/65536)%32768) / 32768.0
		vec[i] = val
	}
	return vec
}
