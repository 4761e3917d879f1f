// Package bm25 implements the Okapi BM25 relevance-ranking formula over
// pre-computed term frequencies and corpus statistics.
package bm25

import "math"

// Default saturation (k1) and length-normalization (b) parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Scorer computes BM25 scores given a fixed k1/b pair.
type Scorer struct {
	K1 float64
	B  float64
}

// NewScorer returns a Scorer with the given parameters.
func NewScorer(k1, b float64) *Scorer {
	return &Scorer{K1: k1, B: b}
}

// DefaultScorer returns a Scorer using the standard k1=1.5, b=0.75 defaults.
func DefaultScorer() *Scorer {
	return &Scorer{K1: DefaultK1, B: DefaultB}
}

// Stats carries the corpus-wide statistics BM25 needs: per-term document
// frequency and the total document count, plus the average document length
// used for length normalization.
type Stats struct {
	DocFreq    map[string]int
	TotalDocs  int
	AvgDocLen  float64
}

// Score computes the BM25 relevance score for a document given its term
// frequencies (D), its length (|D|), and the shared corpus Stats. Query
// terms absent from the document (tf=0) contribute nothing. A degenerate
// corpus (AvgDocLen == 0) never divides by zero: the length-normalization
// factor is defined as 1 in that case.
func (s *Scorer) Score(queryTerms []string, docTF map[string]int, docLen int, stats Stats) float64 {
	var total float64
	for _, term := range queryTerms {
		tf := docTF[term]
		if tf == 0 {
			continue
		}
		idf := s.idf(stats.DocFreq[term], stats.TotalDocs)
		total += idf * s.normalizedTF(tf, docLen, stats.AvgDocLen)
	}
	return total
}

// idf computes the inverse document frequency for a term.
// idf(t) = ln( (N - df + 0.5) / (df + 0.5) + 1 ), always non-negative.
func (s *Scorer) idf(df, totalDocs int) float64 {
	n := float64(totalDocs)
	d := float64(df)
	ratio := (n - d + 0.5) / (d + 0.5)
	if ratio < 0 {
		ratio = 0
	}
	return math.Log(ratio + 1)
}

// normalizedTF computes tf · (k1+1) / (tf + k1 · (1 - b + b·|D|/avg)).
func (s *Scorer) normalizedTF(tf, docLen int, avgDocLen float64) float64 {
	lengthNorm := 1.0
	if avgDocLen > 0 {
		lengthNorm = 1 - s.B + s.B*(float64(docLen)/avgDocLen)
	}
	fTF := float64(tf)
	return fTF * (s.K1 + 1) / (fTF + s.K1*lengthNorm)
}
