// Package fuzzy implements Jaro-Winkler string similarity for the fuzzy
// searcher, adapted from the teacher pack's apoc/text JaroWinklerDistance
// (straga-Mimir_lite) and fitted with the length-ratio pruning and
// early-exit shortcuts the fuzzy searcher's scoring loop needs to stay
// cheap across a large candidate set.
package fuzzy

import "github.com/chewxy/math32"

// EarlyExitThreshold: once a candidate's similarity exceeds this, the
// fuzzy searcher may stop refining further and accept it as a match.
const EarlyExitThreshold = 0.95

// Similarity returns the Jaro-Winkler similarity of a and b in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	jaro := jaroSimilarity(a, b)
	if jaro == 0 {
		return 0
	}

	prefix := 0
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	if max > 4 {
		max = 4
	}
	for i := 0; i < max; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*0.1*(1.0-jaro)
}

func jaroSimilarity(a, b string) float64 {
	matchWindow := max(len(a), len(b))/2 - 1
	if matchWindow < 1 {
		matchWindow = 1
	}

	aMatches := make([]bool, len(a))
	bMatches := make([]bool, len(b))
	matches := 0

	for i := 0; i < len(a); i++ {
		start := i - matchWindow
		if start < 0 {
			start = 0
		}
		end := i + matchWindow + 1
		if end > len(b) {
			end = len(b)
		}
		for j := start; j < end; j++ {
			if bMatches[j] || a[i] != b[j] {
				continue
			}
			aMatches[i] = true
			bMatches[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0
	for i := 0; i < len(a); i++ {
		if !aMatches[i] {
			continue
		}
		for !bMatches[k] {
			k++
		}
		if a[i] != b[k] {
			transpositions++
		}
		k++
	}

	return (float64(matches)/float64(len(a)) +
		float64(matches)/float64(len(b)) +
		float64(matches-transpositions/2)/float64(matches)) / 3.0
}

// SkipByLengthRatio reports whether query and candidate differ in length
// enough that Jaro-Winkler similarity cannot plausibly be useful, letting
// the fuzzy searcher avoid scoring candidates with no realistic chance of
// matching. Uses math32 so the ratio check runs at float32 precision, the
// same width the searcher's downstream score aggregation uses.
func SkipByLengthRatio(query, candidate string) bool {
	qLen := math32.Abs(float32(len(query)))
	cLen := math32.Abs(float32(len(candidate)))
	diff := math32.Abs(qLen - cLen)
	longer := qLen
	if cLen > longer {
		longer = cLen
	}
	return diff > longer/2
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
