package keywords

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	// candidateTopN phrases survive the embedding ranking before the
	// filter policy runs.
	candidateTopN = 20
	// mmrDiversity trades similarity for spread so the five final phrases
	// are not near-duplicates of each other.
	mmrDiversity = 0.7
	// maxCandidates bounds the embedding batch for very large pools.
	maxCandidates = 512
	// seedWeight blends the seed centroid into the document vector.
	seedWeight = 0.5

	MaxKeywords = 5
)

var wordPattern = regexp.MustCompile(`[a-zA-Z0-9']+`)

// Extractor produces representative keyword phrases for one polarity pool
// using embedding similarity against the pooled text.
type Extractor struct {
	embedder Embedder
}

func NewExtractor(embedder Embedder) *Extractor {
	return &Extractor{embedder: embedder}
}

// Extract returns up to MaxKeywords cleaned phrases for the pool. Positive
// pools are seed-biased toward the technical-concept vocabulary and pass
// the stricter positive-bucket filter; negative pools use the generic
// relevance seeds. An empty pool returns an empty result without touching
// the model.
func (e *Extractor) Extract(pool []string, positiveBucket bool) ([]string, error) {
	if len(pool) == 0 {
		return nil, nil
	}

	blob := strings.Join(pool, " ")
	candidates := candidatePhrases(blob)
	if len(candidates) == 0 {
		return nil, nil
	}

	seeds := genericSeeds
	if positiveBucket {
		seeds = techConcepts
	}

	inputs := make([]string, 0, len(candidates)+2)
	inputs = append(inputs, blob, strings.Join(seeds, " "))
	inputs = append(inputs, candidates...)

	vectors, err := e.embedder.Embed(inputs)
	if err != nil {
		return nil, fmt.Errorf("[KeywordExtractor] candidate embedding failed: %w", err)
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("[KeywordExtractor] embedder returned %d vectors for %d inputs",
			len(vectors), len(inputs))
	}

	target := blend(vectors[0], vectors[1], seedWeight)
	ranked := maximalMarginalRelevance(target, candidates, vectors[2:], candidateTopN)

	return filterKeywords(ranked, positiveBucket), nil
}

// candidatePhrases generates unique 1-2 word n-grams from the blob, with
// function words removed before n-gram construction.
func candidatePhrases(blob string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(blob), -1)

	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, "'")
		if t == "" || isEnglishStopword(t) {
			continue
		}
		tokens = append(tokens, t)
	}

	seen := make(map[string]struct{}, len(tokens)*2)
	var candidates []string
	add := func(phrase string) {
		if _, ok := seen[phrase]; ok {
			return
		}
		seen[phrase] = struct{}{}
		candidates = append(candidates, phrase)
	}

	for i, tok := range tokens {
		add(tok)
		if i+1 < len(tokens) {
			add(tok + " " + tokens[i+1])
		}
		if len(candidates) >= maxCandidates {
			break
		}
	}
	return candidates
}

// maximalMarginalRelevance ranks candidates by similarity to the target
// vector while penalizing similarity to already-selected phrases.
func maximalMarginalRelevance(target []float32, candidates []string, vectors [][]float32, topN int) []string {
	n := len(candidates)
	if n == 0 {
		return nil
	}
	if topN > n {
		topN = n
	}

	targetSim := make([]float64, n)
	for i, v := range vectors {
		targetSim[i] = cosineSimilarity(target, v)
	}

	selected := make([]int, 0, topN)
	remaining := make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		remaining[i] = struct{}{}
	}

	// First pick is pure similarity.
	best := -1
	for i := range remaining {
		if best == -1 || targetSim[i] > targetSim[best] {
			best = i
		}
	}
	selected = append(selected, best)
	delete(remaining, best)

	for len(selected) < topN && len(remaining) > 0 {
		best = -1
		bestScore := math.Inf(-1)
		for i := range remaining {
			maxSelectedSim := math.Inf(-1)
			for _, s := range selected {
				if sim := cosineSimilarity(vectors[i], vectors[s]); sim > maxSelectedSim {
					maxSelectedSim = sim
				}
			}
			score := (1-mmrDiversity)*targetSim[i] - mmrDiversity*maxSelectedSim
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		selected = append(selected, best)
		delete(remaining, best)
	}

	out := make([]string, 0, len(selected))
	for _, i := range selected {
		out = append(out, candidates[i])
	}
	return out
}

func blend(doc, seed []float32, weight float64) []float32 {
	if len(seed) != len(doc) {
		return doc
	}
	out := make([]float32, len(doc))
	for i := range doc {
		out[i] = float32((1-weight)*float64(doc[i]) + weight*float64(seed[i]))
	}
	return out
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
