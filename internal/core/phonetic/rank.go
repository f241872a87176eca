package phonetic

import "sort"

// Candidate is one stored name to rank. Key may be precomputed, Rank fills it when empty
type Candidate struct {
	ID   int64
	Name string
	Key  string
}

// Ranked is a candidate with its scores against the target
type Ranked struct {
	Candidate
	Difference int
	Similarity float64
}

// Score folds difference and similarity into one ordering key
func (r Ranked) Score() float64 { return float64(r.Difference) + r.Similarity }

// Rank scores candidates against target and orders them by Difference desc,
// then Similarity desc, then ID asc. The input slice is not modified
func Rank(candidates []Candidate, target string) []Ranked {
	nt := Normalize(target)
	kt := Key(target)

	out := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		if c.Key == "" {
			c.Key = Key(c.Name)
		}
		out = append(out, Ranked{
			Candidate:  c,
			Difference: keyDifference(kt, c.Key),
			Similarity: similarityNormalized(nt, Normalize(c.Name)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Difference != b.Difference {
			return a.Difference > b.Difference
		}
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		return a.ID < b.ID
	})
	return out
}
