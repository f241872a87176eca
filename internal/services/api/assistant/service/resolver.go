package service

import (
	"strings"

	"devstreams/internal/core/phonetic"
	perr "devstreams/internal/platform/errors"
	"devstreams/internal/services/api/assistant/domain"
	catdom "devstreams/internal/services/api/catalog/domain"
)

// ErrNotFound means no catalog channel is close enough to the spoken name
var ErrNotFound = perr.New(perr.ErrorCodeNotFound, "channel not found")

// Resolver defaults
const (
	DefaultMinDifference = phonetic.KeyLen
	DefaultMinSimilarity = 0.3
)

// Resolver picks the catalog channel that best matches a spoken name
type Resolver struct {
	MinDifference int
	MinSimilarity float64
}

// NewResolver clamps thresholds into their valid ranges
func NewResolver(minDifference int, minSimilarity float64) Resolver {
	return Resolver{
		MinDifference: max(0, min(minDifference, phonetic.KeyLen)),
		MinSimilarity: max(0, min(minSimilarity, 1)),
	}
}

// Resolve ranks the catalog against spoken and returns the top candidate when
// it clears both thresholds. Blank input, an empty catalog or a weak match
// yield ErrNotFound
func (r Resolver) Resolve(spoken string, catalog []catdom.Channel) (domain.ResolvedMatch, error) {
	if strings.TrimSpace(spoken) == "" || phonetic.Normalize(spoken) == "" || len(catalog) == 0 {
		return domain.ResolvedMatch{}, ErrNotFound
	}

	cands := make([]phonetic.Candidate, len(catalog))
	byID := make(map[int64]catdom.Channel, len(catalog))
	for i, c := range catalog {
		cands[i] = phonetic.Candidate{ID: c.ID, Name: c.Name}
		byID[c.ID] = c
	}

	top := phonetic.Rank(cands, spoken)[0]
	if top.Difference < r.MinDifference || top.Similarity < r.MinSimilarity {
		return domain.ResolvedMatch{}, ErrNotFound
	}
	return domain.ResolvedMatch{Channel: byID[top.ID], Confidence: top.Score()}, nil
}
