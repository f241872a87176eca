// Package phonetic matches spoken channel names against stored ones.
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition
// 3 Remove combining marks and format chars
// 4 Width fold fullwidth to ASCII
// 5 Case folding
// 6 Keep letters and digits only
package phonetic

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)), // strip accents left by decomposition
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
			cases.Fold(),
		)
	},
}

// Normalize folds s down to the comparable form used by Key and Similarity.
// Spaces, punctuation and symbols are dropped so "Dev.Chatter" and
// "dev chatter" normalize to the same string
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(ns))
	for _, r := range ns {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
