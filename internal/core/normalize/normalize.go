// Package normalize cleans operator typed item names so the same part
// typed twice lands in the same report bucket
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transform chains keep state, so each call borrows its own
var chains = sync.Pool{New: func() any {
	return transform.Chain(
		norm.NFKC,
		runes.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.In(unicode.Cc)),
		runes.Remove(runes.In(unicode.Cf)),
		width.Fold,
	)
}}

// ItemName applies NFKC, maps any whitespace to a space, drops control and
// format runes (zero width joiners and the like), folds fullwidth forms and
// collapses runs of spaces. Invalid UTF-8 is dropped first. Case is kept
func ItemName(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	t := chains.Get().(transform.Transformer)
	defer chains.Put(t)
	t.Reset()
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}
