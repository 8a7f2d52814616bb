// Package listfmt joins short lists of words the way a locale writes them in
// running text, following the CLDR "standard-short" list patterns.
package listfmt

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured or the configured one is
// not supported.
const DefaultLocale = "en-GB"

type pattern struct {
	// sep sits between all but the last two items.
	sep string
	// last sits between the final two items of a list of three or more.
	last string
	// pair joins a list of exactly two.
	pair string
	// beforeI replaces last and pair when the final item starts with an
	// "i" sound (Spanish "y" becomes "e": "fire e ice").
	beforeI string
}

var (
	supported = []language.Tag{
		language.BritishEnglish,
		language.English,
		language.German,
		language.French,
		language.Spanish,
		language.Italian,
		language.Dutch,
		language.Portuguese,
		language.Japanese,
	}
	patterns = []pattern{
		{sep: ", ", last: " and ", pair: " and "},
		{sep: ", ", last: ", & ", pair: " & "},
		{sep: ", ", last: " und ", pair: " und "},
		{sep: ", ", last: " et ", pair: " et "},
		{sep: ", ", last: " y ", pair: " y ", beforeI: " e "},
		{sep: ", ", last: " e ", pair: " e "},
		{sep: ", ", last: " en ", pair: " en "},
		{sep: ", ", last: " e ", pair: " e "},
		{sep: "、", last: "、", pair: "、"},
	}
	matcher = language.NewMatcher(supported)
)

// Formatter joins lists for one locale.
type Formatter struct {
	tag language.Tag
	pat pattern
}

// New returns a Formatter for locale, a BCP 47 tag such as "de" or "en-US".
// Underscores are accepted in place of hyphens. Unknown or malformed locales
// fall back to DefaultLocale.
func New(locale string) Formatter {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{tag: supported[0], pat: patterns[0]}
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return Formatter{tag: supported[idx], pat: patterns[idx]}
}

// Locale reports the tag whose pattern the Formatter uses.
func (f Formatter) Locale() string {
	if f.tag == language.Und {
		return DefaultLocale
	}
	return f.tag.String()
}

// Join renders items as a conjunction: "", "a", "a and b", "a, b and c".
func (f Formatter) Join(items []string) string {
	pat := f.pat
	if pat == (pattern{}) {
		pat = patterns[0]
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	n := len(items)
	last, pair := pat.last, pat.pair
	if pat.beforeI != "" && startsWithISound(items[n-1]) {
		last, pair = pat.beforeI, pat.beforeI
	}
	if n == 2 {
		return items[0] + pair + items[1]
	}
	var b strings.Builder
	b.WriteString(strings.Join(items[:n-1], pat.sep))
	b.WriteString(last)
	b.WriteString(items[n-1])
	return b.String()
}

// startsWithISound matches CLDR's Spanish rule: words beginning with "i", or
// with "hi" unless a vowel glide follows ("hie", "hia").
func startsWithISound(word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	switch {
	case strings.HasPrefix(w, "i"), strings.HasPrefix(w, "í"):
		return true
	case w == "hi":
		return true
	case strings.HasPrefix(w, "hi"):
		return w[2] != 'a' && w[2] != 'e'
	}
	return false
}
