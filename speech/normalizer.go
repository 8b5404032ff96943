package speech

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Boundary says which ends of a match must sit on a word boundary. Word
// characters are Unicode letters, numbers and underscore, so a code glued
// to "é" or an ʻokina is not a word of its own.
type Boundary int

const (
	NoBoundary Boundary = iota
	LeadingBoundary
	BothBoundaries
)

// Rule is a single pattern substitution applied by Normalize.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Boundary    Boundary
}

// Apply replaces every match of the rule in text. Matches failing the
// rule's boundary check are left as they are.
func (r Rule) Apply(text string) string {
	if r.Boundary == NoBoundary {
		return r.Pattern.ReplaceAllString(text, r.Replacement)
	}

	matches := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !r.bounded(text, m[0], m[1]) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.Write(r.Pattern.ExpandString(nil, r.Replacement, text, m))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func (r Rule) bounded(text string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(prev) {
			return false
		}
	}
	if r.Boundary == BothBoundaries && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// whitespace covers what RE2's \s misses: vertical tab, the C0 separators,
// NEL and the Unicode separators (NBSP and friends).
const whitespace = `\s\v\x1c-\x1f\x85\p{Z}`

// draftCodes maps legislative draft/version codes to their spoken form.
var draftCodes = []struct {
	code      string
	expansion string
}{
	{"HB", "House Bill"},
	{"SB", "Senate Bill"},
	{"HD", "House Draft"},
	{"SD", "Senate Draft"},
	{"CD", "Conference Draft"},
	{"FD", "Final Draft"},
	{"GM", "Governor's Message"},
}

// rules is read-only after init; order matters, every rule runs on the
// output of the one before it.
var rules = buildRules()

func buildRules() []Rule {
	var rs []Rule
	for _, dc := range draftCodes {
		// The number-preceding rule has to come first: the standalone rule
		// would also match "HB" in "HB123" and drop the separating space.
		rs = append(rs,
			Rule{regexp.MustCompile(dc.code + `[` + whitespace + `]*(\p{Nd})`), dc.expansion + " ${1}", LeadingBoundary},
			Rule{regexp.MustCompile(dc.code), dc.expansion, BothBoundaries},
		)
	}
	rs = append(rs,
		Rule{Pattern: regexp.MustCompile(`["'()*\[\]{}]`)},
		Rule{Pattern: regexp.MustCompile(`§`), Replacement: "Section "},
		Rule{Pattern: regexp.MustCompile(`&`), Replacement: " and "},
		Rule{Pattern: regexp.MustCompile(`_`), Replacement: " "},
		Rule{Pattern: regexp.MustCompile(`https?://[^` + whitespace + `]+`)},
		Rule{Pattern: regexp.MustCompile(`%`), Replacement: " percent "},
		Rule{Pattern: regexp.MustCompile(`\+`), Replacement: " plus "},
		Rule{Pattern: regexp.MustCompile(`=`), Replacement: " equals "},
		Rule{Pattern: regexp.MustCompile(`[` + whitespace + `]+`), Replacement: " "},
	)
	return rs
}

// Rules returns a copy of the substitution table in application order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Normalize rewrites text so a speech synthesizer reads it correctly:
// legislative draft codes are spelled out, decorative punctuation and URLs
// are dropped, symbols are verbalized and whitespace is collapsed.
//
// It is meant for model output only; bill text going into a prompt must
// never pass through here.
func Normalize(text string) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}
