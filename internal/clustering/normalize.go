package clustering

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/logger"
)

// asciiPunctuation is replaced with spaces in the final cleanup step.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var digitRun = regexp.MustCompile(`\p{Nd}+`)

// Normalizer maps raw line item descriptions to canonical forms.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	tag    language.Tag
	folder *strings.Replacer
	units  *regexp.Regexp
	stop   map[string]struct{}
}

// NewNormalizer builds a normalizer from locale tables. Empty tables turn
// the matching step into a no-op; construction never fails.
func NewNormalizer(tables domain.LocaleTables) *Normalizer {
	n := &Normalizer{tag: parseTag(tables.Locale)}
	n.folder = buildFolder(n.tag, tables.Folding)

	// Units and stop words go through the same casing and folding as the
	// descriptions they are matched against.
	n.units = buildUnitPattern(n.prepareAll(tables.Units))

	n.stop = make(map[string]struct{}, len(tables.StopWords))
	for _, word := range n.prepareAll(tables.StopWords) {
		if !isSingleToken(word) {
			logger.Debug("stop word %q is not a single token, ignoring", word)
			continue
		}
		n.stop[word] = struct{}{}
	}

	return n
}

// Normalize returns the canonical form of raw. The result may be empty
// when raw holds nothing but units, numbers, stop words and punctuation.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func (n *Normalizer) Normalize(raw string) string {
	s := n.pass(raw)
	// Folding can leave a base letter next to a combining mark that
	// composes or folds differently on the next pass. Every pass that
	// changes the string consumes at least one mark, so the loop is
	// bounded by the length of the first result.
	for i := 0; i <= len(s); i++ {
		next := n.pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func (n *Normalizer) pass(raw string) string {
	s := n.fold(n.lower(raw))
	if n.units != nil {
		s = n.units.ReplaceAllString(s, " ")
	}
	s = digitRun.ReplaceAllString(s, " ")
	s = n.removeStopWords(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return ' '
		}
		return r
	}, s)
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// lower composes the string and applies locale casing. A Caser is not safe
// for concurrent use and the Normalizer is shared, so one is created per
// call.
func (n *Normalizer) lower(s string) string {
	return cases.Lower(n.tag).String(norm.NFC.String(s))
}

func (n *Normalizer) fold(s string) string {
	if n.folder == nil {
		return s
	}
	return n.folder.Replace(s)
}

func (n *Normalizer) prepareAll(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.TrimSpace(n.fold(n.lower(w)))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// removeStopWords blanks out every token found in the stop set. Tokens are
// maximal runs of letters, digits and combining marks.
func (n *Normalizer) removeStopWords(s string) string {
	if len(n.stop) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	flush := func(end int) {
		token := s[start:end]
		if _, ok := n.stop[token]; ok {
			b.WriteByte(' ')
		} else {
			b.WriteString(token)
		}
		start = -1
	}

	for i, r := range s {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		flush(len(s))
	}
	return b.String()
}

func parseTag(locale string) language.Tag {
	if locale == "" {
		return language.Und
	}
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("unknown locale %q, using language-neutral casing", locale)
		return language.Und
	}
	return tag
}

// buildFolder turns the folding table into a replacer. Longer keys are
// listed first so multi-rune sequences win over their prefixes.
func buildFolder(tag language.Tag, table map[string]string) *strings.Replacer {
	if len(table) == 0 {
		return nil
	}

	// Construction runs on one goroutine, so a single Caser serves every key.
	caser := cases.Lower(tag)
	folded := make(map[string]string, len(table))
	for from, to := range table {
		key := caser.String(norm.NFC.String(from))
		if key == "" {
			continue
		}
		folded[key] = to
	}
	if len(folded) == 0 {
		return nil
	}

	keys := make([]string, 0, len(folded))
	for k := range folded {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, folded[k])
	}
	return strings.NewReplacer(pairs...)
}

// buildUnitPattern matches a number, an optional decimal part, an optional
// space and a unit that is not followed by another letter or digit.
func buildUnitPattern(units []string) *regexp.Regexp {
	if len(units) == 0 {
		return nil
	}

	sorted := make([]string, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	quoted := make([]string, len(sorted))
	for i, u := range sorted {
		quoted[i] = regexp.QuoteMeta(u)
	}

	return regexp.MustCompile(`\p{Nd}+(?:[.,]\p{Nd}+)?\s?(?:` +
		strings.Join(quoted, "|") + `)(?:[^\p{L}\p{N}\p{M}]|$)`)
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isSingleToken(s string) bool {
	for _, r := range s {
		if !isTokenRune(r) {
			return false
		}
	}
	return s != ""
}
