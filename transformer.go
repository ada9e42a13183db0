package scansion

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// elisionRule blanks quantity runes starting offset runes after the start
// of every match of re.
type elisionRule struct {
	re       *regexp.Regexp
	quantity int
	offset   int
}

// elisionRules are applied independently to the same line; the candidates
// are then merged so the smallest surviving span wins at every position.
var elisionRules = []elisionRule{
	// vowel-final word before a vowel-initial word
	{regexp.MustCompile("[" + Consonants + "][" + allVowels + `]\s+[` + allVowels + "]"), 1, 1},
	// vowel-final word before h
	{regexp.MustCompile("[" + Consonants + "][" + allVowels + `]\s+[hH]`), 1, 1},
	// -um, -am (any vowel + m) before a vowel or h
	{regexp.MustCompile("[" + allVowels + `][mM]\s+[` + allVowels + "]"), 2, 0},
	{regexp.MustCompile("[" + allVowels + `][mM]\s+[hH]`), 2, 0},
	// diphthong before a vowel or h
	{regexp.MustCompile(`(?i:ae|au|oe)\s+[` + allVowels + "]"), 2, 0},
	{regexp.MustCompile(`(?i:ae|au|oe)\s+[hH]`), 2, 0},
	// any vowel before a vowel or h
	{regexp.MustCompile("[" + allVowels + `]\s+[` + allVowels + "]"), 1, 0},
	{regexp.MustCompile("[" + allVowels + `]\s+[hH]`), 1, 0},
}

// positionRules find vowels that are long by position. The first rune of
// each match is the vowel to mark.
var positionRules = []*regexp.Regexp{
	// two consonants inside the word; ch, ph, th count as one
	regexp.MustCompile("[" + Vowels + "][" + Consonants + "][" + ConsonantsWithoutH + "]"),
	// one consonant closing the word, one opening the next (blanks left by
	// punctuation may intervene)
	regexp.MustCompile("[" + Vowels + "][" + Consonants + `]\s*[` + ConsonantsWithoutH + "]"),
	// both consonants open the next word
	regexp.MustCompile("[" + Vowels + `]\s*[` + Consonants + "][" + ConsonantsWithoutH + "]"),
	// x and z are double consonants
	regexp.MustCompile("[" + Vowels + "][xXzZ]"),
	// consonantal i between vowels is pronounced double (Troia, maior)
	regexp.MustCompile("[" + Vowels + "][jJ][" + allVowels + "]"),
}

// runeMatches returns the rune offsets [start, end) of every
// non-overlapping match of re in line.
func runeMatches(re *regexp.Regexp, line string) [][2]int {
	locs := re.FindAllStringIndex(line, -1)
	out := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		out = append(out, [2]int{
			utf8.RuneCountInString(line[:loc[0]]),
			utf8.RuneCountInString(line[:loc[1]]),
		})
	}
	return out
}

// Transform runs the whole line transformer: semivowel disambiguation,
// elision and positional length marking. The result has exactly as many
// runes as line.
func Transform(line string, permissive bool) string {
	return AccentByPosition(Elide(Semivowels(BlankPunctuation(line), permissive)))
}

// BlankPunctuation replaces every rune that is not a letter with a blank.
func BlankPunctuation(line string) string {
	return strings.Map(func(r rune) rune {
		if isLetter(r) {
			return r
		}
		return ' '
	}, line)
}

// Semivowels rewrites consonantal i and u as j and v.
//
// The strict variant handles word-initial i (also after a prefix such as
// ad- or con-) and u before another vowel, and i or u between two vowels.
// The permissive variant also turns i after a consonant and u after a
// liquid into glides when a vowel follows (Lavinia → Lavinja,
// silua → silva); it is only worth trying once a line failed to scan.
func Semivowels(line string, permissive bool) string {
	runes := []rune(line)
	n := len(runes)

	for start := 0; start < n; start++ {
		if !isLetter(runes[start]) || (start > 0 && isLetter(runes[start-1])) {
			continue
		}
		end := start
		for end < n && isLetter(runes[end]) {
			end++
		}
		glideInitial(runes, start, end)
		word := strings.ToLower(Atone(string(runes[start:end])))
		for _, p := range prefixes {
			if len(word) > len(p) && strings.HasPrefix(word, p) {
				glideInitialI(runes, start+len(p), end)
				break
			}
		}
		start = end
	}

	for k := 1; k < n-1; k++ {
		prev, next := runes[k-1], runes[k+1]
		if !isVowel(next) {
			continue
		}
		switch runes[k] {
		case 'i', 'I':
			if isVowel(prev) && lower(Unaccent(prev)) != 'i' && !isGlide(runes, k-1) {
				runes[k] = glide(runes[k])
			} else if permissive && strings.ContainsRune(ConsonantsWithoutH, prev) && lower(Unaccent(next)) != 'i' {
				runes[k] = glide(runes[k])
			}
		case 'u', 'U':
			if isVowel(prev) && lower(Unaccent(prev)) != 'u' && !isGlide(runes, k-1) {
				runes[k] = glide(runes[k])
			} else if permissive && strings.ContainsRune(Liquids, prev) && lower(Unaccent(next)) != 'u' {
				runes[k] = glide(runes[k])
			}
		}
	}
	return string(runes)
}

// glideInitial converts a word-initial i or u that stands before another
// vowel.
func glideInitial(runes []rune, start, end int) {
	if start+1 >= end || !isVowel(runes[start+1]) {
		return
	}
	switch lower(Unaccent(runes[start])) {
	case 'i':
		glideInitialI(runes, start, end)
	case 'u':
		if lower(Unaccent(runes[start+1])) != 'u' {
			runes[start] = glide(runes[start])
		}
	}
}

func glideInitialI(runes []rune, start, end int) {
	if start+1 >= end || lower(Unaccent(runes[start])) != 'i' {
		return
	}
	next := runes[start+1]
	if isVowel(next) && lower(Unaccent(next)) != 'i' {
		runes[start] = glide(runes[start])
	}
}

// glide returns the consonantal spelling of i or u, keeping the case.
func glide(r rune) rune {
	upper := unicode.IsUpper(r)
	switch lower(Unaccent(r)) {
	case 'i':
		if upper {
			return 'J'
		}
		return 'j'
	case 'u':
		if upper {
			return 'V'
		}
		return 'v'
	}
	return r
}

// isGlide reports whether runes[k] is the consonantal u of qu, or of gu
// after n and before a vowel (lingua, sanguis).
func isGlide(runes []rune, k int) bool {
	if k <= 0 || k >= len(runes) || lower(Unaccent(runes[k])) != 'u' {
		return false
	}
	switch lower(runes[k-1]) {
	case 'q':
		return true
	case 'g':
		return k > 1 && lower(runes[k-2]) == 'n' && k+1 < len(runes) && isVowel(runes[k+1])
	}
	return false
}

// isDiphthongPair reports whether a followed by b spell a common diphthong.
func isDiphthongPair(a, b rune) bool {
	if !isPlainVowel(a) || !isPlainVowel(b) {
		return false
	}
	pair := string([]rune{lower(a), lower(b)})
	for _, d := range CommonDiphthongs {
		if pair == d {
			return true
		}
	}
	return false
}

// Elide blanks elided material. Every rule produces a candidate line and
// the candidates are merged position by position, a blank in any candidate
// winning over a kept rune. Blanking keeps the line length so later offsets
// still point at the same columns.
func Elide(line string) string {
	merged := []rune(line)
	for _, rule := range elisionRules {
		candidate := elide(line, rule)
		for k, r := range candidate {
			if r == ' ' {
				merged[k] = ' '
			}
		}
	}
	return string(merged)
}

func elide(line string, rule elisionRule) []rune {
	orig := []rune(line)
	out := []rune(line)
	for _, m := range runeMatches(rule.re, line) {
		start := m[0] + rule.offset
		for k := start; k < start+rule.quantity && k < len(out); k++ {
			out[k] = ' '
		}
		// an elided vowel closing a diphthong takes the whole diphthong
		if rule.quantity == 1 && start > 0 && isDiphthongPair(orig[start-1], orig[start]) {
			out[start-1] = ' '
		}
	}
	return out
}

// AccentByPosition replaces every vowel that is long by position with its
// macron form. Second vowels of diphthongs and the u of qu are left alone;
// diphthongs are long in their own right.
func AccentByPosition(line string) string {
	runes := []rune(line)
	marks := make([]bool, len(runes))
	for _, re := range positionRules {
		for _, m := range runeMatches(re, line) {
			marks[m[0]] = true
		}
	}
	for k := 1; k < len(runes); k++ {
		if isDiphthongPair(runes[k-1], runes[k]) {
			marks[k] = false
		}
	}
	for k, long := range marks {
		if long && !isGlide(runes, k) {
			runes[k] = Accent(runes[k])
		}
	}
	return string(runes)
}
