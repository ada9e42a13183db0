package scansion

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// atoneReplacer removes all vowel quantity marks (macrons and breves)
// from lowercase and uppercase letters.
var atoneReplacer = strings.NewReplacer(
	"ā", "a",
	"ă", "a",
	"ē", "e",
	"ĕ", "e",
	"ī", "i",
	"ĭ", "i",
	"ō", "o",
	"ŏ", "o",
	"ū", "u",
	"ŭ", "u",
	"ȳ", "y",
	"ў", "y",
	"Ā", "A",
	"Ă", "A",
	"Ē", "E",
	"Ĕ", "E",
	"Ī", "I",
	"Ĭ", "I",
	"Ō", "O",
	"Ŏ", "O",
	"Ū", "U",
	"Ŭ", "U",
	"Ȳ", "Y",
	"Ў", "Y",
)

// Atone strips all vowel-quantity diacritics from s.
// The combining breve (U+0306) is also removed.
func Atone(s string) string {
	s = atoneReplacer.Replace(s)
	return strings.ReplaceAll(s, "\u0306", "")
}

// shortReplacer drops breves and diaereses: a short vowel and a vowel in
// hiatus both scan as the plain vowel.
var shortReplacer = strings.NewReplacer(
	"ă", "a", "ĕ", "e", "ĭ", "i", "ŏ", "o", "ŭ", "u", "ў", "y",
	"Ă", "A", "Ĕ", "E", "Ĭ", "I", "Ŏ", "O", "Ŭ", "U", "Ў", "Y",
	"ä", "a", "ë", "e", "ï", "i", "ö", "o", "ü", "u", "ÿ", "y",
	"Ä", "A", "Ë", "E", "Ï", "I", "Ö", "O", "Ü", "U",
)

// ligatureReplacer expands æ/œ, which scan as the diphthongs ae/oe.
var ligatureReplacer = strings.NewReplacer(
	"æ", "ae",
	"Æ", "Ae",
	"œ", "oe",
	"Œ", "Oe",
)

var (
	vowelToAccent = map[rune]rune{
		'a': 'ā', 'e': 'ē', 'i': 'ī', 'o': 'ō', 'u': 'ū', 'y': 'ȳ',
		'A': 'Ā', 'E': 'Ē', 'I': 'Ī', 'O': 'Ō', 'U': 'Ū', 'Y': 'Ȳ',
	}
	accentToVowel = invert(vowelToAccent)
)

func invert(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Accent returns the macron form of a plain vowel; any other rune is
// returned unchanged.
func Accent(r rune) rune {
	if a, ok := vowelToAccent[r]; ok {
		return a
	}
	return r
}

// Unaccent returns the plain form of a macron vowel.
func Unaccent(r rune) rune {
	if v, ok := accentToVowel[r]; ok {
		return v
	}
	return r
}

// Normalize puts a line into the form the transformer expects: NFC
// composition, short and diaeresis marks dropped, ligatures expanded and
// any combining mark left over removed. A combining breve that follows a
// macron vowel (common quantity, ā̆) turns the vowel back into a plain one.
func Normalize(line string) string {
	line = norm.NFC.String(line)
	line = ligatureReplacer.Replace(shortReplacer.Replace(line))

	var b strings.Builder
	b.Grow(len(line))
	var prev rune
	pending := false
	for _, r := range line {
		if unicode.Is(unicode.Mn, r) {
			if r == '\u0306' && pending {
				prev = Unaccent(prev)
			}
			continue
		}
		if pending {
			b.WriteRune(prev)
		}
		prev, pending = r, true
	}
	if pending {
		b.WriteRune(prev)
	}
	return b.String()
}

// hasAccents reports whether s carries at least one macron vowel.
func hasAccents(s string) bool {
	return strings.ContainsAny(s, AccentedVowels)
}
