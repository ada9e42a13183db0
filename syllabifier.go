package scansion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnscannable is returned for a line in which no syllable nucleus can
// be found.
var ErrUnscannable = errors.New("unscannable line")

// syllable is one segment of a line.
type syllable struct {
	// text holds the letters of the syllable, blanks removed.
	text string
	// start and end delimit the syllable in the line (runes, end exclusive).
	start, end int
	// nucleusStart is the first vowel of the nucleus; nucleus is the vowel
	// that carries the scansion mark (the last one of a diphthong).
	nucleusStart, nucleus int
}

// Syllabifier splits transformed lines into syllables. It holds no state
// and is safe for concurrent use.
type Syllabifier struct{}

// Syllabify splits line into syllables. Blanks left by elision separate
// words like ordinary spaces; a fragment without a vowel is attached to the
// preceding syllable.
func (s Syllabifier) Syllabify(line string) ([]string, error) {
	sylls, err := s.segment(line)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(sylls))
	for i, syl := range sylls {
		out[i] = syl.text
	}
	return out, nil
}

// SyllableCount returns the number of syllables in line.
func (s Syllabifier) SyllableCount(line string) (int, error) {
	sylls, err := s.segment(line)
	if err != nil {
		return 0, err
	}
	return len(sylls), nil
}

// OffsetMap maps each syllable index of line to the column of its nucleus.
func (s Syllabifier) OffsetMap(line string) (OffsetMap, error) {
	sylls, err := s.segment(line)
	if err != nil {
		return nil, err
	}
	return offsetsOf(sylls), nil
}

func (s Syllabifier) segment(line string) ([]syllable, error) {
	runes := []rune(line)
	var out []syllable
	var orphan *syllable // vowelless fragment met before any syllable

	for start := 0; start < len(runes); {
		if runes[start] == ' ' {
			start++
			continue
		}
		end := start
		for end < len(runes) && runes[end] != ' ' {
			end++
		}
		word := syllabifyWord(runes, start, end)
		start = end

		if len(word) == 1 && word[0].nucleus < 0 {
			frag := word[0]
			switch {
			case len(out) > 0:
				out[len(out)-1] = joinSyllables(out[len(out)-1], frag)
			case orphan != nil:
				joined := joinSyllables(*orphan, frag)
				orphan = &joined
			default:
				orphan = &frag
			}
			continue
		}
		if orphan != nil {
			word[0] = joinSyllables(*orphan, word[0])
			orphan = nil
		}
		out = append(out, word...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no vowel in %q", ErrUnscannable, strings.TrimSpace(line))
	}
	return out, nil
}

// joinSyllables appends b to a, keeping whichever nucleus exists.
func joinSyllables(a, b syllable) syllable {
	joined := syllable{
		text:         a.text + b.text,
		start:        a.start,
		end:          b.end,
		nucleusStart: a.nucleusStart,
		nucleus:      a.nucleus,
	}
	if joined.nucleus < 0 {
		joined.nucleusStart, joined.nucleus = b.nucleusStart, b.nucleus
	}
	return joined
}

// nucleusSpan is a run of vowels forming one syllable peak.
type nucleusSpan struct{ start, end int }

// syllabifyWord splits runes[start:end] (a word without blanks). A word
// without a nucleus comes back as a single syllable with nucleus -1.
func syllabifyWord(runes []rune, start, end int) []syllable {
	if parts, ok := diphthongWords[strings.ToLower(Atone(string(runes[start:end])))]; ok {
		return fixedSyllables(runes, start, parts)
	}

	var nuclei []nucleusSpan
	for k := start; k < end; {
		if !isVowel(runes[k]) || isGlide(runes, k) {
			k++
			continue
		}
		if k+1 < end && isDiphthongPair(runes[k], runes[k+1]) {
			nuclei = append(nuclei, nucleusSpan{k, k + 2})
			k += 2
			continue
		}
		nuclei = append(nuclei, nucleusSpan{k, k + 1})
		k++
	}
	if len(nuclei) == 0 {
		return []syllable{{
			text: string(runes[start:end]), start: start, end: end,
			nucleusStart: -1, nucleus: -1,
		}}
	}

	// boundaries[i] is where syllable i+1 begins.
	boundaries := make([]int, 0, len(nuclei)-1)
	for i := 0; i+1 < len(nuclei); i++ {
		clusterStart, clusterEnd := nuclei[i].end, nuclei[i+1].start
		boundaries = append(boundaries, clusterEnd-onsetLength(runes[clusterStart:clusterEnd]))
	}

	out := make([]syllable, len(nuclei))
	from := start
	for i, nu := range nuclei {
		to := end
		if i < len(boundaries) {
			to = boundaries[i]
		}
		out[i] = syllable{
			text: string(runes[from:to]), start: from, end: to,
			nucleusStart: nu.start, nucleus: nu.end - 1,
		}
		from = to
	}
	return out
}

// onsetLength returns how many runes at the end of a consonant cluster
// open the next syllable: the longest suffix that is a legal onset.
func onsetLength(cluster []rune) int {
	for n := len(cluster); n > 1; n-- {
		if legalOnsets[strings.ToLower(string(cluster[len(cluster)-n:]))] {
			return n
		}
	}
	if len(cluster) > 0 {
		return 1
	}
	return 0
}

// fixedSyllables cuts a word along the segmentation given by parts.
func fixedSyllables(runes []rune, start int, parts []string) []syllable {
	out := make([]syllable, 0, len(parts))
	from := start
	for _, p := range parts {
		to := from + len([]rune(p))
		syl := syllable{text: string(runes[from:to]), start: from, end: to, nucleusStart: -1, nucleus: -1}
		for k := from; k < to; k++ {
			if isVowel(runes[k]) && !isGlide(runes, k) {
				if syl.nucleusStart < 0 {
					syl.nucleusStart = k
				}
				syl.nucleus = k
			}
		}
		out = append(out, syl)
		from = to
	}
	return out
}

// hasDiphthong reports whether the nucleus of syl spans two vowels.
func (syl syllable) hasDiphthong() bool {
	return syl.nucleusStart >= 0 && syl.nucleusStart < syl.nucleus
}

// hasAccent reports whether the syllable holds a macron vowel.
func (syl syllable) hasAccent() bool {
	return strings.ContainsAny(syl.text, AccentedVowels)
}
