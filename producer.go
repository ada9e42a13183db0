package scansion

import (
	"strings"
	"unicode/utf8"
)

// OffsetMap maps a syllable index to the column of its nucleus in the
// working line.
type OffsetMap map[int]int

func offsetsOf(sylls []syllable) OffsetMap {
	m := make(OffsetMap, len(sylls))
	for i, syl := range sylls {
		m[i] = syl.nucleus
	}
	return m
}

// ProduceScansion builds a scansion width columns wide: every syllable in
// offsets gets an unstressed mark at its nucleus, then every index listed
// in stresses gets a stressed mark. Columns without a nucleus stay blank.
func ProduceScansion(stresses []int, width int, offsets OffsetMap) string {
	marks := []byte(strings.Repeat(" ", width))
	for _, col := range offsets {
		if col >= 0 && col < width {
			marks[col] = Unstressed
		}
	}
	for _, idx := range stresses {
		if col, ok := offsets[idx]; ok && col >= 0 && col < width {
			marks[col] = Stressed
		}
	}
	return string(marks)
}

// Raw returns the marks of a scansion with all blanks removed.
func Raw(scansion string) string {
	return strings.ReplaceAll(scansion, " ", "")
}

// markColumns returns the columns holding a mark, left to right.
func markColumns(scansion string) []int {
	cols := make([]int, 0, len(scansion))
	for i := 0; i < len(scansion); i++ {
		if scansion[i] != ' ' {
			cols = append(cols, i)
		}
	}
	return cols
}

// withRaw writes the marks of raw back into the columns of scansion. raw
// must hold as many marks as scansion does.
func withRaw(scansion, raw string) string {
	cols := markColumns(scansion)
	if len(cols) != len(raw) {
		return scansion
	}
	out := []byte(scansion)
	for i, col := range cols {
		out[col] = raw[i]
	}
	return string(out)
}

// differences lists the positions at which two raw scansions differ.
func differences(a, b string) []int {
	var diff []int
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			diff = append(diff, i)
		}
	}
	return diff
}

// mergeAccents puts a macron on every plain vowel of line that the scansion
// marks as stressed. The second vowel of a diphthong keeps its plain form.
// line must be as many runes long as scansion is wide.
func mergeAccents(line, scansion string, sylls []syllable) string {
	runes := []rune(line)
	if len(runes) != utf8.RuneCountInString(scansion) {
		return line
	}
	diphthongTail := make(map[int]bool)
	for _, syl := range sylls {
		if syl.hasDiphthong() {
			diphthongTail[syl.nucleus] = true
		}
	}
	for col := 0; col < len(scansion); col++ {
		if scansion[col] == Stressed && !diphthongTail[col] && isPlainVowel(runes[col]) {
			runes[col] = Accent(runes[col])
		}
	}
	return string(runes)
}
