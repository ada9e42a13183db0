package scansion

import (
	"fmt"
	"strings"
)

// Verse holds the result of scanning one line.
type Verse struct {
	// Original is the line exactly as given.
	Original string `json:"original"`
	// WorkingLine is the line after normalization and transformation
	// (semivowels, elision blanks, macrons for positional length). Every
	// scansion column lines up with a rune of WorkingLine.
	WorkingLine string `json:"working_line"`
	// Syllables are the syllables of WorkingLine, blanks removed.
	Syllables     []string `json:"syllables"`
	SyllableCount int      `json:"syllable_count"`
	// Scansion has a mark under the nucleus of every syllable and blanks
	// everywhere else. It is as wide as WorkingLine.
	Scansion string `json:"scansion"`
	Meter    string `json:"meter"`
	Valid    bool   `json:"valid"`
	// Accented is the normalized line with a macron on every plain vowel
	// the scansion stresses.
	Accented string `json:"accented"`
	// ScansionNotes lists, in order, the steps that shaped Scansion.
	ScansionNotes []string `json:"scansion_notes"`
}

// Raw returns the marks of the scansion without blanks.
func (v *Verse) Raw() string { return Raw(v.Scansion) }

func (v *Verse) note(n string) {
	v.ScansionNotes = append(v.ScansionNotes, n)
}

// replace writes raw into the scansion columns and records note when that
// changed anything.
func (v *Verse) replace(raw, note string) bool {
	next := withRaw(v.Scansion, raw)
	if next == v.Scansion {
		return false
	}
	v.Scansion = next
	v.note(note)
	return true
}

// String renders the verse as three aligned lines: the working line, the
// scansion and the notes.
func (v *Verse) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, v.WorkingLine)
	fmt.Fprintln(&b, v.Scansion)
	status := "invalid"
	if v.Valid {
		status = "valid"
	}
	fmt.Fprintf(&b, "%s %s (%d syllables)", v.Meter, status, v.SyllableCount)
	for _, n := range v.ScansionNotes {
		fmt.Fprintf(&b, "\n  %s", n)
	}
	return b.String()
}
