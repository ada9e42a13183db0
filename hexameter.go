package scansion

import (
	"slices"
	"strings"
)

func hexameterRules(m *Meter) *rules {
	return &rules{
		meter: m,
		fixed: func(count int) []int { return []int{0, count - 2} },
		shortcuts: []shortcut{
			{NoteAllDactyls, allDactyls},
			{NoteAllSpondees, allSpondees},
			{NoteFifthDactyl, fifthFootDactyl},
		},
		repairs: []repair{
			{NoteInverted, correctInvertedAmphibrachs},
			{NoteInvalidStart, correctHexameterStart},
			{NoteInvalidFoot, correctInvalidFeet},
			{NoteUnstressedRun, correctUnstressedRunIfAny},
		},
		smoothing: &repair{NoteDactylSmoothing, correctUnstressedRun},
	}
}

// allDactyls: seventeen syllables only fit five dactyls and a final foot.
func allDactyls(raw string) (string, bool) {
	if len(raw) != 17 {
		return raw, false
	}
	return strings.Repeat(Dactyl, 5) + string(Stressed) + raw[16:], true
}

// allSpondees: twelve syllables only fit six spondees.
func allSpondees(raw string) (string, bool) {
	if len(raw) != 12 {
		return raw, false
	}
	return strings.Repeat(string(Stressed), 11) + raw[11:], true
}

// fifthFootDactyl: thirteen syllables hold exactly one dactyl, taken to
// sit in the fifth foot whatever the seeded marks say.
func fifthFootDactyl(raw string) (string, bool) {
	if len(raw) != 13 {
		return raw, false
	}
	return strings.Repeat(Spondee, 4) + Dactyl + string(Stressed) + raw[12:], true
}

// correctHexameterStart: a hexameter cannot open --U.
func correctHexameterStart(raw string) string {
	if !strings.HasPrefix(raw, "--U") {
		return raw
	}
	return markAt(raw, 2, Stressed)
}

// correctInvalidFeet turns every iamb or trochee outside the final foot
// into a spondee.
func correctInvalidFeet(raw string) string {
	feet := hexameterFeet(raw)
	if feet == nil {
		return raw
	}
	for i := 0; i < len(feet)-1; i++ {
		if feet[i] == Iamb || feet[i] == Trochee {
			feet[i] = Spondee
		}
	}
	return strings.Join(feet, "")
}

// hexameterFeet cuts a raw scansion into feet from the end: the last two
// marks, then dactyls where they fit and two-mark feet elsewhere. It
// returns nil when the marks cannot be cut that way.
func hexameterFeet(raw string) []string {
	if len(raw) < 2 {
		return nil
	}
	feet := []string{raw[len(raw)-2:]}
	for i := len(raw) - 2; i > 0; {
		switch {
		case i >= 3 && raw[i-3:i] == Dactyl:
			feet = append(feet, raw[i-3:i])
			i -= 3
		case i >= 2 && raw[i-2:i] != "UU":
			feet = append(feet, raw[i-2:i])
			i -= 2
		default:
			return nil
		}
	}
	slices.Reverse(feet)
	return feet
}
