package scansion

import "strings"

// rules is what the scanner needs to know about one meter: which syllables
// are always stressed, which whole-line templates apply to special syllable
// counts, and which repairs to try, in order.
type rules struct {
	meter *Meter
	// fixed lists the syllable indices that are stressed in every line of
	// count syllables.
	fixed func(count int) []int
	// shortcuts replace the whole raw scansion when the count allows it.
	shortcuts []shortcut
	// repairs rewrite the raw scansion; each is validated on its own.
	repairs []repair
	// smoothing is the last resort, tried only when asked for.
	smoothing *repair
}

type shortcut struct {
	note  string
	apply func(raw string) (string, bool)
}

type repair struct {
	note string
	fix  func(raw string) string
}

// markAt returns raw with the mark at i replaced by c. Out of range
// indices leave raw untouched.
func markAt(raw string, i int, c byte) string {
	if i < 0 || i >= len(raw) || raw[i] == c {
		return raw
	}
	b := []byte(raw)
	b[i] = c
	return string(b)
}

// correctInvertedAmphibrachs stresses the middle of every non-overlapping
// -U- (two longs around a short cannot start a dactyl or a spondee).
func correctInvertedAmphibrachs(raw string) string {
	b := []byte(raw)
	for i := 0; i+3 <= len(b); {
		if string(b[i:i+3]) == "-U-" {
			b[i+1] = Stressed
			i += 3
			continue
		}
		i++
	}
	return string(b)
}

// correctUnstressedRun rebuilds everything but the last foot as a chain of
// dactyls and spondees, reading from the end. Three shorts in a row become
// a dactyl; any other pair that is neither a dactyl nor a spondee becomes a
// spondee. The length never changes.
func correctUnstressedRun(raw string) string {
	if len(raw) < 3 {
		return raw
	}
	body := []byte(raw[:len(raw)-2])
	out := make([]byte, len(body))
	for i := len(body) - 1; i >= 0; {
		switch {
		case i >= 2 && string(body[i-2:i+1]) == Dactyl:
			copy(out[i-2:], Dactyl)
			i -= 3
		case i >= 1 && string(body[i-1:i+1]) == Spondee:
			copy(out[i-1:], Spondee)
			i -= 2
		case i >= 2 && string(body[i-2:i+1]) == "UUU":
			copy(out[i-2:], Dactyl)
			i -= 3
		case i >= 1:
			copy(out[i-1:], Spondee)
			i -= 2
		default:
			out[i] = Stressed
			i--
		}
	}
	return string(out) + raw[len(raw)-2:]
}

// correctUnstressedRunIfAny is correctUnstressedRun restricted to lines that
// hold three shorts in a row.
func correctUnstressedRunIfAny(raw string) string {
	if !strings.Contains(raw, "UUU") {
		return raw
	}
	return correctUnstressedRun(raw)
}
