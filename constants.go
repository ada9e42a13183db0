package scansion

import (
	"strings"
	"unicode"
)

// Scansion symbols.
const (
	Stressed   = '-'
	Unstressed = 'U'
	// Anceps marks the final syllable of a line, which may be long or short.
	Anceps = 'X'
)

// Feet, written with the scansion symbols.
const (
	Dactyl  = "-UU"
	Spondee = "--"
	Iamb    = "U-"
	Trochee = "-U"
)

// Character classes. Upper-case forms are listed alongside lower-case ones
// so the strings can be dropped directly into regexp character classes.
const (
	Vowels             = "aeiouyAEIOUY"
	AccentedVowels     = "āēīōūȳĀĒĪŌŪȲ"
	Consonants         = "bcdfghjklmnpqrstvwxzBCDFGHJKLMNPQRSTVWXZ"
	ConsonantsWithoutH = "bcdfgjklmnpqrstvwxzBCDFGJKLMNPQRSTVWXZ"
	Liquids            = "lrLR"
	Mutes              = "bcdgptkBCDGPTK"

	allVowels = Vowels + AccentedVowels
)

// CommonDiphthongs always form a single nucleus.
var CommonDiphthongs = []string{"ae", "au", "oe"}

// diphthongWords segments the words whose rare diphthongs (ei, eu, ui)
// would otherwise be split into two syllables. Keys are lower case, without
// macrons.
var diphthongWords = map[string][]string{
	"cui":    {"cui"},
	"hui":    {"hui"},
	"huic":   {"huic"},
	"heu":    {"heu"},
	"seu":    {"seu"},
	"neu":    {"neu"},
	"ceu":    {"ceu"},
	"eheu":   {"e", "heu"},
	"dein":   {"dein"},
	"deinde": {"dein", "de"},
}

// legalOnsets is the allow-list of consonant clusters a syllable may begin
// with. The empty onset and every single consonant are always legal.
var legalOnsets = muteLiquidOnsets(map[string]bool{
	"ch": true, "ph": true, "th": true, "rh": true, "qu": true, "gu": true,
	"fl": true, "fr": true,
	"chr": true, "phr": true, "thr": true, "chl": true, "phl": true,
})

// muteLiquidOnsets adds every mute followed by a liquid to onsets, except
// dl and tl, which Latin splits between syllables.
func muteLiquidOnsets(onsets map[string]bool) map[string]bool {
	for _, m := range Mutes[:len(Mutes)/2] {
		for _, l := range Liquids[:len(Liquids)/2] {
			if c := string(m) + string(l); c != "dl" && c != "tl" {
				onsets[c] = true
			}
		}
	}
	return onsets
}

// prefixes are split off a word before looking for a word-initial
// consonantal i (adiuvo, coniunx, deiecit). Longest first.
var prefixes = []string{
	"super", "inter", "trans", "prae", "con", "dis", "sub", "per", "pro",
	"ab", "ad", "de", "ex", "in", "ob", "re",
}

// Notes recorded in Verse.ScansionNotes.
const (
	NotePositional        = "Valid by positional stresses."
	NoteAllDactyls        = "Hexameter of 17 syllables scanned as all dactyls."
	NoteAllSpondees       = "Hexameter of 12 syllables scanned as all spondees."
	NoteFifthDactyl       = "Hexameter of 13 syllables scanned as spondees with a fifth-foot dactyl."
	NoteInverted          = "Corrected inverted amphibrachs."
	NoteInvalidStart      = "Corrected invalid start."
	NoteInvalidFoot       = "Corrected invalid foot."
	NoteUnstressedRun     = "Corrected run of unstressed syllables."
	NoteAntepenultChain   = "Corrected antepenult chain."
	NoteClosestMatch      = "Corrected by closest matching template."
	NoteDactylSmoothing   = "Smoothed dactyl chain."
	NoteOptionalTransform = "Applied permissive semivowel transform."

	// formats taking the meter's syllable bound
	noteTooFew  = "< %d syllables: too few for %s."
	noteTooMany = "> %d syllables: too many for %s."
)

func isPlainVowel(r rune) bool    { return strings.ContainsRune(Vowels, r) }
func isAccentedVowel(r rune) bool { return strings.ContainsRune(AccentedVowels, r) }
func isVowel(r rune) bool         { return isPlainVowel(r) || isAccentedVowel(r) }

// isLetter reports whether r belongs to a word. Letters outside the Latin
// tables (Greek names, stray symbols) still belong to words but never carry
// a nucleus.
func isLetter(r rune) bool { return unicode.IsLetter(r) }

func lower(r rune) rune { return unicode.ToLower(r) }
