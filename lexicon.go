package scansion

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexicon is a word list macronizer: it knows the quantities of the forms
// it was loaded with and leaves every other word alone. It is safe for
// concurrent use once loaded.
type Lexicon struct {
	// forms maps the bare lower-case form to its macronized spelling.
	forms map[string]string
}

// NewLexicon returns an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{forms: make(map[string]string)}
}

// LoadLexicon reads a lexicon file.
// Format: one "form<TAB>macronized" pair per line, "!" starts a comment.
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	lx, err := ReadLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return lx, nil
}

// ReadLexicon reads lexicon lines from r.
func ReadLexicon(r io.Reader) (*Lexicon, error) {
	lx := NewLexicon()
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		form, macronized, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: missing tab separator", n)
		}
		if err := lx.Add(strings.TrimSpace(form), strings.TrimSpace(macronized)); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	return lx, sc.Err()
}

// Add records the macronized spelling of form. Both must spell the same
// word once macrons are removed.
func (lx *Lexicon) Add(form, macronized string) error {
	key := lexiconKey(form)
	if key == "" || key != lexiconKey(macronized) {
		return fmt.Errorf("%q does not spell %q", macronized, form)
	}
	lx.forms[key] = strings.ToLower(macronized)
	return nil
}

// Len returns the number of known forms.
func (lx *Lexicon) Len() int { return len(lx.forms) }

// Lookup returns the macronized spelling of form.
func (lx *Lexicon) Lookup(form string) (string, bool) {
	m, ok := lx.forms[lexiconKey(form)]
	return m, ok
}

// GuessMacrons replaces every known word of text with its macronized
// spelling, keeping the capitals of the original. Everything else is
// copied through.
func (lx *Lexicon) GuessMacrons(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for start := 0; start < len(runes); {
		if !isLetter(runes[start]) {
			b.WriteRune(runes[start])
			start++
			continue
		}
		end := start
		for end < len(runes) && isLetter(runes[end]) {
			end++
		}
		b.WriteString(lx.macronize(runes[start:end]))
		start = end
	}
	return b.String()
}

func (lx *Lexicon) macronize(word []rune) string {
	m, ok := lx.forms[lexiconKey(string(word))]
	if !ok || utf8.RuneCountInString(m) != len(word) {
		return string(word)
	}
	out := []rune(m)
	for i, r := range word {
		if unicode.IsUpper(r) {
			out[i] = unicode.ToUpper(out[i])
		}
	}
	return string(out)
}

func lexiconKey(form string) string {
	return strings.ToLower(Atone(Normalize(form)))
}
