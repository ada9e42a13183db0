package scansion

// Macronizer marks long vowels the line itself does not mark. The scanner
// consults it for lines without any macron and keeps its output only when
// the output has as many runes as its input.
type Macronizer interface {
	GuessMacrons(text string) string
}

// MacronizerFunc adapts a plain function to Macronizer.
type MacronizerFunc func(text string) string

// GuessMacrons calls f.
func (f MacronizerFunc) GuessMacrons(text string) string { return f(text) }
