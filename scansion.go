// Package scansion scans Latin verse: it marks every syllable of a line as
// long or short and fits the result to a meter (dactylic hexameter or
// Phalaecian hendecasyllable), recording how the scansion was reached.
//
// Scanning is a pure function of its input. A Scanner holds only immutable
// tables and may be shared between goroutines.
package scansion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Scanner runs the scansion cascade for every known meter.
type Scanner struct {
	validator   *Validator
	rules       map[string]*rules
	syllabifier Syllabifier
	macronizer  Macronizer
	logger      *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger receiving debug traces of every scan.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMacronizer sets the collaborator that marks long vowels of lines
// given without any macron.
func WithMacronizer(m Macronizer) Option {
	return func(s *Scanner) { s.macronizer = m }
}

// Options tune a single scan.
type Options struct {
	// OptionalTransform starts with the permissive semivowel rules instead
	// of keeping them for the retry.
	OptionalTransform bool `json:"optional_transform"`
	// DactylSmoothing allows the last-resort rebuild of the line as a chain
	// of dactyls and spondees.
	DactylSmoothing bool `json:"dactyl_smoothing"`
}

// New returns a scanner for hexameter and hendecasyllable.
func New(opts ...Option) *Scanner {
	v := DefaultValidator()
	hexa, _ := v.Meter(Hexameter)
	hendeca, _ := v.Meter(Hendecasyllable)
	s := &Scanner{
		validator: v,
		rules: map[string]*rules{
			Hexameter:       hexameterRules(hexa),
			Hendecasyllable: hendecasyllableRules(hendeca),
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validator returns the validator the scanner checks scansions with.
func (s *Scanner) Validator() *Validator { return s.validator }

// Meters returns the meters the scanner knows, sorted by name.
func (s *Scanner) Meters() []*Meter { return s.validator.Meters() }

// Scan scans line in the named meter.
//
// A line that cannot be fitted to the meter is not an error: the Verse
// comes back with Valid set to false and notes saying what was tried. The
// error is non-nil only for an unknown meter (ErrUnknownMeter) or a line
// without a single vowel (ErrUnscannable).
func (s *Scanner) Scan(line, meter string, opts Options) (*Verse, error) {
	r, ok := s.rules[meter]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeter, meter)
	}
	text := s.prepare(line)
	v := &Verse{Original: line, Meter: r.meter.Name}
	log := s.logger.With(slog.String("meter", r.meter.Name), slog.String("line", line))

	permissive, smoothing := opts.OptionalTransform, opts.DactylSmoothing
	for {
		if permissive {
			v.note(NoteOptionalTransform)
		}
		sylls, done, err := s.scanPass(v, text, r, permissive, smoothing, log)
		if err != nil {
			return nil, err
		}
		if done || permissive {
			v.Accented = mergeAccents(text, v.Scansion, sylls)
			break
		}
		log.Debug("retrying with permissive semivowels")
		permissive, smoothing = true, true
	}
	log.Debug("scanned", slog.Bool("valid", v.Valid), slog.String("scansion", v.Raw()))
	return v, nil
}

// prepare normalizes line and lets the macronizer mark it when the line
// has no macron of its own.
func (s *Scanner) prepare(line string) string {
	text := Normalize(line)
	if s.macronizer == nil || hasAccents(text) {
		return text
	}
	guess := Normalize(s.macronizer.GuessMacrons(text))
	if utf8.RuneCountInString(guess) != utf8.RuneCountInString(text) {
		s.logger.Debug("macronizer changed the line length, ignored", slog.String("line", line))
		return text
	}
	return guess
}

// scanPass runs the cascade once over text. done reports a terminal
// outcome: a valid scansion, or a syllable count the meter cannot take.
func (s *Scanner) scanPass(v *Verse, text string, r *rules, permissive, smoothing bool, log *slog.Logger) (sylls []syllable, done bool, err error) {
	working := Transform(text, permissive)
	sylls, err = s.syllabifier.segment(working)
	if err != nil {
		return nil, false, err
	}
	width := utf8.RuneCountInString(working)
	v.WorkingLine = working
	v.Syllables = make([]string, len(sylls))
	for i, syl := range sylls {
		v.Syllables[i] = syl.text
	}
	v.SyllableCount = len(sylls)
	v.Scansion = strings.Repeat(" ", width)
	v.Valid = false

	m := r.meter
	switch count := len(sylls); {
	case count < m.MinSyllables:
		v.note(fmt.Sprintf(noteTooFew, m.MinSyllables, m.Name))
		return sylls, true, nil
	case count > m.MaxSyllables:
		v.note(fmt.Sprintf(noteTooMany, m.MaxSyllables, m.Name))
		return sylls, true, nil
	}

	v.Scansion = ProduceScansion(seedStresses(sylls, r.fixed(len(sylls))), width, offsetsOf(sylls))
	if m.IsValid(v.Scansion) {
		v.note(NotePositional)
		v.Valid = true
		return sylls, true, nil
	}
	log.Debug("positional scansion invalid", slog.String("scansion", v.Raw()), slog.Bool("permissive", permissive))

	for _, sc := range r.shortcuts {
		raw, ok := sc.apply(v.Raw())
		if ok && v.replace(raw, sc.note) && m.IsValid(v.Scansion) {
			v.Valid = true
			return sylls, true, nil
		}
	}
	for _, rep := range r.repairs {
		if v.replace(rep.fix(v.Raw()), rep.note) && m.IsValid(v.Scansion) {
			v.Valid = true
			return sylls, true, nil
		}
	}
	if closestMatch(v, m) {
		return sylls, true, nil
	}
	if smoothing && r.smoothing != nil {
		if v.replace(r.smoothing.fix(v.Raw()), r.smoothing.note) && m.IsValid(v.Scansion) {
			v.Valid = true
			return sylls, true, nil
		}
	}
	return sylls, false, nil
}

// seedStresses lists the syllables known to be long before any repair:
// those holding a diphthong or a macron, and the meter's fixed positions.
func seedStresses(sylls []syllable, fixed []int) []int {
	var stresses []int
	for i, syl := range sylls {
		if syl.hasDiphthong() || syl.hasAccent() {
			stresses = append(stresses, i)
		}
	}
	return append(stresses, fixed...)
}

// closestMatch adopts the nearest template when exactly one template lies
// one mark away from the current scansion.
func closestMatch(v *Verse, m *Meter) bool {
	raw := v.Raw()
	closest := m.ClosestPatterns(v.Scansion)
	if len(closest) != 1 || len(differences(raw, closest[0])) != 1 {
		return false
	}
	next := withRaw(v.Scansion, closest[0])
	if !m.IsValid(next) {
		return false
	}
	v.Scansion = next
	v.note(NoteClosestMatch)
	v.Valid = true
	return true
}

// Result is the outcome of scanning one line of a batch.
type Result struct {
	Index int    `json:"index"`
	Verse *Verse `json:"verse,omitempty"`
	Err   error  `json:"-"`
}

// ScanLines scans every line independently, at most workers at a time
// (no limit when workers < 1). Results keep the order of lines; per-line
// failures are reported in Result.Err. Cancelling ctx abandons the lines
// not yet started and returns the context error.
func (s *Scanner) ScanLines(ctx context.Context, lines []string, meter string, opts Options, workers int) ([]Result, error) {
	if _, ok := s.rules[meter]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeter, meter)
	}
	results := make([]Result, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := s.Scan(line, meter, opts)
			results[i] = Result{Index: i, Verse: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return results, nil
}
