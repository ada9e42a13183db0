package scansion

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownMeter is returned when a scan names a meter nobody registered.
var ErrUnknownMeter = errors.New("unknown meter")

// Meter names.
const (
	Hexameter       = "hexameter"
	Hendecasyllable = "hendecasyllable"
)

// Meter is a verse form: the finite set of templates a scansion has to
// match, and the syllable counts those templates admit. The final position
// of every template is the anceps X.
type Meter struct {
	Name         string
	MinSyllables int
	MaxSyllables int

	templates []string
	valid     map[string]bool
}

// NewMeter builds a meter from its templates, written with '-' and 'U' and
// ending in the anceps X. The syllable range is taken from the templates.
func NewMeter(name string, templates []string) *Meter {
	m := &Meter{
		Name:      name,
		templates: slices.Clone(templates),
		valid:     make(map[string]bool, len(templates)),
	}
	for _, t := range templates {
		m.valid[t] = true
		if m.MinSyllables == 0 || len(t) < m.MinSyllables {
			m.MinSyllables = len(t)
		}
		if len(t) > m.MaxSyllables {
			m.MaxSyllables = len(t)
		}
	}
	return m
}

// Templates returns a copy of the meter's templates.
func (m *Meter) Templates() []string {
	return append([]string(nil), m.templates...)
}

// IsValid reports whether scansion matches one of the templates. Blanks are
// ignored and the last mark stands for the anceps.
func (m *Meter) IsValid(scansion string) bool {
	raw := Raw(scansion)
	if len(raw) < m.MinSyllables {
		return false
	}
	return m.valid[raw[:len(raw)-1]+string(Anceps)]
}

// ClosestPatterns returns the templates of the same length as scansion that
// lie at the smallest edit distance from it, with scansion's own final mark
// in place of the anceps.
func (m *Meter) ClosestPatterns(scansion string) []string {
	raw := Raw(scansion)
	if raw == "" {
		return nil
	}
	ending := raw[len(raw)-1:]
	candidate := raw[:len(raw)-1] + string(Anceps)

	best := -1
	var closest []string
	for _, t := range m.templates {
		if len(t) != len(candidate) {
			continue
		}
		d := levenshtein.ComputeDistance(candidate, t)
		switch {
		case best < 0 || d < best:
			best = d
			closest = []string{t[:len(t)-1] + ending}
		case d == best:
			closest = append(closest, t[:len(t)-1]+ending)
		}
	}
	return closest
}

// hexameterTemplates builds the 32 hexameters: five feet that are each a
// dactyl or a spondee, then the closing -X.
func hexameterTemplates() []string {
	out := make([]string, 0, 32)
	for mask := 0; mask < 32; mask++ {
		var b strings.Builder
		for foot := 4; foot >= 0; foot-- {
			if mask&(1<<foot) != 0 {
				b.WriteString(Spondee)
			} else {
				b.WriteString(Dactyl)
			}
		}
		b.WriteString(string(Stressed) + string(Anceps))
		out = append(out, b.String())
	}
	return out
}

// hendecasyllableTemplates builds the Phalaecian hendecasyllable: an aeolic
// base, a choriamb and the closing -U-U-X.
func hendecasyllableTemplates() []string {
	const body = "-UU-U-U-X"
	return []string{Spondee + body, Trochee + body, Iamb + body}
}

// Validator decides whether scansions fit a meter. The zero value knows no
// meters; use NewValidator or DefaultValidator.
type Validator struct {
	meters map[string]*Meter
}

var defaultValidator = NewValidator(
	NewMeter(Hexameter, hexameterTemplates()),
	NewMeter(Hendecasyllable, hendecasyllableTemplates()),
)

// DefaultValidator returns the shared validator for hexameter and
// hendecasyllable. It is immutable and safe for concurrent use.
func DefaultValidator() *Validator { return defaultValidator }

// NewValidator returns a validator for the given meters.
func NewValidator(meters ...*Meter) *Validator {
	v := &Validator{meters: make(map[string]*Meter, len(meters))}
	for _, m := range meters {
		v.meters[m.Name] = m
	}
	return v
}

// Meter looks up a meter by name.
func (v *Validator) Meter(name string) (*Meter, bool) {
	m, ok := v.meters[name]
	return m, ok
}

// Meters returns the known meters sorted by name.
func (v *Validator) Meters() []*Meter {
	out := make([]*Meter, 0, len(v.meters))
	for _, m := range v.meters {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IsValid reports whether scansion is valid for the named meter. An
// unknown meter validates nothing.
func (v *Validator) IsValid(meter, scansion string) bool {
	m, ok := v.meters[meter]
	return ok && m.IsValid(scansion)
}

// ClosestPatterns returns the nearest templates of the named meter.
func (v *Validator) ClosestPatterns(meter, scansion string) []string {
	m, ok := v.meters[meter]
	if !ok {
		return nil
	}
	return m.ClosestPatterns(scansion)
}

// Feet cuts a hexameter scansion into feet, reading from the end. Other
// meters are not divided into feet and yield nil.
func (v *Validator) Feet(meter, scansion string) []string {
	if _, ok := v.meters[meter]; !ok || meter != Hexameter {
		return nil
	}
	return hexameterFeet(Raw(scansion))
}
