package scansion

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBlankPunctuation(t *testing.T) {
	assert.Equal(t, "arma  virumque   cano ", BlankPunctuation("arma, virumque ; cano?"))
}

func TestSemivowels(t *testing.T) {
	tests := []struct {
		in         string
		strict     string
		permissive string
	}{
		{"iam", "jam", "jam"},
		{"Iuppiter", "Juppiter", "Juppiter"},
		{"adiuvo", "adjuvo", "adjuvo"},
		{"coniunx", "conjunx", "conjunx"},
		{"maior", "major", "major"},
		{"cuius", "cujus", "cujus"},
		{"silua", "silua", "silva"},
		{"Lavinia", "Lavinia", "Lavinja"},
		{"laudo", "laudo", "laudo"},
		{"qui", "qui", "qui"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.strict, Semivowels(tt.in, false))
			assert.Equal(t, tt.permissive, Semivowels(tt.in, true))
		})
	}
}

func TestElide(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"multum ille", "mult   ille"},
		{"atque altae", "atqu  altae"},
		{"mea est", "me  est"},
		{"illi inter", "ill  inter"},
		{"puellae ante", "puell   ante"},
		{"nec hic", "nec hic"},
		{"ille hic", "ill  hic"},
		{"mea hic", "me  hic"},
		{"filii hic", "fili  hic"},
		{"tuae haec", "tu   haec"},
		{"monstrum horrendum", "monstr   horrendum"},
		{"Tantaene animis", "Tantaen  animis"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Elide(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, utf8.RuneCountInString(tt.in), utf8.RuneCountInString(got))
		})
	}
}

func TestAccentByPosition(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"arma", "ārma"},
		{"sex", "sēx"},
		{"Troja", "Trōja"},
		{"patrem", "pātrem"},
		{"pater est", "pater ēst"},
		{"cano  Troja", "canō  Trōja"},
		{"aqua", "aqua"},
		{"ab ōrīs", "ab ōrīs"},
		// the second vowel of a diphthong is never marked
		{"caelestibus", "caelēstibus"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, AccentByPosition(tt.in))
		})
	}
}

func TestTransformKeepsLength(t *testing.T) {
	lines := []string{
		"Arma virumque cano, Troiae qui prīmus ab ōrīs",
		"impulerit. Tantaene animis caelestibus irae?",
		"quicum ludere, quem in sinu tenere,",
		"",
		"!!!",
	}
	for _, line := range lines {
		for _, permissive := range []bool{false, true} {
			got := Transform(line, permissive)
			assert.Equal(t, utf8.RuneCountInString(line), utf8.RuneCountInString(got), "%q permissive=%v", line, permissive)
		}
	}
}
