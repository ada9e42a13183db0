package scansion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lexiconData = `! quantities for a handful of forms
cano	canō
Troiae	Trōiae
primus	prīmus

oris	ōrīs
`

func TestReadLexicon(t *testing.T) {
	lx, err := ReadLexicon(strings.NewReader(lexiconData))
	require.NoError(t, err)
	assert.Equal(t, 4, lx.Len())

	got, ok := lx.Lookup("Primus")
	assert.True(t, ok)
	assert.Equal(t, "prīmus", got)

	_, ok = lx.Lookup("arma")
	assert.False(t, ok)
}

func TestReadLexiconErrors(t *testing.T) {
	_, err := ReadLexicon(strings.NewReader("cano canō\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = ReadLexicon(strings.NewReader("cano\tcanis\n"))
	assert.ErrorContains(t, err, "does not spell")
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.txt")
	require.NoError(t, os.WriteFile(path, []byte(lexiconData), 0o644))

	lx, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, 4, lx.Len())

	_, err = LoadLexicon(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestGuessMacrons(t *testing.T) {
	lx, err := ReadLexicon(strings.NewReader(lexiconData))
	require.NoError(t, err)

	assert.Equal(t, "Arma virumque canō, Trōiae qui prīmus ab ōrīs",
		lx.GuessMacrons("Arma virumque cano, Troiae qui primus ab oris"))
	assert.Equal(t, "CANŌ", lx.GuessMacrons("CANO"))
}

func TestLexiconAsMacronizer(t *testing.T) {
	lx, err := ReadLexicon(strings.NewReader(lexiconData))
	require.NoError(t, err)

	v, err := New(WithMacronizer(lx)).Scan("Arma virumque cano, Troiae qui primus ab oris", Hexameter, Options{})
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "-UU-UU-----UU--", v.Raw())
}
