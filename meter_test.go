package scansion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/scansion"
)

func TestNewMeterFromOutside(t *testing.T) {
	glyconic := scansion.NewMeter("glyconic", []string{"---UU-UX", "-U-UU-UX", "U--UU-UX"})
	v := scansion.NewValidator(glyconic)

	m, ok := v.Meter("glyconic")
	require.True(t, ok)
	assert.Equal(t, 8, m.MinSyllables)
	assert.True(t, v.IsValid("glyconic", "---UU-U-"))
	assert.False(t, v.IsValid("glyconic", "--UUU-U-"))
	assert.Equal(t, []string{"---UU-U-"}, v.ClosestPatterns("glyconic", "---UUUU-"))
	assert.Equal(t, []*scansion.Meter{glyconic}, v.Meters())
}
