package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/batch"
)

func TestParse_WithFleet(t *testing.T) {
	in, err := Parse(strings.NewReader(`
100 3
PKG1 50 30 OFR001

PKG2 75 125 OFFR0008
PKG3 175 100
2 70 200
`), 0)
	require.NoError(t, err)

	assert.InDelta(t, 100, in.BaseCost, 0)
	assert.Equal(t, []batch.ParcelInput{
		{ID: "PKG1", Weight: 50, Distance: 30, OfferCode: "OFR001"},
		{ID: "PKG2", Weight: 75, Distance: 125, OfferCode: "OFFR0008"},
		{ID: "PKG3", Weight: 175, Distance: 100},
	}, in.Parcels)
	require.NotNil(t, in.Fleet)
	assert.Equal(t, 2, in.Fleet.Count())
	assert.InDelta(t, 70, in.Fleet.MaxSpeed(), 0)
	assert.InDelta(t, 200, in.Fleet.MaxLoad(), 0)
	assert.Empty(t, in.LineErrors)
}

func TestParse_WithoutFleet(t *testing.T) {
	in, err := Parse(strings.NewReader("100 1\nPKG1 5 5 OFR001\n"), 0)
	require.NoError(t, err)

	assert.Nil(t, in.Fleet)
	assert.Len(t, in.Parcels, 1)
}

func TestParse_BadParcelLinesAreSkipped(t *testing.T) {
	in, err := Parse(strings.NewReader("100 3\nPKG1 abc 5\nPKG2 5\nPKG3 5 5\n"), 0)
	require.NoError(t, err)

	assert.Equal(t, []batch.ParcelInput{{ID: "PKG3", Weight: 5, Distance: 5}}, in.Parcels)
	require.Len(t, in.LineErrors, 2)
	assert.Equal(t, `Skipping package PKG1: weight "abc" is not a number`, in.LineErrors[0])
	assert.True(t, strings.HasPrefix(in.LineErrors[1], "Skipping package PKG2: "))
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]struct {
		input string
		want  error
	}{
		"empty":          {input: "  \n\n", want: ErrNoInput},
		"short header":   {input: "100\n", want: ErrHeaderIsInvalid},
		"bad base cost":  {input: "x 1\nA 1 1\n", want: ErrHeaderIsInvalid},
		"negative count": {input: "100 -1\n", want: ErrHeaderIsInvalid},
		"missing lines":  {input: "100 2\nA 1 1\n", want: ErrMissingParcels},
		"bad fleet":      {input: "100 1\nA 1 1\n2 fast 200\n", want: ErrFleetIsInvalid},
		"trailing lines": {input: "100 1\nA 1 1\n2 70 200\nextra\n", want: ErrTrailingInput},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), 0)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_FleetValuesAreValidated(t *testing.T) {
	_, err := Parse(strings.NewReader("100 1\nA 1 1\n0 70 200\n"), 0)
	assert.Error(t, err)
}

func TestParse_ParcelLimit(t *testing.T) {
	input := "100 3\nA 1 1\nB 1 1\nC 1 1\n"

	_, err := Parse(strings.NewReader(input), 2)
	assert.ErrorIs(t, err, commands.ErrTooManyParcels)

	in, err := Parse(strings.NewReader(input), 3)
	require.NoError(t, err)
	assert.Len(t, in.Parcels, 3)

	_, err = Parse(strings.NewReader(fmt.Sprintf("100 %d\n", commands.DefaultMaxParcels+1)), 0)
	assert.ErrorIs(t, err, commands.ErrTooManyParcels, "the declared count is checked before the lines")
}
