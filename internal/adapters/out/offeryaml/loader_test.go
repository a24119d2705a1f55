package offeryaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/domain/model/offer"
)

const builtins = `
offers:
  - code: OFR001
    rate: 0.10
    weight: {min: 70, max: 200}
    distance: {min: 0, max: 200}
  - code: OFR002
    rate: 0.07
    weight: {min: 10, max: 150, max_exclusive: true}
    distance: {min: 50, max: 250}
  - code: OFR003
    rate: 0.05
    weight: {min: 10, max: 250}
    distance: {min: 50, max: 250}
`

func TestParse_MatchesDefaultCatalog(t *testing.T) {
	catalog, err := Parse(strings.NewReader(builtins))
	require.NoError(t, err)

	defaults := offer.DefaultCatalog()
	assert.Equal(t, defaults.Codes(), catalog.Codes())

	probes := []struct{ weight, distance float64 }{
		{70, 0}, {69.9, 100}, {200, 200}, {149.9, 50}, {150, 50}, {250, 250}, {10, 49},
	}
	for _, code := range defaults.Codes() {
		for _, p := range probes {
			assert.InDelta(t,
				defaults.DiscountRate(code, p.weight, p.distance),
				catalog.DiscountRate(code, p.weight, p.distance),
				1e-12, "%s w=%v d=%v", code, p.weight, p.distance)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]struct {
		doc  string
		want error
	}{
		"empty document": {doc: "", want: ErrNoOffers},
		"empty list":     {doc: "offers: []", want: ErrNoOffers},
		"duplicate code": {
			doc: `
offers:
  - {code: A, rate: 0.1, weight: {min: 0, max: 1}, distance: {min: 0, max: 1}}
  - {code: A, rate: 0.2, weight: {min: 0, max: 1}, distance: {min: 0, max: 1}}
`,
			want: offer.ErrDuplicateCode,
		},
		"missing code": {
			doc:  `offers: [{rate: 0.1, weight: {min: 0, max: 1}, distance: {min: 0, max: 1}}]`,
			want: offer.ErrCodeIsRequired,
		},
		"inverted range": {
			doc:  `offers: [{code: A, rate: 0.1, weight: {min: 5, max: 1}, distance: {min: 0, max: 1}}]`,
			want: offer.ErrRangeIsInvalid,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader(`offers: [{code: A, rate: 0.1, percent: 10}]`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		catalog, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, []string{"OFR001", "OFR002", "OFR003"}, catalog.Codes())
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "offers.yaml")
		require.NoError(t, os.WriteFile(path, []byte(builtins), 0o600))

		catalog, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, catalog.Codes(), 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
