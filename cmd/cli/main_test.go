package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/application/usecases/commands"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		estimateInput, estimateOffers, estimateVerbose = "", "", false
		estimateMaxParcels = commands.DefaultMaxParcels
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestEstimateCommand_Stdin(t *testing.T) {
	out, err := execute(t, "100 3\nPKG1 5 5 OFR001\nPKG2 15 5 OFR002\nPKG3 10 100 OFR003\n", "estimate")

	require.NoError(t, err)
	assert.Equal(t, "PKG1 0 175\nPKG2 0 275\nPKG3 35 665\n", out)
}

func TestEstimateCommand_FileAndOffers(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "batch.txt")
	offers := filepath.Join(dir, "offers.yaml")
	require.NoError(t, os.WriteFile(input, []byte("100 1\nPKG1 10 100 HALF\n1 50 100\n"), 0o600))
	require.NoError(t, os.WriteFile(offers, []byte(`
offers:
  - code: HALF
    rate: 0.5
    weight: {min: 0, max: 100}
    distance: {min: 0, max: 500}
`), 0o600))

	out, err := execute(t, "", "estimate", "--input", input, "--offers", offers)

	require.NoError(t, err)
	assert.Equal(t, "PKG1 350 350 2\n", out)
}

func TestEstimateCommand_MaxParcels(t *testing.T) {
	_, err := execute(t, "100 2\nPKG1 5 5\nPKG2 5 5\n", "estimate", "--max-parcels", "1")

	assert.ErrorIs(t, err, commands.ErrTooManyParcels)
}

func TestEstimateCommand_BadInput(t *testing.T) {
	_, err := execute(t, "", "estimate")

	assert.Error(t, err)
}
