package guard_test

import (
	"errors"
	"testing"

	"fleetdelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("manifest not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardEmbedded shows the guard embedded in a domain value,
// the way entities in this module use it.
func TestConstructorGuardEmbedded(t *testing.T) {
	errManifestNotConstructed := errors.New("Manifest must be created via NewManifest")

	type Manifest struct {
		parcelIDs []string
		guard     guard.ConstructorGuard
	}

	newManifest := func(ids ...string) (Manifest, error) {
		if len(ids) == 0 {
			return Manifest{}, errors.New("at least one parcel is required")
		}
		return Manifest{parcelIDs: ids, guard: guard.NewConstructorGuard()}, nil
	}

	validate := func(m Manifest) error {
		return m.guard.Validate(errManifestNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		m, err := newManifest("PKG1", "PKG2")

		require.NoError(t, err)
		require.NoError(t, validate(m))
		assert.Len(t, m.parcelIDs, 2)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var m Manifest

		err := validate(m)

		require.Error(t, err)
		assert.Equal(t, errManifestNotConstructed, err)
	})

	t.Run("copies_keep_the_flag", func(t *testing.T) {
		m, err := newManifest("PKG1")
		require.NoError(t, err)

		cp := m

		require.NoError(t, validate(cp))
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 500 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}

func BenchmarkConstructorGuard(b *testing.B) {
	b.Run("Validate_Success", func(b *testing.B) {
		g := guard.NewConstructorGuard()
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = g.Validate(err)
		}
	})

	b.Run("Validate_ZeroValue", func(b *testing.B) {
		var g guard.ConstructorGuard
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = g.Validate(err)
		}
	})
}
