// internal/normalize/location_test.go
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation_CityAndAbbreviation(t *testing.T) {
	spec := ParseLocation("Chicago, IL")

	assert.Equal(t, "chicago", spec.City)
	assert.Equal(t, "il", spec.State)
	assert.Equal(t, "us", spec.CountryCode)
	assert.Equal(t, "Chicago, IL", spec.Original)
}

func TestParseLocation_FullStateName(t *testing.T) {
	spec := ParseLocation("Austin, Texas")

	assert.Equal(t, "austin", spec.City)
	assert.Equal(t, "tx", spec.State)
}

func TestParseLocation_StripsPostalCode(t *testing.T) {
	spec := ParseLocation("Brooklyn, NY 11201")

	assert.Equal(t, "brooklyn", spec.City)
	assert.Equal(t, "ny", spec.State)
}

func TestParseLocation_NoComma(t *testing.T) {
	spec := ParseLocation("denver co")

	assert.Equal(t, "denver", spec.City)
	assert.Equal(t, "co", spec.State)
}

func TestParseLocation_MultiWordCity(t *testing.T) {
	spec := ParseLocation("San Francisco, California")

	assert.Equal(t, "san francisco", spec.City)
	assert.Equal(t, "ca", spec.State)
}

func TestParseLocation_UnrecognizedStateDefaults(t *testing.T) {
	spec := ParseLocation("Toronto, Ontario")

	assert.Equal(t, "toronto", spec.City)
	assert.Equal(t, DefaultState, spec.State)
}

func TestParseLocation_DefaultsOnUnparseable(t *testing.T) {
	for _, input := range []string{"", "   ", "12345", "90210-1234"} {
		spec := ParseLocation(input)

		assert.Equal(t, DefaultCity, spec.City, "input %q", input)
		assert.Equal(t, DefaultState, spec.State, "input %q", input)
		assert.Equal(t, input, spec.Original)
	}
}

func TestParseLocation_CityOnlyKeepsDefaultState(t *testing.T) {
	spec := ParseLocation("Seattle")

	assert.Equal(t, "seattle", spec.City)
	assert.Equal(t, DefaultState, spec.State)
}
