package identifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsort/pkg/identifier"
)

func TestValidateTC(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"10000000146", true},
		{"10000000147", false}, // last check digit off by one
		{"10000000157", false}, // tenth digit fails the weighted check
		{"00000000146", false}, // leading zero
		{"1000000014", false},  // 10 digits
		{"100000001466", false},
		{"1000000014a", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valid, identifier.ValidateTC(c.in), "input %q", c.in)
	}
}

func TestValidateVKN(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"1111111115", true},
		{"1111111110", false},
		{"111111111", false},
		{"11111111155", false},
		{"111111111x", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valid, identifier.ValidateVKN(c.in), "input %q", c.in)
	}
}

func TestExtractTCSkipsInvalidRuns(t *testing.T) {
	text := "müşteri no 10000000147 kimlik 10000000146 diğer"
	tc, ok := identifier.ExtractTC(text)
	require.True(t, ok)
	assert.Equal(t, "10000000146", tc)
}

func TestExtractIgnoresLongerDigitRuns(t *testing.T) {
	// A 12-digit run must not match as an 11-digit TC.
	_, ok := identifier.ExtractTC("ref 100000001461 son")
	assert.False(t, ok)
}

func TestExtractPrefersTCOverEarlierVKN(t *testing.T) {
	text := "vergi no 1111111115 ... tc kimlik 10000000146"
	id, ok := identifier.Extract(text)
	require.True(t, ok)
	assert.Equal(t, identifier.KindTC, id.Kind)
	assert.Equal(t, "10000000146", id.Value)
}

func TestExtractFallsBackToVKN(t *testing.T) {
	id, ok := identifier.Extract("vergi kimlik no 1111111115 beyan")
	require.True(t, ok)
	assert.Equal(t, identifier.KindVKN, id.Kind)
	assert.Equal(t, "1111111115", id.Value)
}

func TestExtractNotFound(t *testing.T) {
	for _, text := range []string{
		"",
		"no digits here",
		"invalid runs 12345678901 and 1234567890", // both fail their checksums
	} {
		_, ok := identifier.Extract(text)
		assert.False(t, ok, "text %q", text)
	}
}
