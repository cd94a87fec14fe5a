package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChequeResponsePlainJSON(t *testing.T) {
	raw := `{"iban":"TR330006100519786457841326","checkNumber":"0012345",
		"branchCode":null,"accountNumber":"987654","customerIdNumber":"10000000146",
		"bankCode":"0061","micrCode":null,"checkAmount":"15000"}`

	rec := parseChequeResponse(raw, "cek1.jpg")
	require.NotNil(t, rec.FileName)
	assert.Equal(t, "cek1.jpg", *rec.FileName)
	require.NotNil(t, rec.IBAN)
	assert.Equal(t, "TR330006100519786457841326", *rec.IBAN)
	assert.Nil(t, rec.BranchCode)
	assert.Nil(t, rec.MICRCode)
	require.NotNil(t, rec.CustomerIDNumber)
	assert.Equal(t, "10000000146", *rec.CustomerIDNumber)
	assert.True(t, rec.HasData())
}

func TestParseChequeResponseStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"iban\": \"TR12\", \"checkNumber\": \"77\"}\n```"
	rec := parseChequeResponse(raw, "cek2.png")
	require.NotNil(t, rec.IBAN)
	assert.Equal(t, "TR12", *rec.IBAN)
	require.NotNil(t, rec.CheckNumber)
	assert.Equal(t, "77", *rec.CheckNumber)
}

func TestParseChequeResponseNumericAmount(t *testing.T) {
	rec := parseChequeResponse(`{"checkAmount": 15000.5}`, "cek3.jpg")
	require.NotNil(t, rec.CheckAmount)
	assert.Equal(t, "15000.5", *rec.CheckAmount)
}

func TestParseChequeResponseMalformedDegradesToNullRecord(t *testing.T) {
	for _, raw := range []string{
		"",
		"not json at all",
		"```json\n{broken\n```",
	} {
		rec := parseChequeResponse(raw, "cek4.jpg")
		require.NotNil(t, rec.FileName, "input %q", raw)
		assert.Equal(t, "cek4.jpg", *rec.FileName)
		assert.False(t, rec.HasData(), "input %q", raw)
	}
}

func TestParseChequeResponseMissingFieldsAreNull(t *testing.T) {
	rec := parseChequeResponse(`{"iban":"TR9"}`, "cek5.jpg")
	assert.Nil(t, rec.CheckNumber)
	assert.Nil(t, rec.BranchCode)
	assert.Nil(t, rec.AccountNumber)
	assert.Nil(t, rec.CustomerIDNumber)
	assert.Nil(t, rec.BankCode)
	assert.Nil(t, rec.MICRCode)
	assert.Nil(t, rec.CheckAmount)
}
