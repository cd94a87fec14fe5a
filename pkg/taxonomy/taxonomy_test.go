package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docsort/pkg/taxonomy"
)

func TestClassifyKeywordMatches(t *testing.T) {
	c := taxonomy.NewDefault()

	cases := []struct {
		text string
		want taxonomy.Category
	}{
		{"E-FATURA fatura no: ABC2023000000001", taxonomy.Invoices},
		{"türkiye ticaret sicili gazetesi sayı 1234", taxonomy.TradeRegistryGazette},
		{"bu çek karşılığında ödeyiniz", taxonomy.Cheque},
		{"yerleşim yeri belgesi", taxonomy.ResidenceCertificate},
		{"vergi levhası gelir idaresi başkanlığı", taxonomy.TaxPlate},
		{"hiçbir anahtar kelime içermeyen metin", taxonomy.Others},
		{"", taxonomy.Others},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(tc.text), "text %q", tc.text)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := taxonomy.NewDefault()
	text := "işbu sözleşme taraflar arasında akdedilmiştir"
	first := c.Classify(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(text))
	}
}

func TestClassifyHonorsTableOrder(t *testing.T) {
	// "imza beyannamesi" carries keywords of both categories below; the
	// earlier entry must win regardless of where its keyword sits in the
	// text.
	c := taxonomy.New([]taxonomy.Entry{
		{Category: taxonomy.Contracts, Keywords: []string{"sözleşmesi"}},
		{Category: taxonomy.SignatureDeclaration, Keywords: []string{"imza beyannamesi"}},
	})
	got := c.Classify("imza beyannamesi ekinde hizmet sözleşmesi")
	assert.Equal(t, taxonomy.Contracts, got)

	reversed := taxonomy.New([]taxonomy.Entry{
		{Category: taxonomy.SignatureDeclaration, Keywords: []string{"imza beyannamesi"}},
		{Category: taxonomy.Contracts, Keywords: []string{"sözleşmesi"}},
	})
	assert.Equal(t, taxonomy.SignatureDeclaration, reversed.Classify("imza beyannamesi ekinde hizmet sözleşmesi"))
}

func TestClassifyTurkishCasing(t *testing.T) {
	c := taxonomy.NewDefault()
	// Dotted capital İ must fold to i under Turkish casing for the
	// "irsaliye" keyword to match.
	assert.Equal(t, taxonomy.Invoices, c.Classify("TAŞIMA İRSALİYE"))
}

func TestClassifySubstringContainment(t *testing.T) {
	// Substring matching is intentional: "sicil" inside a longer word
	// still matches activity_certificate. Earlier entries that would need
	// whole words do not apply here.
	c := taxonomy.New([]taxonomy.Entry{
		{Category: taxonomy.ActivityCertificate, Keywords: []string{"sicil"}},
	})
	assert.Equal(t, taxonomy.ActivityCertificate, c.Classify("tescilsicilxyz"))
}

func TestFoldersIncludeReservedCategories(t *testing.T) {
	folders := taxonomy.Folders()
	assert.Len(t, folders, 23)
	assert.Contains(t, folders, taxonomy.Others)
	assert.Contains(t, folders, taxonomy.ErrorFiles)
}
