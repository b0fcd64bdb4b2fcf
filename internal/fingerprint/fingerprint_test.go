package fingerprint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/contact-cache/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestSoundex(t *testing.T) {
	tests := map[string]string{
		"Robert":   "R163",
		"Rupert":   "R163",
		"Ashcraft": "A261",
		"Tymczak":  "T522",
		"Pfister":  "P236",
		"Honeyman": "H555",
		"Smith":    "S530",
		"SMYTH":    "S530",
		"John":     "J500",
		"Jon":      "J500",
		"Lee":      "L000",
		"O'Brien":  "O165",
		"":         "",
		"1234":     "",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, Soundex(input))
		})
	}
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"John", "JOHN"},
		{"  acme,   inc. ", "ACME INC"},
		{"O'Brien-Smith", "OBRIENSMITH"},
		{"José", "JOSE"},
		{"Müller GmbH", "MULLER GMBH"},
		{"3M", "3M"},
		{"!!!", ""},
		{"", ""},
		{"\tBeta\nLLC", "BETA LLC"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeField(tt.input))
		})
	}
}

func TestCompanyDomain(t *testing.T) {
	tests := []struct {
		company  string
		expected string
	}{
		{"Acme Inc", "acme.com"},
		{"Acme Corporation", "acme.com"},
		{"ACME INC.", "acme.com"},
		{"Acme Co., Ltd.", "acme.com"},
		{"Beta LLC", "beta.com"},
		{"Blue Sky Company", "bluesky.com"},
		{"Co", ""},
		{"AB", ""},
		{"", ""},
		{"Company Store", "companystore.com"},
		{"Averyveryveryveryveryveryveryveryveryverylongcompanyname", ""},
	}

	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompanyDomain(tt.company))
		})
	}
}

func TestGenerate(t *testing.T) {
	result, err := Generate(domain.Contact{FirstName: "John", LastName: "Smith", Company: "Acme Inc"})
	require.NoError(t, err)

	assert.Equal(t, Normalized{FirstName: "JOHN", LastName: "SMITH", Company: "ACME INC", Domain: "acme.com"}, result.Normalized)
	assert.Equal(t, []domain.Fingerprint{
		{Type: domain.FingerprintTypeStandard, Value: "JOHN|SMITH|ACME INC"},
		{Type: domain.FingerprintTypePhonetic, Value: "J500|S530|ACME INC"},
		{Type: domain.FingerprintTypeDomain, Value: "JOHN|SMITH|acme.com"},
	}, result.Fingerprints)
}

func TestGenerate_Deterministic(t *testing.T) {
	contact := domain.Contact{FirstName: "Jane", LastName: "Doe", Company: "Beta LLC", Email: strPtr("jane@beta.io")}

	first, err := Generate(contact)
	require.NoError(t, err)
	second, err := Generate(contact)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_StandardIgnoresCaseAndPunctuation(t *testing.T) {
	a, err := Generate(domain.Contact{FirstName: "John", LastName: "Smith", Company: "Acme Inc"})
	require.NoError(t, err)
	b, err := Generate(domain.Contact{FirstName: "john", LastName: "SMITH", Company: "ACME INC."})
	require.NoError(t, err)

	fa, _ := a.Get(domain.FingerprintTypeStandard)
	fb, _ := b.Get(domain.FingerprintTypeStandard)
	assert.Equal(t, fa, fb)

	c, err := Generate(domain.Contact{FirstName: "J.o.h.n", LastName: "Smith!", Company: "acme, inc"})
	require.NoError(t, err)
	fc, _ := c.Get(domain.FingerprintTypeStandard)
	assert.Equal(t, "JOHN|SMITH|ACME INC", fc.Value)
	assert.Equal(t, fa.Value, fc.Value)
}

func TestGenerate_DomainUnifiesCompanyVariants(t *testing.T) {
	a, err := Generate(domain.Contact{FirstName: "John", LastName: "Smith", Company: "Acme Inc"})
	require.NoError(t, err)
	b, err := Generate(domain.Contact{FirstName: "John", LastName: "Smith", Company: "Acme Corporation"})
	require.NoError(t, err)

	sa, _ := a.Get(domain.FingerprintTypeStandard)
	sb, _ := b.Get(domain.FingerprintTypeStandard)
	assert.NotEqual(t, sa, sb)

	da, ok := a.Get(domain.FingerprintTypeDomain)
	require.True(t, ok)
	db, ok := b.Get(domain.FingerprintTypeDomain)
	require.True(t, ok)
	assert.Equal(t, da, db)
}

func TestGenerate_EmailDomainHint(t *testing.T) {
	result, err := Generate(domain.Contact{FirstName: "Ann", LastName: "Lee", Company: "Acme", Email: strPtr("ann@Acme.IO")})
	require.NoError(t, err)
	fp, ok := result.Get(domain.FingerprintTypeDomain)
	require.True(t, ok)
	assert.Equal(t, "ANN|LEE|acme.io", fp.Value)

	// free mail falls back to the company
	result, err = Generate(domain.Contact{FirstName: "Ann", LastName: "Lee", Company: "Acme", Email: strPtr("ann.lee@gmail.com")})
	require.NoError(t, err)
	fp, ok = result.Get(domain.FingerprintTypeDomain)
	require.True(t, ok)
	assert.Equal(t, "ANN|LEE|acme.com", fp.Value)
}

func TestGenerate_OmitsUnusableKeys(t *testing.T) {
	// company too short for a domain token
	result, err := Generate(domain.Contact{FirstName: "Ann", LastName: "Lee", Company: "AB"})
	require.NoError(t, err)
	_, ok := result.Get(domain.FingerprintTypeDomain)
	assert.False(t, ok)
	assert.Len(t, result.Fingerprints, 2)

	// no name: only the standard key
	result, err = Generate(domain.Contact{Company: "Acme Inc"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Fingerprint{{Type: domain.FingerprintTypeStandard, Value: "||ACME INC"}}, result.Fingerprints)
}

func TestGenerate_ValidationError(t *testing.T) {
	result, err := Generate(domain.Contact{FirstName: " ", LastName: "...", Company: "!!"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	require.NotNil(t, result)
	assert.Empty(t, result.Fingerprints)
}

func TestResult_GetNil(t *testing.T) {
	var r *Result
	_, ok := r.Get(domain.FingerprintTypeStandard)
	assert.False(t, ok)
}
