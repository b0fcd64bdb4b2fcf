package fingerprint

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/leadforge/contact-cache/internal/domain"
)

// corporateSuffixes are stripped from the end of a company name before deriving a domain token
var corporateSuffixes = map[string]struct{}{
	"inc":         {},
	"ltd":         {},
	"llc":         {},
	"corp":        {},
	"corporation": {},
	"company":     {},
	"co":          {},
}

// freeMailDomains never identify an employer, so they never become domain fingerprints
var freeMailDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"live.com":       {},
	"msn.com":        {},
	"icloud.com":     {},
	"me.com":         {},
	"aol.com":        {},
	"proton.me":      {},
	"protonmail.com": {},
	"gmx.com":        {},
	"yandex.ru":      {},
	"mail.ru":        {},
}

// foldDiacritics decomposes accented letters and drops the combining marks ("José" -> "Jose")
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeField upper-cases s, keeps only [A-Z0-9 ], collapses runs of spaces and trims
func NormalizeField(s string) string {
	s = strings.ToUpper(foldDiacritics(s))

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}

// CompanyDomain derives a domain-like token from a company name ("Acme Corporation" -> "acme.com").
// Returns "" when the stripped token is outside the accepted length range.
func CompanyDomain(company string) string {
	fields := strings.FieldsFunc(strings.ToLower(foldDiacritics(company)), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})

	for len(fields) > 1 {
		if _, ok := corporateSuffixes[fields[len(fields)-1]]; !ok {
			break
		}
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 1 {
		if _, ok := corporateSuffixes[fields[0]]; ok {
			return ""
		}
	}

	var b strings.Builder
	for _, f := range fields {
		for _, r := range f {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
	}

	token := b.String()
	if len(token) < domain.MIN_DOMAIN_TOKEN_LENGTH || len(token) > domain.MAX_DOMAIN_TOKEN_LENGTH {
		return ""
	}
	return token + domain.PLACEHOLDER_TLD
}

// IsFreeMailDomain reports whether domain belongs to a consumer mailbox provider
func IsFreeMailDomain(host string) bool {
	_, ok := freeMailDomains[strings.ToLower(host)]
	return ok
}
