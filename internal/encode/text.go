// Package encode provides the domain-specific value encoders the design
// section 4.1 specifies as "external collaborators, specified by
// behavior only": whitespace collapsing, punctuation stripping,
// digit-only extraction, URL/email domain extraction, alias
// normalisation, word sorting, string reversal, and phonetic coding.
// Every encoder here has the signature func(string) string (directly
// usable as a valuesim.Encode) and returns "" on empty input, per
// the "any encoder receiving an empty/null input returns the
// missing sentinel" (valuesim.Field treats an encoded "" as missing).
// Grounded on encode.py and encoders.py, folded
// together with hand-written UK-specific equivalents in
// internal/normalize/address.go and enhanced.go.
package encode

import (
	"regexp"
	"sort"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Whitespace collapses runs of whitespace to a single space and trims
// the ends. Grounded on encode.py's normspace.
func Whitespace(text string) string {
	if text == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// NoSpace strips all whitespace. Grounded on encode.py's nospace.
func NoSpace(text string) string {
	if text == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), "")
}

// Lowercase lowercases and collapses whitespace. Grounded on encode.py's
// lowstrip.
func Lowercase(text string) string {
	if text == "" {
		return ""
	}
	return Whitespace(strings.ToLower(text))
}

// Uppercase is Lowercase's opposite case, matching
// CanonicalAddress convention of uppercasing UK addresses
// (internal/normalize/address.go).
func Uppercase(text string) string {
	if text == "" {
		return ""
	}
	return Whitespace(strings.ToUpper(text))
}

var nonAlnumRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// StripPunctuation lowercases, replaces runs of non-alphanumeric
// characters with a single space, and collapses whitespace. Grounded on
// encode.py's alnumsp and punctuation-removal loop in
// CanonicalAddressDebug.
func StripPunctuation(text string) string {
	if text == "" {
		return ""
	}
	return Whitespace(nonAlnumRe.ReplaceAllString(strings.ToLower(text), " "))
}

var nonDigitRe = regexp.MustCompile(`\D+`)

// DigitsOnly strips everything but digits, for phone-number-shaped
// fields. Grounded on encode.py's digits.
func DigitsOnly(text string) string {
	if text == "" {
		return ""
	}
	return nonDigitRe.ReplaceAllString(strings.TrimSpace(text), "")
}

// WordSort sorts the space-separated words of text alphabetically, so
// two differently-ordered renderings of the same name compare equal.
// Grounded on encode.py's sorted_words.
func WordSort(text string) string {
	if text == "" {
		return ""
	}
	words := strings.Fields(text)
	sort.Strings(words)
	return strings.Join(words, " ")
}

// Reverse reverses text rune-wise. Grounded on encode.py's reverse.
func Reverse(text string) string {
	if text == "" {
		return ""
	}
	r := []rune(text)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

var urlDomainRe = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?([^/]+)(?:/.*)?$`)

		// URLDomain extracts the domain from a URL, stripping scheme and a
		// leading www. Grounded on encode.py's urldomain.
		func URLDomain(text string) string {
			if text == "" {
				return ""
			}
			m := urlDomainRe.FindStringSubmatch(text)
			if m == nil {
				return text
			}
			return m[1]
		}

		var emailDomainRe = regexp.MustCompile(`^([^@]+)@(.+)$`)

		// EmailDomain extracts the domain from an email address. Grounded on
		// encode.py's emaildomain.
		func EmailDomain(text string) string {
			if text == "" {
				return ""
			}
			m := emailDomainRe.FindStringSubmatch(text)
			if m == nil {
				return text
			}
			return m[2]
		}

		// Compose builds a right-to-left composition of encoders: Compose(f, g,
		// h)(text) == f(g(h(text))), matching the Compose and
		// encode.py's wrap.
		func Compose(funcs...func(string) string) func(string) string {
			return func(text string) string {
				for i := len(funcs) - 1; i >= 0; i-- {
					text = funcs[i](text)
				}
				return text
			}
		}
