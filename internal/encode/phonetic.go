package encode

import "strings"

// MultiEncode is a string -> list<string> encoder, the shape the design
// section 4.1 reserves for double-metaphone-style encoders that can
// return more than one code for a word. Unlike the single-valued
// Encode functions in this package, a MultiEncode's results are meant
// to be compared as a set (valuesim.Average/valuesim.Maximum over a
// record.MultiGetter), not plugged directly into valuesim.Field.
type MultiEncode func(string) []string

var phoneticReplacements = []struct{ pattern, replacement string }{
	{"PH", "F"},
	{"GH", "F"},
	{"CK", "K"},
	{"QU", "KW"},
	{"TH", "0"},
	{"SH", "X"},
	{"CH", "X"},
	{"WH", "W"},
	{"KN", "N"},
	{"WR", "R"},
}

// DoubleMetaphone produces up to two simplified phonetic codes for text:
// a primary code, and (when consonant-cluster handling could plausibly
// have gone a different way) a secondary alternative. This generalises
// internal/phonetics/metaphone.go SimplePhonetics, which
// only ever returned one code duplicated into both return values, into
// an encoder that can genuinely disagree on the two codes — the design
// section 4.1 calls out "phonetic coding (double-metaphone, which
// returns up to two codes)" as a distinct contract from a single-code
// soundex.
func DoubleMetaphone(text string) []string {
	if text == "" {
		return nil
	}
	primary := metaphoneCode(text, false)
	secondary := metaphoneCode(text, true)
	if secondary == primary || secondary == "" {
		return []string{primary}
	}
	return []string{primary, secondary}
}

// Metaphone is DoubleMetaphone's primary code alone, as a plain Encode
// for callers that only want the one code (e.g. as a direct
// valuesim.Field encoder rather than a set comparison).
func Metaphone(text string) string {
	codes := DoubleMetaphone(text)
	if len(codes) == 0 {
		return ""
	}
	return codes[0]
}

// metaphoneCode runs replacement table, then strips
// vowels (after the first letter) and collapses doubled letters. When
// alternate is true, WH additionally folds to F instead of W and GH
// folds to "" instead of F, modelling the one genuine primary/secondary
// fork double metaphone makes for English silent-letter clusters.
func metaphoneCode(text string, alternate bool) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return ""
	}

	for _, rep := range phoneticReplacements {
		repl := rep.replacement
		if alternate {
			switch rep.pattern {
			case "WH":
				repl = "F"
			case "GH":
				repl = ""
			}
		}
		s = strings.ReplaceAll(s, rep.pattern, repl)
	}

	if len(s) > 1 {
		first := s[:1]
		rest := strings.Map(func(r rune) rune {
				switch r {
				case 'A', 'E', 'I', 'O', 'U', 'Y':
					return -1
				default:
					return r
				}
			}, s[1:])
		s = first + rest
	}

	var cleaned strings.Builder
	var last rune
	for _, r := range s {
		if r != last {
			cleaned.WriteRune(r)
			last = r
		}
	}
	code := cleaned.String()
	if len(code) > 4 {
		code = code[:4]
	}
	return code
}
