package encode

import "github.com/ehdc-llpg/linkage/internal/symspell"

// SymSpellCorrect builds an Encode from a *symspell.Corrector, applying
// its token-level spelling correction ahead of comparison (e.g. before
// StripPunctuation or DoubleMetaphone in a Compose chain), so a
// misspelled "ROWD" still blocks/compares against "ROAD". A nil
// corrector (SymSpell disabled) is the identity function, matching
// Corrector.CorrectAddress's own nil-receiver guard in
// internal/symspell/corrector.go.
func SymSpellCorrect(c *symspell.Corrector) func(string) string {
	return func(text string) string {
		if text == "" {
			return ""
		}
		corrected, _ := c.CorrectAddress(text)
		return corrected
	}
}
