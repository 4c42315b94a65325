package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ehdc-llpg/linkage/internal/symspell"
)

func TestWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, "a b", Whitespace(" a b "))
	assert.Equal(t, "ab", NoSpace(" a b "))
	assert.Equal(t, "a b", Lowercase(" A B "))
	assert.Equal(t, "A B", Uppercase(" a b "))
	assert.Equal(t, "", Whitespace(""))
}

func TestStripPunctuation(t *testing.T) {
	assert.Equal(t, "joe k ltd", StripPunctuation(" Joe (K) Ltd. "))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "27211234567", DigitsOnly("+27 (21) 1234567"))
}

func TestWordSortAndReverse(t *testing.T) {
	assert.Equal(t, "a b c", WordSort("c a b"))
	assert.Equal(t, "cba", Reverse("abc"))
}

func TestURLAndEmailDomain(t *testing.T) {
	assert.Equal(t, "google.com", URLDomain("http://www.google.com/a/b"))
			assert.Equal(t, "google.com", URLDomain("www.google.com"))
			assert.Equal(t, "arst.com", EmailDomain("srtar@arst.com"))
			assert.Equal(t, "abc", EmailDomain("abc"))
		}

		func TestCompose(t *testing.T) {
			composed := Compose(WordSort, Reverse)
			assert.Equal(t, "dlrow olleh", composed("world hello"))
		}

		func TestAliasNormaliserExpandsUKAbbreviations(t *testing.T) {
			n := NewAliasNormaliser(UKAddressAliasOrder, UKAddressAbbreviations)
			assert.Equal(t, "123 HIGH STREET", n.Normalise("123 HIGH ST"))
			assert.Equal(t, "THE GARDENS CLOSE", n.Normalise("THE GDNS CL"))
		}

		func TestDoubleMetaphoneReturnsAtLeastOneCode(t *testing.T) {
			codes := DoubleMetaphone("SMITH")
			assert.NotEmpty(t, codes)
			assert.Equal(t, codes[0], Metaphone("SMITH"))
		}

		func TestDoubleMetaphoneEmptyInput(t *testing.T) {
			assert.Empty(t, DoubleMetaphone(""))
			assert.Equal(t, "", Metaphone(""))
		}

		func TestSymSpellCorrectFixesKnownTypo(t *testing.T) {
			cfg := symspell.DefaultConfig()
			cfg.Enabled = true
			cfg.MinTermLength = 2
			corrector := symspell.InitWithEntries([]symspell.DictionaryEntry{
					{Term: "ROAD", Frequency: 1000},
					{Term: "STREET", Frequency: 1000},
				}, cfg)

			correct := SymSpellCorrect(corrector)
			assert.Equal(t, "ROAD", correct("ROAF"))
		}

		func TestSymSpellCorrectNilCorrectorIsIdentity(t *testing.T) {
			correct := SymSpellCorrect(nil)
			assert.Equal(t, "123 HIGH ST", correct("123 HIGH ST"))
		}
