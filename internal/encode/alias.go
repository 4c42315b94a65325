package encode

import "regexp"

// AliasNormaliser maps a set of alias/abbreviation spellings to one
// primary form via regex substitution, generalising
// address-only AbbrevRules (internal/normalize/address.go) to any field
// and grounded directly on encode.py's
// Normaliser class (d[primary] == [aliases]).
type AliasNormaliser struct {
	order []string
	patterns map[string]*regexp.Regexp
}

// NewAliasNormaliser compiles one case-insensitive whole-word
// alternation regex per primary form. aliases maps a primary spelling to
// the list of short/alternate forms that should be rewritten to it (the
// primary form itself does not need to be listed). Iteration order
// follows the order primaries are given, so overlapping rules apply
// deterministically left to right — single rules map
// had no such guarantee, a bug this generalisation fixes.
func NewAliasNormaliser(primaries []string, aliases map[string][]string) *AliasNormaliser {
	n := &AliasNormaliser{
		order: append([]string(nil), primaries...),
		patterns: make(map[string]*regexp.Regexp, len(primaries)),
	}
	for _, primary := range primaries {
		forms := aliases[primary]
		if len(forms) == 0 {
			continue
		}
		n.patterns[primary] = regexp.MustCompile(`(?i)\b(` + joinAlt(forms) + `)\b`)
	}
	return n
}

func joinAlt(forms []string) string {
	out := forms[0]
	for _, f := range forms[1:] {
		out += "|" + f
	}
	return out
}

// Normalise rewrites every alias occurrence in text to its primary form.
func (n *AliasNormaliser) Normalise(text string) string {
	if text == "" {
		return ""
	}
	for _, primary := range n.order {
		re, ok := n.patterns[primary]
		if !ok {
			continue
		}
		text = re.ReplaceAllString(text, primary)
	}
	return Whitespace(text)
}

// UKAddressAbbreviations is EHDC/Hampshire LLPG address
// abbreviation table (internal/normalize/address.go's AbbrevRules),
// reframed as primary -> aliases instead of pattern -> replacement so it
// can drive a deterministic AliasNormaliser.
var UKAddressAbbreviations = map[string][]string{
	"ROAD": {"RD"},
	"STREET": {"ST"},
	"AVENUE": {"AVE"},
	"GARDENS": {"GDNS", "GRNS"},
	"COURT": {"CT"},
	"DRIVE": {"DR"},
	"LANE": {"LN"},
	"PLACE": {"PL"},
	"SQUARE": {"SQ"},
	"CRESCENT": {"CRES"},
	"TERRACE": {"TER"},
	"CLOSE": {"CL", "CLS"},
	"PARK": {"PK"},
	"GREEN": {"GRN"},
	"WAY": {"WY"},
	"APARTMENT": {"APT"},
	"FLAT": {"FLT"},
	"BUILDING": {"BLDG"},
	"HOUSE": {"HSE"},
	"COTTAGE": {"CTG"},
	"FARM": {"FM"},
	"MANOR": {"MNR"},
	"VILLA": {"VIL"},
	"ESTATE": {"EST"},
	"INDUSTRIAL": {"INDL"},
	"CENTRE": {"CTR"},
	"NORTH": {"NTH"},
	"SOUTH": {"STH"},
	"WEST": {"WST"},
	"WALK": {"WLK", "WK"},
	"GROVE": {"GRV"},
	"VIEW": {"VW"},
	"HEIGHTS": {"HTS"},
}

// UKAddressAliasOrder is UKAddressAbbreviations' primary forms in a
// fixed, deterministic application order.
var UKAddressAliasOrder = []string{
	"ROAD", "STREET", "AVENUE", "GARDENS", "COURT", "DRIVE", "LANE",
	"PLACE", "SQUARE", "CRESCENT", "TERRACE", "CLOSE", "PARK", "GREEN",
	"WAY", "APARTMENT", "FLAT", "BUILDING", "HOUSE", "COTTAGE", "FARM",
	"MANOR", "VILLA", "ESTATE", "INDUSTRIAL", "CENTRE", "NORTH", "SOUTH",
	"WEST", "WALK", "GROVE", "VIEW", "HEIGHTS",
}
