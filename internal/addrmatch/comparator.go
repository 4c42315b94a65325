// Package addrmatch is the UK-address instance of the generic linkage
// engine, wiring internal/recordsim and internal/classify around the
// field set address-matching system used (house number,
// road, locality, postcode), in place of bespoke
// map[string]interface{}-keyed feature/scorer pipeline
// (internal/match/features.go, internal/match/scorer.go). Grounded on
// internal/match/types.go's field shape and
// ADDRESS_MATCHING_ALGORITHM.md's tier thresholds, generalised onto
// the Getter/ValueSimilarity/RecordSimilarity contracts.
package addrmatch

import (
	"regexp"
	"strings"

	"github.com/ehdc-llpg/linkage/internal/encode"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
	"github.com/ehdc-llpg/linkage/internal/strdist"
	"github.com/ehdc-llpg/linkage/internal/symspell"
	"github.com/ehdc-llpg/linkage/internal/valuesim"
)

// Fields names the address schema columns this comparator expects;
// callers build their record.Schema with at least these names (extra
// columns are ignored).
type Fields struct {
	Address string // full free-text address line, used for road/locality comparison
	Postcode string // UK postcode, compared exact-after-NoSpace
}

var houseNumberRe = regexp.MustCompile(`^\s*(\d+[A-Za-z]?)\b`)

// HouseNumber extracts the leading house/flat number from a free-text
// address (e.g. "14A HIGH STREET" -> "14A"), generalising
// reHouseNumber regexp in internal/normalize/address.go to a single
// leading-token extraction rather than a whole-text scan.
func HouseNumber(address string) string {
	m := houseNumberRe.FindStringSubmatch(address)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// roadTokens strips the address down to its street-name tokens: upper
// case, punctuation-stripped, house number and known locality names
// removed. Generalises internal/normalize/address.go's TokenizeStreet.
func roadTokens(address string) []string {
	clean := encode.StripPunctuation(address)
	var out []string
	for _, tok := range strings.Fields(clean) {
		upper := strings.ToUpper(tok)
		if houseNumberRe.MatchString(tok) {
			continue
		}
		if ukLocalities[upper] {
			continue
		}
		if ukStreetStopwords[upper] {
			continue
		}
		out = append(out, upper)
	}
	return out
}

func roadText(address string) string {
	return strings.Join(roadTokens(address), " ")
}

func localityTokensOf(address string) []string {
	upper := strings.ToUpper(address)
	var out []string
	for locality := range ukLocalities {
		if strings.Contains(upper, locality) {
			out = append(out, locality)
		}
	}
	return out
}

// NewComparator builds the RecordSimilarity for address-to-address
// comparison: postcode exact match, house-number exact match, road name
// edit-distance similarity (via internal/strdist on the road tokens as
// written; no alias expansion is applied, so "ST" and "STREET" differ;
// this replaces the fake-embeddings cosine feature),
// and locality-token overlap (via valuesim.Average, generalising
// locality_overlap_ratio). get extracts the full address string and
// postcodeGet the postcode, which is compared as returned (spaces
// removed); NewComparator does not call Postcode, so for a postcode
// embedded in the free-text address postcodeGet itself must apply
// Postcode below. corrector runs encode.SymSpellCorrect ahead of road
// and locality token extraction, so a misspelled "ROWD" still blocks and
// compares against "ROAD"; a nil corrector (SymSpell disabled) leaves
// the address text untouched. House numbers bypass correction since
// correctToken already skips numeric/house-number tokens.
func NewComparator(get, postcodeGet record.Getter, corrector *symspell.Corrector) (*recordsim.RecordSimilarity, error) {
	correctedGet := get
	if corrector != nil {
		correct := encode.SymSpellCorrect(corrector)
		correctedGet = func(r record.Record) string { return correct(get(r)) }
	}

	roadGet := func(r record.Record) string { return roadText(correctedGet(r)) }
	houseGet := func(r record.Record) string { return HouseNumber(get(r)) }

	exact := func(a, b string) valuesim.Missing {
		if a == b {
			return valuesim.Value(1.0)
		}
		return valuesim.Value(0.0)
	}

	localityGet := func(r record.Record) []string { return localityTokensOf(correctedGet(r)) }

	return recordsim.New(
		recordsim.Component{
			Name: "postcode_exact",
			Sim: valuesim.FieldSame(exact, postcodeGet, encode.NoSpace),
		},
		recordsim.Component{
			Name: "house_number_exact",
			Sim: valuesim.FieldSame(exact, houseGet, nil),
		},
		recordsim.Component{
			Name: "road_similarity",
			Sim: valuesim.FieldSame(strdist.DamerauLevenshteinSimilarity(1.0), roadGet, nil),
		},
		recordsim.Component{
			Name: "locality_overlap",
			Sim: valuesim.Average(exact, localityGet, nil, nil, nil),
		},
	)
}

// Postcode extracts a UK postcode from free text, generalising
// internal/normalize/address.go's rePostcode.
func Postcode(address string) string {
	m := ukPostcodeRe.FindString(address)
	return strings.ToUpper(strings.ReplaceAll(m, " ", ""))
}

var ukPostcodeRe = regexp.MustCompile(`(?i)\b([A-Za-z]{1,2}\d[\dA-Za-z]?\s*\d[ABD-HJLNP-UW-Zabd-hjlnp-uw-z]{2})\b`)

var ukStreetStopwords = map[string]bool{
	"FLAT": true, "APT": true, "APARTMENT": true, "UNIT": true, "STUDIO": true,
	"THE": true, "AND": true, "OF": true, "AT": true, "IN": true, "ON": true,
	"LAND": true, "REAR": true, "ADJACENT": true, "TO": true, "PLOT": true,
	"SITE": true, "DEVELOPMENT": true, "PARCEL": true,
}

// ukLocalities is Hampshire/EHDC locality gazetteer
// (internal/normalize/address.go's localityTokens), kept verbatim since
// it is reference data, not logic, and still describes the same council
// area this instance targets.
var ukLocalities = map[string]bool{
	"ALTON": true, "PETERSFIELD": true, "LIPHOOK": true, "WATERLOOVILLE": true,
	"HORNDEAN": true, "BORDON": true, "WHITEHILL": true, "GRAYSHOTT": true,
	"HEADLEY": true, "BRAMSHOTT": true, "LINDFORD": true, "HOLLYWATER": true,
	"PASSFIELD": true, "CONFORD": true, "FOUR MARKS": true, "MEDSTEAD": true,
	"CHAWTON": true, "SELBORNE": true, "EMPSHOTT": true, "HAWKLEY": true,
	"LISS": true, "STEEP": true, "STROUD": true, "BURITON": true,
	"LANGRISH": true, "EAST MEON": true, "WEST MEON": true, "FROXFIELD": true,
	"PRIVETT": true, "ROPLEY": true, "WEST TISTED": true, "EAST TISTED": true,
	"BINSTED": true, "HOLT POUND": true, "BENTLEY": true, "FARNHAM": true,
	"HASLEMERE": true,
}
