package valuesim

import "github.com/ehdc-llpg/linkage/internal/record"

// Average implements the multi-valued comparer:
// iterate over the smaller set, accumulate the best match found in the
// larger set, and return the average. Grounded on
// indexer.py SetComparatorAvg.
func Average(compare Compare, get1 record.MultiGetter, encode1 Encode, get2 record.MultiGetter, encode2 Encode) ValueSimilarity {
	if get2 == nil {
		get2 = get1
	}
	if encode1 == nil {
		encode1 = identity
	}
	if encode2 == nil {
		encode2 = encode1
	}
	return func(r1, r2 record.Record) Missing {
		set1 := encodeSet(get1(r1), encode1)
		set2 := encodeSet(get2(r2), encode2)
		small, large := set1, set2
		if len(large) < len(small) {
			small, large = large, small
		}
		if len(small) == 0 || len(large) == 0 {
			return compare("", "")
		}
		var total float64
		for _, v1 := range small {
			best := 0.0
			for _, v2 := range large {
				if c := compare(v1, v2); !IsMissing(c) && *c > best {
					best = *c
				}
			}
			total += best
		}
		avg := total / float64(len(small))
		return Value(avg)
	}
}

// Maximum returns only the greatest pairwise similarity between the two
// value sets, instead of Average's mean. Grounded on
// indexer.py SetComparatorMax.
func Maximum(compare Compare, get1 record.MultiGetter, encode1 Encode, get2 record.MultiGetter, encode2 Encode) ValueSimilarity {
	if get2 == nil {
		get2 = get1
	}
	if encode1 == nil {
		encode1 = identity
	}
	if encode2 == nil {
		encode2 = encode1
	}
	return func(r1, r2 record.Record) Missing {
		set1 := encodeSet(get1(r1), encode1)
		set2 := encodeSet(get2(r2), encode2)
		if len(set1) == 0 || len(set2) == 0 {
			return compare("", "")
		}
		best := 0.0
		found := false
		for _, v1 := range set1 {
			for _, v2 := range set2 {
				if c := compare(v1, v2); !IsMissing(c) {
					found = true
					if *c > best {
						best = *c
					}
				}
			}
		}
		if !found {
			return compare("", "")
		}
		return Value(best)
	}
}

func encodeSet(values []string, encode Encode) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if e := encode(v); e != "" {
			out = append(out, e)
		}
	}
	return out
}
