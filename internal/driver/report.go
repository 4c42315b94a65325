package driver

import (
	"strconv"

	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/classify"
	"github.com/ehdc-llpg/linkage/internal/csvio"
	"github.com/ehdc-llpg/linkage/internal/group"
	"github.com/ehdc-llpg/linkage/internal/record"
)

// WriteAll runs every reporting method, for a full analysis dump.
// Warning (carried from the original source): total output can be many
// times the size of the input.
func (d *Driver) WriteAll() error {
	if err := d.WriteRecords(); err != nil {
		return err
	}
	if err := d.WriteIndices(); err != nil {
		return err
	}
	if d.indices2 != nil {
		if err := d.WriteInputSplits(); err != nil {
			return err
		}
	}
	if err := d.WriteMatchPairs(); err != nil {
		return err
	}
	if err := d.WriteNonMatchPairs(); err != nil {
		return err
	}
	return d.WriteGroups()
}

// WriteRecords writes input-records.csv and, if a master set was
// supplied, input-master.csv.
func (d *Driver) WriteRecords() error {
	if s := schemaOf(d.records1); s != nil {
		if err := csvio.WriteRecords(d.path("input-records.csv"), s, d.records1, d.Encoding); err != nil {
			return err
		}
	}
	if s := schemaOf(d.records2); s != nil {
		if err := csvio.WriteRecords(d.path("input-master.csv"), s, d.records2, d.Encoding); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndices writes one CSV per constituent index, each row being
// (key, record fields), prefixed InputIdx-/MasterIdx- as the original
// source prefixes index dumps for the input vs. master sides.
func (d *Driver) WriteIndices() error {
	if err := writeIndexDump(d.indices1, "InputIdx-", d); err != nil {
		return err
	}
	if d.indices2 != nil {
		if err := writeIndexDump(d.indices2, "MasterIdx-", d); err != nil {
			return err
		}
	}
	return nil
}

func writeIndexDump(indices *blockindex.Indices, prefix string, d *Driver) error {
	for i := 0; i < indices.Len(); i++ {
		idx := indices.Index(i)
		var rows [][]string
		for _, key := range idx.Keys() {
			for _, r := range idx.Records(key) {
				rows = append(rows, append([]string{key}, r.Values...))
			}
		}
		if err := csvio.WriteFile(d.path(prefix+idx.Name+".csv"), nil, rows, d.Encoding); err != nil {
			return err
		}
	}
	return nil
}

// WriteInputSplits writes input-matchrows.csv (input records that
// matched a master record) and input-singlerows.csv (those that
// didn't) — cross-mode only.
func (d *Driver) WriteInputSplits() error {
	s := schemaOf(d.records1)
	if s == nil {
		return nil
	}
	matched := make(map[string]bool, d.matches.Len())
	d.matches.Range(func(pair record.Pair, _ float64) { matched[pair.A.Key()] = true })

	var matchRows, singleRows []record.Record
	for _, r := range d.records1 {
		if matched[r.Key()] {
			matchRows = append(matchRows, r)
		} else {
			singleRows = append(singleRows, r)
		}
	}
	if err := csvio.WriteRecords(d.path("input-matchrows.csv"), s, matchRows, d.Encoding); err != nil {
		return err
	}
	return csvio.WriteRecords(d.path("input-singlerows.csv"), s, singleRows, d.Encoding)
}

// WriteMatchPairs writes match-comparisons.csv (the per-pair similarity
// vector and index-key-match flags) and match-pairs.csv (the original
// record pairs side by side), the supplemented write_comparisons debug
// report from linkcsv.py.
func (d *Driver) WriteMatchPairs() error {
	return d.writeComparisons("match-comparisons.csv", "match-pairs.csv", d.matches)
}

// WriteNonMatchPairs is WriteMatchPairs for the non-match set.
func (d *Driver) WriteNonMatchPairs() error {
	return d.writeComparisons("nonmatch-comparisons.csv", "nonmatch-pairs.csv", d.nonmatches)
}

func (d *Driver) writeComparisons(compsName, pairsName string, scores *classify.Scores) error {
	names := d.indices1.Names()
	compHeader := append([]string{"Score"}, names...)
	compHeader = append(compHeader, d.comparator.Names()...)

	proj, projErr := d.projection()

	var compRows, pairRows [][]string
	scores.Range(func(pair record.Pair, score float64) {
			vec, _ := d.pairs.Get(pair)
			keys1 := keysFor(d.indices1, pair.A)
			right := d.indices1
			if d.indices2 != nil {
				right = d.indices2
			}
			keys2 := keysFor(right, pair.B)

			idxMatch := make([]string, len(names))
			for i := range names {
				idxMatch[i] = strconv.FormatBool(sharesKey(keys1[i], keys2[i]))
			}

			values, present := vec.Floats()
			weights := make([]string, len(values))
			for i := range values {
				if present[i] {
					weights[i] = strconv.FormatFloat(values[i], 'g', -1, 64)
				}
			}

			row := append([]string{strconv.FormatFloat(score, 'g', -1, 64)}, idxMatch...)
			compRows = append(compRows, append(row, weights...))

			if projErr == nil {
				pairRows = append(pairRows, proj.Project(pair.A).Values)
				pairRows = append(pairRows, proj.Project(pair.B).Values)
			}
	})

	if err := csvio.WriteFile(d.path(compsName), compHeader, compRows, d.Encoding); err != nil {
		return err
	}
	if projErr == nil {
		if err := csvio.WriteFile(d.path(pairsName), proj.Schema().Names(), pairRows, d.Encoding); err != nil {
			return err
		}
	}
	return nil
}

func keysFor(indices *blockindex.Indices, r record.Record) [][]string {
	n := indices.Len()
	keys := make([][]string, n)
	for i := 0; i < n; i++ {
		keys[i] = indices.Index(i).KeysFor(r)
	}
	return keys
}

func sharesKey(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, k := range a {
		set[k] = true
	}
	for _, k := range b {
		if set[k] {
			return true
		}
	}
	return false
}

// WriteGroups writes groups.csv: a single file with a GroupID column,
// grouped records first (numbered from 0), singles last with GroupID
// "-".
func (d *Driver) WriteGroups() error {
	all := d.AllRecords()
	pairs := matchPairs(d.matches)
	singles, groups := group.SinglesAndGroups(pairs, all)

	s := schemaOf(all)
	if s == nil {
		return nil
	}
	header := append([]string{"GroupID"}, s.Names()...)

	var rows [][]string
	for groupID, grp := range groups {
		for _, r := range grp {
			rows = append(rows, append([]string{strconv.Itoa(groupID)}, r.Values...))
		}
	}
	for _, r := range singles {
		rows = append(rows, append([]string{"-"}, r.Values...))
	}

	return csvio.WriteFile(d.path("groups.csv"), header, rows, d.Encoding)
}
