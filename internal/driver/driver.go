// Package driver orchestrates one linkage run end to end — index, compare,
// classify, group — and writes the CSV reports the design
// describes, grounded on linkcsv.py's LinkCSV
// class and internal/engine/exporter.go staged-logging,
// write-one-file-per-concern cadence.
package driver

import (
	"path/filepath"

	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/classify"
	"github.com/ehdc-llpg/linkage/internal/csvio"
	"github.com/ehdc-llpg/linkage/internal/linkerr"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
)

// IndexSpec names one blocking strategy: a name and the key function
// that derives its blocking keys, the (name, index-type, keyfunc) triple
// the constructor takes (index-type is folded away
// here since internal/blockindex has one Index type parameterised by
// KeyFunc, not a family of index classes).
type IndexSpec struct {
	Name string
	KeyFunc blockindex.KeyFunc
}

// Driver holds every intermediate artifact of one linkage run, available
// to the Write* reporting methods after construction.
type Driver struct {
	OutDir string
	Encoding csvio.Encoding
	comparator *recordsim.RecordSimilarity
	classifier classify.Classifier
	log *obslog.Logger

	records1 []record.Record
	records2 []record.Record
	indices1 *blockindex.Indices
	indices2 *blockindex.Indices

	pairs *blockindex.PairMap
	matches *classify.Scores
	nonmatches *classify.Scores
}

// New builds Indices over records (and master, if supplied), runs the
// comparison and classification, and returns a Driver ready for
// reporting. The linkage itself runs here, in the constructor, exactly
// as the design specifies — Write* calls only ever touch
// already-computed results.
func New(outdir string, indexSpecs []IndexSpec, comparator *recordsim.RecordSimilarity, classifier classify.Classifier, records []record.Record, master []record.Record, log *obslog.Logger) (*Driver, error) {
	if log == nil {
		var err error
		log, err = obslog.NewProduction(false)
		if err != nil {
			return nil, err
		}
	}

	d := &Driver{
		OutDir: outdir,
		Encoding: csvio.Windows1252,
		comparator: comparator,
		classifier: classifier,
		log: log,
		records1: records,
		records2: master,
	}

	d.indices1 = newIndices(indexSpecs)
	if err := d.indices1.InsertMany(records); err != nil {
		return nil, err
	}

	if len(master) > 0 {
		d.indices2 = newIndices(indexSpecs)
		if err := d.indices2.InsertMany(master); err != nil {
			return nil, err
		}
	}

	d.indices1.LogCounts(log, d.indices2)

	var pairs *blockindex.PairMap
	if d.indices2 != nil {
		var err error
		pairs, err = d.indices1.CompareAgainst(d.indices2, comparator.Compare)
		if err != nil {
			return nil, err
		}
	} else {
		pairs = d.indices1.Compare(comparator.Compare)
	}
	d.pairs = pairs
	log.Infof("driver: compared %d pairs", pairs.Len())

	matches, nonmatches := classifier.Classify(pairs)
	d.matches, d.nonmatches = matches, nonmatches
	log.Infof("driver: classified matches=%d nonmatches=%d", matches.Len(), nonmatches.Len())

	return d, nil
}

func newIndices(specs []IndexSpec) *blockindex.Indices {
	indexes := make([]*blockindex.Index, len(specs))
	for i, s := range specs {
		indexes[i] = blockindex.NewIndex(s.Name, s.KeyFunc)
	}
	return blockindex.NewIndices(indexes...)
}

// Matches returns the classified match scores.
func (d *Driver) Matches() *classify.Scores { return d.matches }

// NonMatches returns the classified non-match scores.
func (d *Driver) NonMatches() *classify.Scores { return d.nonmatches }

// Pairs returns every compared pair and its similarity vector.
func (d *Driver) Pairs() *blockindex.PairMap { return d.pairs }

// AllRecords returns every record seen by this run (input plus master).
func (d *Driver) AllRecords() []record.Record {
	all := make([]record.Record, 0, len(d.records1)+len(d.records2))
	all = append(all, d.records1...)
	all = append(all, d.records2...)
	return all
}

func (d *Driver) path(name string) string { return filepath.Join(d.OutDir, name) }

func schemaOf(records []record.Record) *record.Schema {
	if len(records) == 0 {
		return nil
	}
	return records[0].Schema
}

func matchPairs(scores *classify.Scores) []record.Pair {
	pairs := make([]record.Pair, 0, scores.Len())
	scores.Range(func(pair record.Pair, _ float64) { pairs = append(pairs, pair) })
	return pairs
}

// projection builds the union schema of records1 and records2 so both
// sides can be written to one file.
func (d *Driver) projection() (*csvio.Projection, error) {
	s1, s2 := schemaOf(d.records1), schemaOf(d.records2)
	if s1 == nil {
		return nil, linkerr.Configuration("driver: no input records to project")
	}
	if s2 == nil {
		s2 = s1
	}
	return csvio.UnionFields(s1, s2)
}
