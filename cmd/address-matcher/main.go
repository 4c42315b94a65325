// Command address-matcher is the UK-address instance of the linkage
// engine: it wires internal/addrmatch's comparator and tiered decision
// policy over internal/driver, replacing Postgres-backed
// matcher/generator pipeline (internal/matcher, internal/engine) with
// CSV-in/CSV-out linkage runs plus an ad hoc single-address lookup.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"sort"

	_ "github.com/lib/pq"

	"github.com/ehdc-llpg/linkage/internal/addrmatch"
	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/classify"
	"github.com/ehdc-llpg/linkage/internal/config"
	"github.com/ehdc-llpg/linkage/internal/csvio"
	"github.com/ehdc-llpg/linkage/internal/driver"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
	"github.com/ehdc-llpg/linkage/internal/symspell"
)

const version = "4.0.0-linkage-engine"

func main() {
	var (
		command = flag.String("cmd", "", "Command: match, match-single, ping")
		master = flag.String("master", "", "Path to the master/reference address CSV (columns: address, postcode)")
		input = flag.String("input", "", "Path to the query address CSV (match command)")
		outdir = flag.String("outdir", "./linkage-output", "Directory for match command reports")
		address = flag.String("address", "", "Single address to match (match-single command)")
		postcode = flag.String("postcode", "", "Postcode for the single address, if not embedded in -address")
		debug = flag.Bool("debug", false, "Enable debug-level logging")
		configFile = flag.String("config", "", "Optional config file overlay")
	)
	flag.Parse()

	if *command == "" {
		printUsage()
		os.Exit(1)
	}

	fmt.Printf("EHDC address-matcher %s (linkage engine instance)\n", version)

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	newLogger := obslog.NewProduction
	if *debug {
		newLogger = obslog.NewDevelopment
	}
	log, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	enc := encodingOf(cfg.Encoding)

	switch *command {
	case "ping":
		err = ping(cfg.DatabaseURL)
	case "match":
		err = runMatch(log, enc, *master, *input, *outdir)
	case "match-single":
		err = runMatchSingle(log, enc, *master, *address, *postcode)
	default:
		fmt.Printf("Unknown command: %s\n", *command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "command failed: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println(" Cross-link a batch of addresses against a master list:")
	fmt.Println(`./address-matcher -cmd=match -master=master.csv -input=queries.csv -outdir=./out`)
	fmt.Println(" Match one address against a master list:")
	fmt.Println(`./address-matcher -cmd=match-single -master=master.csv -address="14 High Street, Alton, GU34 1AB"`)
	fmt.Println(" Check database reachability (optional persistence sink):")
	fmt.Println(`./address-matcher -cmd=ping`)
}

func ping(databaseURL string) error {
	if databaseURL == "" {
		fmt.Println("no database configured (LINKAGE_DATABASEURL unset) — persistence sink disabled")
		return nil
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("ping: opening database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping: database unreachable: %w", err)
	}
	fmt.Println("database reachable")
	return nil
}

// thresholdRule classifies a pair Match when its components average at
// or above minScore, NonMatch below a floor, else leaves it Uncertain
// for the kept teacher minimum-threshold idea
// (internal/match/types.go's MatchTiers.MinThreshold) without the
// teacher's linear feature-weight sum (superseded by RecordSimilarity).
func thresholdRule(minScore, floor float64) classify.Rule {
	return func(r1, r2 record.Record, vec recordsim.Vector) classify.Judgement {
		mean := vectorMean(vec)
		switch {
		case mean >= minScore:
			return classify.Match
		case mean < floor:
			return classify.NonMatch
		default:
			return classify.Uncertain
		}
	}
}

// encodingOf maps the config's string encoding name onto csvio.Encoding.
func encodingOf(name string) csvio.Encoding {
	if name == "utf-8" {
		return csvio.UTF8
	}
	return csvio.Windows1252
}

func runMatch(log *obslog.Logger, enc csvio.Encoding, masterPath, inputPath, outdir string) error {
	if masterPath == "" || inputPath == "" {
		return fmt.Errorf("match: both -master and -input are required")
	}
	_, masterRecords, err := csvio.ReadFile(masterPath, enc)
	if err != nil {
		return fmt.Errorf("match: reading master: %w", err)
	}
	_, inputRecords, err := csvio.ReadFile(inputPath, enc)
	if err != nil {
		return fmt.Errorf("match: reading input: %w", err)
	}

	addrGet := record.MustGetter(record.Name("address"))
	pcGet := record.MustGetter(record.Name("postcode"))
	cmp, err := addrmatch.NewComparator(addrGet, pcGet, symspell.NewBuiltinCorrector(nil))
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}

	postcodeKey := func(r record.Record) []string {
		pc := pcGet(r)
		if pc == "" {
			return nil
		}
		return []string{pc}
	}

	tiers := addrmatch.DefaultTiers()
	rb := classify.RuleBased{Rule: thresholdRule(tiers.AutoAcceptHigh, tiers.MinThreshold), Log: log}

	d, err := driver.New(outdir, []driver.IndexSpec{{Name: "postcode", KeyFunc: postcodeKey}}, cmp, rb, inputRecords, masterRecords, log)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}
	log.Infof("address-matcher: %d matches, %d non-matches", d.Matches().Len(), d.NonMatches().Len())
	return d.WriteAll()
}

func runMatchSingle(log *obslog.Logger, enc csvio.Encoding, masterPath, address, postcode string) error {
	if masterPath == "" || address == "" {
		return fmt.Errorf("match-single: both -master and -address are required")
	}
	masterSchema, masterRecords, err := csvio.ReadFile(masterPath, enc)
	if err != nil {
		return fmt.Errorf("match-single: reading master: %w", err)
	}

	if postcode == "" {
		postcode = addrmatch.Postcode(address)
	}
	values := make([]string, masterSchema.Len())
	if i, ok := masterSchema.IndexOf("address"); ok {
		values[i] = address
	}
	if i, ok := masterSchema.IndexOf("postcode"); ok {
		values[i] = postcode
	}
	query := record.New(masterSchema, values)

	addrGet := record.MustGetter(record.Name("address"))
	pcGet := record.MustGetter(record.Name("postcode"))
	cmp, err := addrmatch.NewComparator(addrGet, pcGet, symspell.NewBuiltinCorrector(nil))
	if err != nil {
		return fmt.Errorf("match-single: %w", err)
	}

	cache := blockindex.NewPairMap()
	candidates := make([]addrmatch.Candidate, 0, len(masterRecords))
	for _, m := range masterRecords {
		vec := cmp.Compare(query, m)
		cache.Set(record.MakePair(query, m), vec)

		houseMatch, _ := vec.Get("house_number_exact")
		localityOverlap, _ := vec.Get("locality_overlap")
		lo := 0.0
		if localityOverlap != nil {
			lo = *localityOverlap
		}
		candidates = append(candidates, addrmatch.Candidate{
				Record: m,
				Score: vectorMean(vec),
				LocalityOverlap: lo,
				SameHouseNumber: houseMatch != nil && *houseMatch >= 1.0,
		})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	decision, accepted := addrmatch.Decide(addrmatch.DefaultTiers(), candidates)
	log.Infof("match-single: decision=%s candidates=%d", decision, len(candidates))

	fmt.Printf("Query: %s\n", address)
	fmt.Printf("Decision: %s\n", decision)
	if accepted != nil {
		fmt.Printf("Accepted: %v\n", accepted.Values)
	}
	for i, c := range candidates {
		if i >= 5 {
			break
		}
		fmt.Printf(" candidate %d: score=%.4f %v\n", i+1, c.Score, c.Record.Values)
	}
	return nil
}

func vectorMean(vec recordsim.Vector) float64 {
	values, present := vec.Floats()
	var sum float64
	var n int
	for i, ok := range present {
		if ok {
			sum += values[i]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
