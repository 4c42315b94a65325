// Command linkcsv is the generic CLI for the record-linkage engine:
// link runs self- or cross-linkage over plain CSV files, ping checks
// the optional Postgres sink, and report serves a finished run's CSV
// reports over HTTP. Subcommand wiring follows
// cmd/matcher/main.go cobra style (rootCmd.AddCommand(...)).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ehdc-llpg/linkage/internal/addrmatch"
	"github.com/ehdc-llpg/linkage/internal/classify"
	"github.com/ehdc-llpg/linkage/internal/config"
	"github.com/ehdc-llpg/linkage/internal/csvio"
	"github.com/ehdc-llpg/linkage/internal/driver"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
	"github.com/ehdc-llpg/linkage/internal/report"
	"github.com/ehdc-llpg/linkage/internal/symspell"
)

var (
	cfgFile string
	verbose bool
	cfg *config.Config
	log *obslog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use: "linkcsv",
		Short: "Record-linkage engine CLI",
		Long: "Blocks, compares, classifies and groups CSV records into a linkage run.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			debug := verbose || cfg.Verbose
			newLogger := obslog.NewProduction
			if debug {
				newLogger = obslog.NewDevelopment
			}
			log, err = newLogger(debug)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file overlay")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")

	rootCmd.AddCommand(createLinkCmd())
	rootCmd.AddCommand(createPingCmd())
	rootCmd.AddCommand(createReportCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createLinkCmd() *cobra.Command {
	var (
		inputPath string
		masterPath string
		keyColumn string
		addressField string
		postcodeCol string
		outDir string
		saveDB bool
		runLabel string
	)

	cmd := &cobra.Command{
		Use: "link",
		Short: "Link records in a CSV file (self-linkage) or against a master CSV (cross-linkage)",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := encodingOf(cfg.Encoding)
			_, records, err := csvio.ReadFile(inputPath, enc)
			if err != nil {
				return fmt.Errorf("link: reading input: %w", err)
			}

			var master []record.Record
			if masterPath != "" {
				_, master, err = csvio.ReadFile(masterPath, enc)
				if err != nil {
					return fmt.Errorf("link: reading master: %w", err)
				}
			}

			addrGet := record.MustGetter(record.Name(addressField))
			pcGet := record.MustGetter(record.Name(postcodeCol))
			cmp, err := addrmatch.NewComparator(addrGet, pcGet, symspell.NewBuiltinCorrector(nil))
			if err != nil {
				return fmt.Errorf("link: building comparator: %w", err)
			}

			blockGet := record.MustGetter(record.Name(keyColumn))
			keyFn := func(r record.Record) []string {
				v := blockGet(r)
				if v == "" {
					return nil
				}
				return []string{v}
			}

			tiers := addrmatch.DefaultTiers()
			classifier := classify.RuleBased{Rule: thresholdRule(tiers.AutoAcceptHigh, tiers.MinThreshold), Log: log}

			d, err := driver.New(outDir, []driver.IndexSpec{{Name: keyColumn, KeyFunc: keyFn}}, cmp, classifier, records, master, log)
			if err != nil {
				return fmt.Errorf("link: %w", err)
			}
			if err := d.WriteAll(); err != nil {
				return fmt.Errorf("link: writing reports: %w", err)
			}
			log.Infof("link: %d matches, %d non-matches written to %s", d.Matches().Len(), d.NonMatches().Len(), outDir)

			if saveDB {
				if err := saveToDB(cfg.DatabaseURL, runLabel, d); err != nil {
					return fmt.Errorf("link: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to the CSV to link (required)")
	cmd.Flags().StringVar(&masterPath, "master", "", "path to a master CSV for cross-linkage (omit for self-linkage)")
	cmd.Flags().StringVar(&keyColumn, "block-on", "postcode", "column to block on")
	cmd.Flags().StringVar(&addressField, "address-field", "address", "column holding the free-text address")
	cmd.Flags().StringVar(&postcodeCol, "postcode-field", "postcode", "column holding the postcode")
	cmd.Flags().StringVar(&outDir, "outdir", "./linkage-output", "directory for reports")
	cmd.Flags().BoolVar(&saveDB, "db", false, "persist results to the configured Postgres sink")
	cmd.Flags().StringVar(&runLabel, "run-label", "linkcsv run", "label recorded in match_run when --db is set")
	cmd.MarkFlagRequired("input")

	return cmd
}

// encodingOf maps the config's string encoding name onto csvio.Encoding.
func encodingOf(name string) csvio.Encoding {
	if name == "utf-8" {
		return csvio.UTF8
	}
	return csvio.Windows1252
}

// thresholdRule applies the same thresholds as cmd/address-matcher's
// policy: Match at or above minScore, NonMatch below floor, else Uncertain
// for the classifier's fallback chain to decide. Unlike address-matcher,
// a vector with no present component is judged Uncertain here, not
// NonMatch.
func thresholdRule(minScore, floor float64) classify.Rule {
	return func(r1, r2 record.Record, vec recordsim.Vector) classify.Judgement {
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
			return classify.Uncertain
		}
		mean := sum / float64(n)
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

func saveToDB(databaseURL, runLabel string, d *driver.Driver) error {
	if databaseURL == "" {
		return fmt.Errorf("no database configured (LINKAGE_DATABASEURL unset)")
	}
	sink, err := report.NewPgSink(databaseURL)
	if err != nil {
		return err
	}
	defer sink.Close()
	if err := sink.EnsureSchema(); err != nil {
		return err
	}

	results := resultsFrom(d)
	runID, err := sink.SaveRun(runLabel, results)
	if err != nil {
		return err
	}
	log.Infof("link: saved run %d (%d records) to database", runID, len(results))
	return nil
}

// resultsFrom turns a completed Driver's match scores into per-record
// report.Result rows, one per matched query record, each with its
// candidates ranked highest score first (ties keep the order Range
// visited them), capped implicitly by PgSink.SaveRun's top-10 rule.
func resultsFrom(d *driver.Driver) []report.Result {
	byRecord := make(map[string]*report.Result)
	order := make([]string, 0)

	d.Matches().Range(func(pair record.Pair, score float64) {
			key := pair.A.Key()
			res, ok := byRecord[key]
			if !ok {
				res = &report.Result{RecordID: key, Decision: "auto_accept"}
				byRecord[key] = res
				order = append(order, key)
			}
			i := len(res.Scores)
			for i > 0 && res.Scores[i-1] < score {
				i--
			}
			res.Candidates = append(res.Candidates, record.Pair{})
			copy(res.Candidates[i+1:], res.Candidates[i:])
			res.Candidates[i] = pair
			res.Scores = append(res.Scores, 0)
			copy(res.Scores[i+1:], res.Scores[i:])
			res.Scores[i] = score
	})

	out := make([]report.Result, 0, len(order))
	for _, key := range order {
		out = append(out, *byRecord[key])
	}
	return out
}

func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use: "ping",
		Short: "Check that the configured Postgres sink is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseURL == "" {
				fmt.Println("no database configured (LINKAGE_DATABASEURL unset) — persistence sink disabled")
				return nil
			}
			sink, err := report.NewPgSink(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer sink.Close()
			fmt.Println("database reachable")
			return nil
		},
	}
}

func createReportCmd() *cobra.Command {
	var (
		runDir string
		addr string
		port int
	)
	cmd := &cobra.Command{
		Use: "report",
		Short: "Serve a finished run's CSV reports over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := report.NewServer(runDir, log)
			srv.Addr(addr, port)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-stop
				cancel()
			}()

			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&runDir, "rundir", "./linkage-output", "directory a prior link invocation wrote reports to")
	cmd.Flags().StringVar(&addr, "host", "localhost", "bind host")
	cmd.Flags().IntVar(&port, "port", 8080, "bind port")
	return cmd
}

func createAdminCmd() *cobra.Command {
	var (
		outputRoot string
		bindAddr string
	)
	cmd := &cobra.Command{
		Use: "admin",
		Short: "Serve a gin-based run-directory listing for every past link invocation under a shared output root",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := report.NewAdminUI(outputRoot, log)
			return ui.Run(bindAddr)
		},
	}
	cmd.Flags().StringVar(&outputRoot, "outroot", "./linkage-output", "directory containing one subdirectory per past link run")
	cmd.Flags().StringVar(&bindAddr, "addr", "localhost:8081", "bind address (host:port)")
	return cmd
}
