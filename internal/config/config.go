// Package config loads linkage run configuration (output directory,
// classifier name, k-means iteration cap, CSV encoding, verbosity,
// optional database DSN) via
// viper, replacing hand-rolled.env line-splitter
// (formerly internal/config/env.go's LoadEnv/GetEnv/GetEnvInt). Env var
// precedence mirrors GetEnv family: explicit environment
// variable wins, then a config file, then the default below.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings a cmd/linkcsv invocation needs, resolved
// from (in precedence order) environment variables, an optional config
// file, and these defaults.
type Config struct {
	// OutDir names a report directory. cmd/linkcsv and cmd/address-matcher
	// do not read it; they take the directory from their own outdir flag.
	OutDir string
	// Classifier names a built-in classifier: "kmeans", "nearest", or
	// "rule". Neither command reads it; both classify with a rule-based
	// threshold classifier.
	Classifier string
	// Encoding selects the CSV boundary encoding: "windows-1252" or "utf-8".
	Encoding string
	// MaxIter is a k-means iteration cap; neither command passes it to
	// classify.KMeans.
	MaxIter int
	// Verbose gates obslog's debug-level output.
	Verbose bool
	// DatabaseURL is the optional lib/pq connection string for
	// internal/report/pgsink.go; empty disables persistence.
	DatabaseURL string
}

var defaults = map[string]interface{}{
	"outdir": "./linkage-output",
	"classifier": "kmeans",
	"encoding": "windows-1252",
	"maxiter": 10,
	"verbose": false,
	"databaseurl": "",
}

// Load resolves a Config from the environment, optionally overlaying a
// config file at path (empty path skips the file). Environment variables
// are prefixed LINKAGE_ (e.g. LINKAGE_OUTDIR, LINKAGE_DATABASEURL).
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix("linkage")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, err
			}
		}
	}

	return &Config{
		OutDir: v.GetString("outdir"),
		Classifier: v.GetString("classifier"),
		Encoding: v.GetString("encoding"),
		MaxIter: v.GetInt("maxiter"),
		Verbose: v.GetBool("verbose"),
		DatabaseURL: v.GetString("databaseurl"),
	}, nil
}
