// Package linkerr names the two fatal error kinds the design
// distinguishes — configuration errors (the pipeline is wired wrong and
// cannot run at all) and data errors (a specific record or row is
// malformed) — as sentinel-wrapped errors so callers can errors.Is/As
// them, generalising ad hoc fmt.Errorf("failed to...: %w")
// idiom (internal/db, internal/engine) into named kinds.
package linkerr

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a misconfigured pipeline: an empty/duplicate
// index key function, a classifier wired with mismatched vector
// dimensions, an invalid FieldSpec, an empty nearest-neighbour example
// set, or any other wiring mistake that is true regardless of input
// data.
var ErrConfiguration = errors.New("linkage: configuration error")

// ErrData marks a problem with a specific input: an unreadable CSV row,
// a record missing a required field, or a value that fails to parse
// under an encoder.
var ErrData = errors.New("linkage: data error")

// Configuration wraps err (or builds one from a message) as a
// configuration error.
func Configuration(format string, args...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConfiguration)...)
}

// Data wraps err (or builds one from a message) as a data error.
func Data(format string, args...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrData)...)
}

// IsConfiguration reports whether err is (or wraps) a configuration error.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsData reports whether err is (or wraps) a data error.
func IsData(err error) bool { return errors.Is(err, ErrData) }
