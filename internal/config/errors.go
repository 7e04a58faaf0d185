package config

import "errors"

// Validation error kinds. Each invalid input class maps to exactly one kind;
// validation stops at the first failing check, so a config with several
// defects reports the kind of the earliest check in document order.
var (
	// ErrSeedURL reports a seed list that is not a list of absolute
	// http(s) URLs ending in a path.
	ErrSeedURL = errors.New("seed urls must be absolute http(s) urls ending in a path")

	// ErrHeaders reports a header map that is not string-to-string or that
	// carries a newline in a value (request-splitting guard).
	ErrHeaders = errors.New("headers must be a string map without newline characters")

	// ErrArticlesType reports a total-articles value of the wrong type,
	// a boolean masquerading as an integer, or a value below 1.
	ErrArticlesType = errors.New("total articles must be a positive integer")

	// ErrArticlesRange reports a total-articles value above the upper limit.
	ErrArticlesRange = errors.New("total articles must not exceed the upper limit")

	// ErrEncoding reports a non-string encoding value.
	ErrEncoding = errors.New("encoding must be a string")

	// ErrTimeout reports a timeout that is not an integer or lies outside
	// the open interval (0, 60).
	ErrTimeout = errors.New("timeout must be an integer strictly between 0 and 60")

	// ErrVerify reports a non-boolean certificate-verification or headless
	// flag.
	ErrVerify = errors.New("verification and headless flags must be booleans")
)
