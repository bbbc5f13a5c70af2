package esios

import "errors"

// The extractors fail loudly on malformed input and degrade to empty
// series on merely absent data. Callers classify failures by unwrapping
// against these sentinels.
var (
	// ErrParse marks a malformed date or number in a payload that is
	// structurally expected to be well-formed.
	ErrParse = errors.New("malformed esios payload")

	// ErrMissingField marks a required top-level key absent from a payload.
	ErrMissingField = errors.New("missing field in esios payload")

	// ErrConfiguration marks invalid caller-supplied settings, like an
	// unknown timezone or tariff.
	ErrConfiguration = errors.New("invalid esios configuration")

	// ErrBadAuth is returned when the API rejects the access token.
	ErrBadAuth = errors.New("esios api token rejected")
)
