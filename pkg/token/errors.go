package token

import (
	"errors"

	"github.com/alexadamm/jwt-dynamic-value/pkg/token/algorithms"
)

// Common errors returned by token generation
var (
	// ErrInvalidJSONFragment is returned when the header or payload input is not a JSON object
	// This includes null, scalars, arrays and malformed JSON
	ErrInvalidJSONFragment = errors.New("invalid JSON fragment")

	// ErrInvalidBase64URL is returned when a secret flagged as base64url fails to decode
	ErrInvalidBase64URL = errors.New("invalid base64url secret")

	// ErrUnsupportedAlgorithm is returned when the algorithm is not in the registry
	ErrUnsupportedAlgorithm = algorithms.ErrUnsupportedAlgorithm

	// ErrSigningKeyMismatch is returned when the key material cannot be used by the algorithm
	ErrSigningKeyMismatch = errors.New("signing key does not match algorithm")

	// ErrHeaderConflict is returned when the header input names a different "alg"
	// than the one selected for signing
	ErrHeaderConflict = errors.New("header conflicts with signing algorithm")

	// ErrInvalidConfig is returned by New for unusable configuration values
	ErrInvalidConfig = errors.New("invalid configuration")
)
