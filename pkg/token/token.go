package token

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultAlgorithm is used when Input.Algorithm is empty
const DefaultAlgorithm = "HS256"

// DefaultLifetime is the gap between "iat" and "exp"
const DefaultLifetime = 60 * time.Second

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	Lifetime: DefaultLifetime,
}

// TokenGenerator is implemented by Generator. Hosts that only need a token per call
// can depend on this instead of the concrete type.
type TokenGenerator interface {
	// Generate creates a signed JWT from the host inputs
	// Returns the compact serialization (header.payload.signature)
	Generate(ctx context.Context, in Input) (string, error)
}

// Config holds the configuration for a Generator
type Config struct {
	// Logger receives diagnostics. Secrets are never logged.
	// Defaults to the logrus standard logger.
	Logger logrus.FieldLogger

	// Clock returns the current time. It is sampled once per token.
	// Defaults to time.Now.
	Clock func() time.Time

	// Lifetime is added to "iat" to produce "exp" when time fields are enabled
	// Must be at least one second. Defaults to 60 seconds.
	Lifetime time.Duration

	// AllowHeaderOverride lets a caller supplied header "alg" choose the signing
	// algorithm instead of failing with ErrHeaderConflict
	AllowHeaderOverride bool
}

// Input holds the values a host supplies for one token
type Input struct {
	// Algorithm is one of algorithms.List(). Defaults to HS256 when empty.
	Algorithm string

	// Header is a JSON object merged into the token header
	Header json.RawMessage

	// Payload is a JSON object merged into the token payload
	Payload json.RawMessage

	// AddTimeFields seeds "iat" and "exp" before the payload is merged
	AddTimeFields bool

	// AddTokenID seeds a random "jti" before the payload is merged
	AddTokenID bool

	// SignatureSecret is the HMAC secret or PEM encoded private key.
	// Escaped newlines (`\n`) are restored.
	SignatureSecret string

	// SignatureSecretIsBase64 marks SignatureSecret as base64url encoded
	SignatureSecretIsBase64 bool
}

// DefaultInput returns the input defaults a host presents before the user edits anything
func DefaultInput() Input {
	return Input{
		Algorithm:     DefaultAlgorithm,
		Header:        json.RawMessage(`{}`),
		AddTimeFields: true,
	}
}

// StandardClaims represents the standard JWT claims
// Marshal it (or a struct embedding it) into Input.Payload.
type StandardClaims struct {
	// Issuer identifies the principal that issued the JWT
	Issuer string `json:"iss,omitempty"`

	// Subject identifies the principal that is the subject of the JWT
	Subject string `json:"sub,omitempty"`

	// Audience identifies the recipients that the JWT is intended for
	Audience string `json:"aud,omitempty"`

	// ExpiresAt identifies the expiration time on or after which the JWT must not be accepted
	ExpiresAt int64 `json:"exp,omitempty"`

	// NotBefore identifies the time before which the JWT must not be accepted
	NotBefore int64 `json:"nbf,omitempty"`

	// IssuedAt identifies the time at which the JWT was issued
	IssuedAt int64 `json:"iat,omitempty"`

	// ID provides a unique identifier for the JWT
	ID string `json:"jti,omitempty"`
}
