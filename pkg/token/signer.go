package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/alexadamm/jwt-dynamic-value/pkg/token/algorithms"
)

// Sign serializes header and payload, signs them with the named algorithm and
// returns the compact token. The algorithm is checked against the registry
// before any key is parsed.
func Sign(algorithm string, header, payload *Claims, secret SecretMaterial) (string, error) {
	alg, err := algorithms.Get(algorithm)
	if err != nil {
		return "", err
	}

	if !secret.Fits(alg.Family()) {
		return "", fmt.Errorf("%w: %s secret cannot sign %s", ErrSigningKeyMismatch, secret.Form, alg.Name())
	}

	material, err := secret.Bytes()
	if err != nil {
		return "", err
	}

	key, err := alg.ParseKey(material)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningKeyMismatch, err)
	}

	// Encode header
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}
	headerB64 := base64.RawURLEncoding.EncodeToString(headerJSON)

	// Encode claims
	claimsJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	claimsB64 := base64.RawURLEncoding.EncodeToString(claimsJSON)

	// Create signing input
	signingInput := headerB64 + "." + claimsB64

	signature, err := alg.Sign(signingInput, key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningKeyMismatch, err)
	}

	// Combine to form final token
	return fmt.Sprintf("%s.%s.%s", headerB64, claimsB64, base64.RawURLEncoding.EncodeToString(signature)), nil
}
