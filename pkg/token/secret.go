package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexadamm/jwt-dynamic-value/pkg/token/algorithms"
)

// SecretForm tags how a SecretMaterial value is to be read
type SecretForm int

const (
	// FormUTF8 is an HMAC secret whose bytes are the UTF-8 text itself
	FormUTF8 SecretForm = iota + 1
	// FormBase64URL is an HMAC secret given as base64url text
	FormBase64URL
	// FormKey is asymmetric key material, usually PEM text
	FormKey
)

func (f SecretForm) String() string {
	switch f {
	case FormUTF8:
		return "utf8"
	case FormBase64URL:
		return "base64url"
	case FormKey:
		return "key"
	default:
		return fmt.Sprintf("SecretForm(%d)", int(f))
	}
}

// SecretMaterial is a normalized secret tagged with its form
type SecretMaterial struct {
	Form  SecretForm
	Value string
}

// Bytes returns the effective key bytes
func (s SecretMaterial) Bytes() ([]byte, error) {
	switch s.Form {
	case FormUTF8, FormKey:
		return []byte(s.Value), nil
	case FormBase64URL:
		return decodeBase64URL(s.Value)
	default:
		return nil, fmt.Errorf("%w: unknown secret form %v", ErrSigningKeyMismatch, s.Form)
	}
}

// Fits reports whether the form is usable by the algorithm family
func (s SecretMaterial) Fits(family algorithms.Family) bool {
	if family == algorithms.FamilyHMAC {
		return s.Form == FormUTF8 || s.Form == FormBase64URL
	}
	return s.Form == FormKey
}

// String describes the secret without revealing it
func (s SecretMaterial) String() string {
	return fmt.Sprintf("%s(%d bytes)", s.Form, len(s.Value))
}

// MarshalJSON keeps structured loggers from serializing the value
func (s SecretMaterial) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// NormalizeSecret converts the raw secret input into the representation the
// algorithm family signs with.
//
//	family      base64url  result
//	HMAC        false      FormUTF8, raw
//	HMAC        true       FormBase64URL, raw (validated)
//	ASYMMETRIC  false      FormKey, raw
//	ASYMMETRIC  true       FormKey, decoded raw
//
// In every branch the two-character sequence `\n` in the result is replaced by a newline.
func NormalizeSecret(family algorithms.Family, raw string, isBase64URL bool) (SecretMaterial, error) {
	var secret SecretMaterial

	switch family {
	case algorithms.FamilyHMAC:
		if isBase64URL {
			if _, err := decodeBase64URL(raw); err != nil {
				return SecretMaterial{}, err
			}
			secret = SecretMaterial{Form: FormBase64URL, Value: raw}
		} else {
			secret = SecretMaterial{Form: FormUTF8, Value: raw}
		}
	default:
		value := raw
		if isBase64URL {
			decoded, err := decodeBase64URL(raw)
			if err != nil {
				return SecretMaterial{}, err
			}
			value = string(decoded)
		}
		secret = SecretMaterial{Form: FormKey, Value: value}
	}

	secret.Value = unescapeNewlines(secret.Value)
	return secret, nil
}

// PEM keys pasted into single-line fields commonly carry escaped newlines
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// decodeBase64URL accepts base64url with or without padding
func decodeBase64URL(s string) ([]byte, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64URL, err)
	}
	return decoded, nil
}
