package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Claims is a JSON object that keeps its keys in insertion order.
// Setting an existing key replaces the value in place.
type Claims struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewClaims returns an empty object
func NewClaims() *Claims {
	return &Claims{values: make(map[string]json.RawMessage)}
}

// ParseFragment parses a caller supplied JSON object. Empty input is an empty object.
// Anything other than an object fails with ErrInvalidJSONFragment.
func ParseFragment(raw []byte) (*Claims, error) {
	c := NewClaims()
	if len(bytes.TrimSpace(raw)) == 0 {
		return c, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSONFragment, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrInvalidJSONFragment, describeToken(tok))
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSONFragment, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected object key %v", ErrInvalidJSONFragment, tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrInvalidJSONFragment, key, err)
		}
		if err := c.SetRaw(key, value); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSONFragment, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidJSONFragment)
	}

	return c, nil
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return v.String()
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}

// Set stores the JSON encoding of value under key
func (c *Claims) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	c.put(key, raw)
	return nil
}

// SetRaw stores an already encoded JSON value under key
func (c *Claims) SetRaw(key string, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return fmt.Errorf("%w: value of %q: %v", ErrInvalidJSONFragment, key, err)
	}
	c.put(key, buf.Bytes())
	return nil
}

func (c *Claims) put(key string, raw json.RawMessage) {
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = raw
}

// Get returns the encoded value stored under key
func (c *Claims) Get(key string) (json.RawMessage, bool) {
	raw, ok := c.values[key]
	return raw, ok
}

// Keys returns the keys in insertion order
func (c *Claims) Keys() []string {
	return append([]string(nil), c.keys...)
}

func (c *Claims) Len() int {
	return len(c.keys)
}

// Merge overlays other onto c. Keys from other win; keys new to c are appended in other's order.
func (c *Claims) Merge(other *Claims) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		c.put(key, other.values[key])
	}
}

// MarshalJSON encodes the object compactly with keys in insertion order
func (c *Claims) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(c.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Claims) String() string {
	b, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid claims: %v>", err)
	}
	return string(b)
}

// AssembleHeader builds the token header.
//
// Precedence, lowest first:
//
//	typ  "JWT"        computed
//	alg  <algorithm>  computed
//	...  extra        caller, overrides computed keys
//
// Callers are expected to have reconciled a caller supplied "alg" with the
// signing algorithm before calling (see Generator).
func AssembleHeader(algorithm string, extra *Claims) (*Claims, error) {
	header := NewClaims()
	if err := header.Set("typ", "JWT"); err != nil {
		return nil, err
	}
	if err := header.Set("alg", algorithm); err != nil {
		return nil, err
	}
	header.Merge(extra)
	return header, nil
}

// PayloadOptions controls the computed payload claims
type PayloadOptions struct {
	// AddTimeFields seeds "iat" and "exp"
	AddTimeFields bool

	// Now is the issue time. Only whole seconds are used.
	Now time.Time

	// Lifetime is the gap between "iat" and "exp"
	Lifetime time.Duration

	// TokenID, when non-empty, seeds "jti"
	TokenID string
}

// AssemblePayload builds the token payload.
//
// Precedence, lowest first:
//
//	iat  Now             computed, only with AddTimeFields
//	exp  Now + Lifetime  computed, only with AddTimeFields
//	jti  TokenID         computed, only when set
//	...  extra           caller, overrides computed keys
func AssemblePayload(extra *Claims, opts PayloadOptions) (*Claims, error) {
	payload := NewClaims()
	if opts.AddTimeFields {
		iat := opts.Now.Unix()
		if err := payload.Set("iat", iat); err != nil {
			return nil, err
		}
		if err := payload.Set("exp", iat+int64(opts.Lifetime/time.Second)); err != nil {
			return nil, err
		}
	}
	if opts.TokenID != "" {
		if err := payload.Set("jti", opts.TokenID); err != nil {
			return nil, err
		}
	}
	payload.Merge(extra)
	return payload, nil
}
