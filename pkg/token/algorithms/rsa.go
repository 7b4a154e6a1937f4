package algorithms

import (
	"crypto"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// RSAAlgorithm implements the Algorithm interface for RSA signatures
type RSAAlgorithm struct {
	BaseAlgorithm
	padding padding
}

type padding int

const (
	paddingPKCS1v15 padding = iota
	paddingPSS
)

// NewRSAAlgorithm creates a new RSA algorithm instance
// Supports both PKCS1v15 (RS*) and PSS (PS*) padding.
// PSS signatures use a salt as long as the hash.
func NewRSAAlgorithm(name string, hash crypto.Hash, pad padding) Algorithm {
	return &RSAAlgorithm{
		BaseAlgorithm: newBaseAlgorithm(name, hash, KeyTypeRSA),
		padding:       pad,
	}
}

// ParseKey parses a PEM encoded PKCS#1 or PKCS#8 RSA private key
func (r *RSAAlgorithm) ParseKey(material []byte) (interface{}, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(material)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", r.name, ErrInvalidKey, err)
	}
	return key, nil
}
