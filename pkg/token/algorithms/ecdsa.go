package algorithms

import (
	"crypto"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ECDSAAlgorithm implements the Algorithm interface for ECDSA signatures
type ECDSAAlgorithm struct {
	BaseAlgorithm
	curve ellipticCurve
}

type ellipticCurve struct {
	name    string // P-256, P-384, P-521
	bitSize int
	keySize int // Size in bytes for R and S components
}

var (
	// Predefined curves
	p256 = ellipticCurve{name: "P-256", bitSize: 256, keySize: 32}
	p384 = ellipticCurve{name: "P-384", bitSize: 384, keySize: 48}
	p521 = ellipticCurve{name: "P-521", bitSize: 521, keySize: 66}
)

// NewECDSAAlgorithm creates a new ECDSA algorithm instance
func NewECDSAAlgorithm(name string, hash crypto.Hash, curve ellipticCurve) Algorithm {
	return &ECDSAAlgorithm{
		BaseAlgorithm: newBaseAlgorithm(name, hash, KeyTypeECDSA),
		curve:         curve,
	}
}

// SignatureSize is the length of a raw R||S signature
func (e *ECDSAAlgorithm) SignatureSize() int {
	return e.curve.keySize * 2
}

// ParseKey parses a PEM encoded SEC1 or PKCS#8 EC private key.
// The key must be on the curve the algorithm names.
func (e *ECDSAAlgorithm) ParseKey(material []byte) (interface{}, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(material)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", e.name, ErrInvalidKey, err)
	}

	if got := key.Curve.Params().BitSize; got != e.curve.bitSize {
		return nil, fmt.Errorf("%s: %w: key is on a %d-bit curve, want %s", e.name, ErrInvalidKey, got, e.curve.name)
	}

	return key, nil
}
