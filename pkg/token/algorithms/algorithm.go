package algorithms

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrInvalidKey           = errors.New("invalid key material")
	ErrInvalidKeyType       = errors.New("invalid key type")
)

// Family groups algorithms by the kind of secret they sign with
type Family int

const (
	// FamilyHMAC signs with a shared byte secret
	FamilyHMAC Family = iota
	// FamilyAsymmetric signs with a PEM encoded private key
	FamilyAsymmetric
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyAsymmetric:
		return "ASYMMETRIC"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// FamilyOf classifies an algorithm name. Names starting with "HS" are HMAC,
// everything else is asymmetric.
func FamilyOf(name string) Family {
	if strings.HasPrefix(name, "HS") {
		return FamilyHMAC
	}
	return FamilyAsymmetric
}

// Algorithm binds one algorithm name to one signing primitive
type Algorithm interface {
	// Name returns the algorithm name (e.g., "HS256", "ES256")
	Name() string

	// Hash returns the hash function used by the algorithm
	Hash() crypto.Hash

	// Family returns whether the algorithm signs with a shared secret or a private key
	Family() Family

	// KeyType returns the key type the algorithm signs with
	KeyType() KeyType

	// ParseKey converts effective key bytes into the key value Sign expects
	ParseKey(material []byte) (interface{}, error)

	// Sign signs the JWS signing input (segment1 + "." + segment2)
	Sign(signingInput string, key interface{}) ([]byte, error)

	// KeyCheck validates the key type for signing
	KeyCheck(key interface{}) error
}

// KeyType represents supported key types
type KeyType int

const (
	KeyTypeECDSA KeyType = iota
	KeyTypeRSA
	KeyTypeHMAC
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeECDSA:
		return "ECDSA"
	case KeyTypeRSA:
		return "RSA"
	case KeyTypeHMAC:
		return "HMAC"
	default:
		return fmt.Sprintf("KeyType(%d)", int(k))
	}
}

// BaseAlgorithm provides common functionality for all algorithms
type BaseAlgorithm struct {
	name    string
	hash    crypto.Hash
	keyType KeyType
	method  jwt.SigningMethod
}

func newBaseAlgorithm(name string, hash crypto.Hash, keyType KeyType) BaseAlgorithm {
	method := jwt.GetSigningMethod(name)
	if method == nil {
		panic(fmt.Sprintf("algorithms: no signing method for %s", name))
	}
	return BaseAlgorithm{
		name:    name,
		hash:    hash,
		keyType: keyType,
		method:  method,
	}
}

func (b *BaseAlgorithm) Name() string {
	return b.name
}

func (b *BaseAlgorithm) Hash() crypto.Hash {
	return b.hash
}

func (b *BaseAlgorithm) Family() Family {
	return FamilyOf(b.name)
}

func (b *BaseAlgorithm) KeyType() KeyType {
	return b.keyType
}

func (b *BaseAlgorithm) KeyCheck(key interface{}) error {
	switch b.keyType {
	case KeyTypeECDSA:
		if _, ok := key.(*ecdsa.PrivateKey); !ok {
			return ErrInvalidKeyType
		}
	case KeyTypeRSA:
		if _, ok := key.(*rsa.PrivateKey); !ok {
			return ErrInvalidKeyType
		}
	case KeyTypeHMAC:
		if _, ok := key.([]byte); !ok {
			return ErrInvalidKeyType
		}
	}
	return nil
}

// Sign checks the key type and delegates to the bound signing method
func (b *BaseAlgorithm) Sign(signingInput string, key interface{}) ([]byte, error) {
	if err := b.KeyCheck(key); err != nil {
		return nil, fmt.Errorf("%s: %w: %T", b.name, err, key)
	}

	signature, err := b.method.Sign(signingInput, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", b.name, ErrInvalidKey, err)
	}

	return signature, nil
}
