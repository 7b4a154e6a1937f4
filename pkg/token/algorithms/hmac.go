package algorithms

import (
	"crypto"
	"fmt"
)

// HMACAlgorithm implements the Algorithm interface for HMAC signatures
type HMACAlgorithm struct {
	BaseAlgorithm
}

// NewHMACAlgorithm creates a new HMAC algorithm instance
func NewHMACAlgorithm(name string, hash crypto.Hash) Algorithm {
	return &HMACAlgorithm{
		BaseAlgorithm: newBaseAlgorithm(name, hash, KeyTypeHMAC),
	}
}

// ParseKey returns the secret bytes unchanged. An empty secret is rejected.
func (h *HMACAlgorithm) ParseKey(material []byte) (interface{}, error) {
	if len(material) == 0 {
		return nil, fmt.Errorf("%s: %w: empty secret", h.name, ErrInvalidKey)
	}
	key := make([]byte, len(material))
	copy(key, material)
	return key, nil
}
