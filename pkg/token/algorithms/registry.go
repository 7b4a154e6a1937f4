package algorithms

import (
	"crypto"
	"fmt"
)

// supported is the fixed algorithm table in presentation order
var supported = []Algorithm{
	NewHMACAlgorithm("HS256", crypto.SHA256),
	NewHMACAlgorithm("HS384", crypto.SHA384),
	NewHMACAlgorithm("HS512", crypto.SHA512),
	NewRSAAlgorithm("RS256", crypto.SHA256, paddingPKCS1v15),
	NewRSAAlgorithm("RS384", crypto.SHA384, paddingPKCS1v15),
	NewRSAAlgorithm("RS512", crypto.SHA512, paddingPKCS1v15),
	NewECDSAAlgorithm("ES256", crypto.SHA256, p256),
	NewECDSAAlgorithm("ES384", crypto.SHA384, p384),
	NewECDSAAlgorithm("ES512", crypto.SHA512, p521),
	NewRSAAlgorithm("PS256", crypto.SHA256, paddingPSS),
	NewRSAAlgorithm("PS384", crypto.SHA384, paddingPSS),
	NewRSAAlgorithm("PS512", crypto.SHA512, paddingPSS),
}

var algorithms = func() map[string]Algorithm {
	m := make(map[string]Algorithm, len(supported))
	for _, alg := range supported {
		m[alg.Name()] = alg
	}
	return m
}()

// Get retrieves an algorithm from the registry by name
// Returns ErrUnsupportedAlgorithm if algorithm not found
func Get(name string) (Algorithm, error) {
	alg, exists := algorithms[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// IsSupported reports whether name is in the registry
func IsSupported(name string) bool {
	_, exists := algorithms[name]
	return exists
}

// List returns all supported algorithm names in registry order
func List() []string {
	names := make([]string, 0, len(supported))
	for _, alg := range supported {
		names = append(names, alg.Name())
	}
	return names
}
