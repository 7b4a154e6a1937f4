package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

type testKey struct {
	pem    string
	verify interface{}
}

func newRSAKey(t *testing.T) testKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return testKey{pem: string(pem.EncodeToMemory(block)), verify: &key.PublicKey}
}

func newECKey(t *testing.T, curve elliptic.Curve) testKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate ECDSA key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("Failed to marshal EC key: %v", err)
	}
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	return testKey{pem: string(pem.EncodeToMemory(block)), verify: &key.PublicKey}
}

// keysFor returns signing material for every registry algorithm. RSA keys are
// shared between RS* and PS*.
func keysFor(t *testing.T) map[string]testKey {
	t.Helper()
	hmacKey := testKey{pem: "mysecret", verify: []byte("mysecret")}
	rsaKey := newRSAKey(t)
	return map[string]testKey{
		"HS256": hmacKey,
		"HS384": hmacKey,
		"HS512": hmacKey,
		"RS256": rsaKey,
		"RS384": rsaKey,
		"RS512": rsaKey,
		"PS256": rsaKey,
		"PS384": rsaKey,
		"PS512": rsaKey,
		"ES256": newECKey(t, elliptic.P256()),
		"ES384": newECKey(t, elliptic.P384()),
		"ES512": newECKey(t, elliptic.P521()),
	}
}

func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// decodeSegment decodes one base64url JSON segment of a compact token
func decodeSegment(t *testing.T, token string, index int) map[string]interface{} {
	t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("Expected JWT format (header.payload.signature), got %d parts", len(parts))
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[index])
	if err != nil {
		t.Fatalf("Segment %d is not base64url: %v", index, err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Segment %d is not a JSON object: %v", index, err)
	}
	return out
}

// verifyToken checks the signature with golang-jwt; claim validation is skipped
// because tests pin the clock
func verifyToken(t *testing.T, token, alg string, key interface{}) {
	t.Helper()
	parser := jwt.NewParser(jwt.WithValidMethods([]string{alg}), jwt.WithoutClaimsValidation())
	parsed, err := parser.Parse(token, func(*jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		t.Fatalf("Token did not verify: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("Token reported invalid")
	}
}
