package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alexadamm/jwt-dynamic-value/pkg/token/algorithms"
)

func TestNormalizeSecret(t *testing.T) {
	b64 := base64.RawURLEncoding.EncodeToString([]byte("line1\nline2"))

	tests := []struct {
		name      string
		family    algorithms.Family
		raw       string
		isBase64  bool
		wantForm  SecretForm
		wantValue string
		wantBytes string
	}{
		{"hmac utf8", algorithms.FamilyHMAC, "mysecret", false, FormUTF8, "mysecret", "mysecret"},
		{"hmac utf8 escaped newline", algorithms.FamilyHMAC, `a\nb`, false, FormUTF8, "a\nb", "a\nb"},
		{"hmac base64url", algorithms.FamilyHMAC, "bXlzZWNyZXQ", true, FormBase64URL, "bXlzZWNyZXQ", "mysecret"},
		{"hmac base64url padded", algorithms.FamilyHMAC, "bXlzZWNyZXQ=", true, FormBase64URL, "bXlzZWNyZXQ=", "mysecret"},
		{"key raw", algorithms.FamilyAsymmetric, `-----BEGIN X-----\nAAAA\n-----END X-----`, false, FormKey, "-----BEGIN X-----\nAAAA\n-----END X-----", "-----BEGIN X-----\nAAAA\n-----END X-----"},
		{"key base64url", algorithms.FamilyAsymmetric, b64, true, FormKey, "line1\nline2", "line1\nline2"},
		{"key base64url escaped newline", algorithms.FamilyAsymmetric, base64.RawURLEncoding.EncodeToString([]byte(`a\nb`)), true, FormKey, "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := NormalizeSecret(tt.family, tt.raw, tt.isBase64)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if secret.Form != tt.wantForm {
				t.Errorf("Expected form %v, got %v", tt.wantForm, secret.Form)
			}
			if secret.Value != tt.wantValue {
				t.Errorf("Expected value %q, got %q", tt.wantValue, secret.Value)
			}
			if !secret.Fits(tt.family) {
				t.Errorf("Secret %v does not fit family %v", secret, tt.family)
			}
			material, err := secret.Bytes()
			if err != nil {
				t.Fatalf("Bytes failed: %v", err)
			}
			if string(material) != tt.wantBytes {
				t.Errorf("Expected bytes %q, got %q", tt.wantBytes, material)
			}
		})
	}
}

func TestNormalizeSecretInvalidBase64(t *testing.T) {
	for _, family := range []algorithms.Family{algorithms.FamilyHMAC, algorithms.FamilyAsymmetric} {
		t.Run(family.String(), func(t *testing.T) {
			_, err := NormalizeSecret(family, "not*base64url!", true)
			if !errors.Is(err, ErrInvalidBase64URL) {
				t.Errorf("Expected ErrInvalidBase64URL, got %v", err)
			}
		})
	}

	t.Run("standard alphabet is rejected", func(t *testing.T) {
		_, err := NormalizeSecret(algorithms.FamilyHMAC, "ab+/", true)
		if !errors.Is(err, ErrInvalidBase64URL) {
			t.Errorf("Expected ErrInvalidBase64URL, got %v", err)
		}
	})
}

func TestSecretMaterialDoesNotLeak(t *testing.T) {
	secret := SecretMaterial{Form: FormUTF8, Value: "topsecret"}

	if s := secret.String(); strings.Contains(s, "topsecret") {
		t.Errorf("String() leaks the secret: %s", s)
	}

	encoded, err := json.Marshal(secret)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(encoded), "topsecret") {
		t.Errorf("MarshalJSON leaks the secret: %s", encoded)
	}
}

func TestSecretFits(t *testing.T) {
	if (SecretMaterial{Form: FormKey}).Fits(algorithms.FamilyHMAC) {
		t.Error("Key form should not fit HMAC")
	}
	if (SecretMaterial{Form: FormUTF8}).Fits(algorithms.FamilyAsymmetric) {
		t.Error("UTF-8 form should not fit asymmetric algorithms")
	}
	if _, err := (SecretMaterial{}).Bytes(); !errors.Is(err, ErrSigningKeyMismatch) {
		t.Errorf("Expected ErrSigningKeyMismatch for zero SecretMaterial, got %v", err)
	}
}
