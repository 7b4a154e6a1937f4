/*
Package algorithms implements the fixed set of JWS signing algorithms a token can be signed with.

The registry is a closed, ordered table. Names outside of it are rejected with
ErrUnsupportedAlgorithm before any cryptographic work happens.

Supported Algorithms:
- HMAC
  - HS256 (HMAC + SHA-256)
  - HS384 (HMAC + SHA-384)
  - HS512 (HMAC + SHA-512)

- RSA PKCS1v15
  - RS256 (SHA-256)
  - RS384 (SHA-384)
  - RS512 (SHA-512)

- ECDSA
  - ES256 (P-256 + SHA-256)
  - ES384 (P-384 + SHA-384)
  - ES512 (P-521 + SHA-512)

- RSA-PSS
  - PS256 (SHA-256)
  - PS384 (SHA-384)
  - PS512 (SHA-512)

Each algorithm implementation:
- Reports its family (HMAC or asymmetric) and key type
- Parses effective key bytes into the key its primitive needs
- Signs a JWS signing input with that key
*/
package algorithms
