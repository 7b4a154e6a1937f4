/*
Package vault reads token signing secrets from HashiCorp Vault's KV secrets engine.

Hosts that keep HMAC secrets or PEM private keys in Vault resolve them here
instead of pasting them into a field. Both KV versions are supported:

- KV v2: read from <mount>/data/<path>, fields under data.data
- KV v1: read from <mount>/<path>, fields under data

The value read is handed to the token package unchanged, so base64url and
escaped-newline handling still apply.
*/
package vault
