package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"
)

var (
	// ErrSecretNotFound is returned when nothing is stored at the path
	ErrSecretNotFound = errors.New("secret not found")

	// ErrFieldNotFound is returned when the secret has no such field
	ErrFieldNotFound = errors.New("secret field not found")
)

// Client wraps HashiCorp Vault's KV engine client
type Client struct {
	client    *api.Client
	mount     string
	kvVersion int
}

// Config holds configuration for the Vault client
type Config struct {
	// Address is the Vault server address
	Address string

	// Token is the authentication token
	Token string

	// Mount is the KV engine mount path. Defaults to "secret".
	Mount string

	// KVVersion is 1 or 2. Defaults to 2.
	KVVersion int
}

// NewClient creates a new Vault client
func NewClient(config Config) (*Client, error) {
	if config.Mount == "" {
		config.Mount = "secret"
	}
	if config.KVVersion == 0 {
		config.KVVersion = 2
	}
	if config.KVVersion != 1 && config.KVVersion != 2 {
		return nil, fmt.Errorf("unsupported KV version %d", config.KVVersion)
	}

	vaultConfig := api.DefaultConfig()
	if config.Address != "" {
		vaultConfig.Address = config.Address
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(config.Token)

	return &Client{
		client:    client,
		mount:     strings.Trim(config.Mount, "/"),
		kvVersion: config.KVVersion,
	}, nil
}

func (c *Client) secretPath(path string) string {
	path = strings.Trim(path, "/")
	if c.kvVersion == 2 {
		return fmt.Sprintf("%s/data/%s", c.mount, path)
	}
	return fmt.Sprintf("%s/%s", c.mount, path)
}

// ReadSecret returns one string field of the secret stored at path
func (c *Client) ReadSecret(ctx context.Context, path, field string) (string, error) {
	secret, err := c.client.Logical().ReadWithContext(ctx, c.secretPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", path, err)
	}

	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
	}

	data := secret.Data
	if c.kvVersion == 2 {
		nested, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			// deleted or destroyed versions come back with "data": null
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
		}
		data = nested
	}

	raw, ok := data[field]
	if !ok {
		return "", fmt.Errorf("%w: %s#%s", ErrFieldNotFound, path, field)
	}

	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid value format for %s#%s: %T", path, field, raw)
	}

	return value, nil
}
