package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment driven defaults. Flags override every field.
type Config struct {
	Algorithm    string        `env:"JWTGEN_ALG" envDefault:"HS256"`
	Secret       string        `env:"JWTGEN_SECRET"`
	SecretBase64 bool          `env:"JWTGEN_SECRET_BASE64"`
	Lifetime     time.Duration `env:"JWTGEN_LIFETIME" envDefault:"60s"`

	VaultAddr      string `env:"VAULT_ADDR"`
	VaultToken     string `env:"VAULT_TOKEN"`
	VaultMount     string `env:"JWTGEN_VAULT_MOUNT" envDefault:"secret"`
	VaultKVVersion int    `env:"JWTGEN_VAULT_KV_VERSION" envDefault:"2"`
}

// LoadConfig reads the environment, after loading the given dotenv files
// (".env" when none are given). Missing dotenv files are ignored; variables
// already set in the environment win over dotenv values.
func LoadConfig(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
