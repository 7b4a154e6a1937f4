package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexadamm/jwt-dynamic-value/pkg/token"
	"github.com/alexadamm/jwt-dynamic-value/pkg/token/algorithms"
	"github.com/alexadamm/jwt-dynamic-value/pkg/vault"
)

// SecretSource resolves a secret stored outside of the command line
type SecretSource interface {
	ReadSecret(ctx context.Context, path, field string) (string, error)
}

// SourceFactory builds the SecretSource used for --vault-path
type SourceFactory func(cfg *Config) (SecretSource, error)

// VaultSource is the default SourceFactory
func VaultSource(cfg *Config) (SecretSource, error) {
	client, err := vault.NewClient(vault.Config{
		Address:   cfg.VaultAddr,
		Token:     cfg.VaultToken,
		Mount:     cfg.VaultMount,
		KVVersion: cfg.VaultKVVersion,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

type options struct {
	alg                 string
	header              string
	payload             string
	timeFields          bool
	tokenID             bool
	secret              string
	secretBase64        bool
	vaultPath           string
	vaultField          string
	allowHeaderOverride bool
	lifetime            time.Duration
	verbose             bool
}

// NewRootCommand builds the jwtgen command. Flag defaults come from cfg.
func NewRootCommand(cfg *Config, sources SourceFactory) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "jwtgen",
		Short: "jwtgen - Generate signed JSON Web Tokens",
		Long: `jwtgen signs a JSON Web Token from a header, a payload and a secret
and prints the compact token.

Supported algorithms:
  ` + strings.Join(algorithms.List(), ", ") + `

HMAC algorithms take a shared secret. RSA, ECDSA and RSA-PSS algorithms take a
PEM encoded private key; escaped newlines (\n) in the key are restored.
Values starting with @ are read from a file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, sources, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.alg, "alg", cfg.Algorithm, "signing algorithm")
	flags.StringVar(&opts.header, "header", "{}", "header JSON object, or @file")
	flags.StringVar(&opts.payload, "payload", "{}", "payload JSON object, or @file")
	flags.BoolVar(&opts.timeFields, "time-fields", true, "add iat and exp claims")
	flags.BoolVar(&opts.tokenID, "jti", false, "add a random jti claim")
	flags.StringVar(&opts.secret, "secret", cfg.Secret, "HMAC secret or PEM private key, or @file")
	flags.BoolVar(&opts.secretBase64, "secret-base64", cfg.SecretBase64, "secret is base64url encoded")
	flags.StringVar(&opts.vaultPath, "vault-path", "", "read the secret from this Vault KV path")
	flags.StringVar(&opts.vaultField, "vault-field", "key", "field of the Vault secret")
	flags.BoolVar(&opts.allowHeaderOverride, "allow-header-override", false, "let a header alg select the signing algorithm")
	flags.DurationVar(&opts.lifetime, "lifetime", cfg.Lifetime, "gap between iat and exp")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log signing diagnostics to stderr")

	cmd.AddCommand(newAlgorithmsCommand())

	return cmd
}

func newAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported signing algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range algorithms.List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func run(cmd *cobra.Command, cfg *Config, sources SourceFactory, opts *options) error {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	header, err := readValue(opts.header)
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	payload, err := readValue(opts.payload)
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}

	secret, err := resolveSecret(cmd.Context(), cfg, sources, opts)
	if err != nil {
		return err
	}

	gen, err := token.New(token.Config{
		Logger:              logger,
		Lifetime:            opts.lifetime,
		AllowHeaderOverride: opts.allowHeaderOverride,
	})
	if err != nil {
		return err
	}

	jwt, err := gen.Generate(cmd.Context(), token.Input{
		Algorithm:               opts.alg,
		Header:                  json.RawMessage(header),
		Payload:                 json.RawMessage(payload),
		AddTimeFields:           opts.timeFields,
		AddTokenID:              opts.tokenID,
		SignatureSecret:         secret,
		SignatureSecretIsBase64: opts.secretBase64,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), jwt)
	return nil
}

func resolveSecret(ctx context.Context, cfg *Config, sources SourceFactory, opts *options) (string, error) {
	if opts.vaultPath == "" {
		secret, err := readValue(opts.secret)
		if err != nil {
			return "", fmt.Errorf("secret: %w", err)
		}
		return secret, nil
	}

	if sources == nil {
		return "", fmt.Errorf("no secret source configured for --vault-path")
	}
	source, err := sources(cfg)
	if err != nil {
		return "", err
	}
	return source.ReadSecret(ctx, opts.vaultPath, opts.vaultField)
}

// readValue returns value, or the contents of the file it names with a leading @
func readValue(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(value, "@"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
