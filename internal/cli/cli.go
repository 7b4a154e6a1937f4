// Package cli implements the jwtgen command line host.
package cli

import "context"

// Execute loads configuration from the environment and runs the root command
func Execute(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return NewRootCommand(cfg, VaultSource).ExecuteContext(ctx)
}
