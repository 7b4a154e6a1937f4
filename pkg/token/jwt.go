package token

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexadamm/jwt-dynamic-value/pkg/token/algorithms"
)

// Generator turns host inputs into signed tokens. It keeps no per-token state
// and is safe for concurrent use.
type Generator struct {
	log                 logrus.FieldLogger
	clock               func() time.Time
	lifetime            time.Duration
	allowHeaderOverride bool
}

var _ TokenGenerator = (*Generator)(nil)

// New creates a new Generator
func New(config Config) (*Generator, error) {
	if config.Lifetime == 0 {
		config.Lifetime = DefaultConfig.Lifetime
	}
	if config.Lifetime < time.Second {
		return nil, fmt.Errorf("%w: lifetime %s is shorter than one second", ErrInvalidConfig, config.Lifetime)
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	return &Generator{
		log:                 config.Logger,
		clock:               config.Clock,
		lifetime:            config.Lifetime,
		allowHeaderOverride: config.AllowHeaderOverride,
	}, nil
}

// Generate validates the algorithm, assembles header and payload, normalizes
// the secret and signs. No partial token is returned on error.
func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	headerExtra, err := ParseFragment(in.Header)
	if err != nil {
		return "", fmt.Errorf("header: %w", err)
	}

	payloadExtra, err := ParseFragment(in.Payload)
	if err != nil {
		return "", fmt.Errorf("payload: %w", err)
	}

	name, err := g.resolveAlgorithm(in.Algorithm, headerExtra)
	if err != nil {
		return "", err
	}

	alg, err := algorithms.Get(name)
	if err != nil {
		g.log.WithField("alg", name).Warnf("Unsupported algorithm '%s' (supports %s)", name, strings.Join(algorithms.List(), ", "))
		return "", err
	}

	now := g.clock()

	header, err := AssembleHeader(alg.Name(), headerExtra)
	if err != nil {
		return "", err
	}

	opts := PayloadOptions{
		AddTimeFields: in.AddTimeFields,
		Now:           now,
		Lifetime:      g.lifetime,
	}
	if in.AddTokenID {
		opts.TokenID = uuid.NewString()
	}
	payload, err := AssemblePayload(payloadExtra, opts)
	if err != nil {
		return "", err
	}

	secret, err := NormalizeSecret(alg.Family(), in.SignatureSecret, in.SignatureSecretIsBase64)
	if err != nil {
		return "", err
	}

	g.log.WithFields(logrus.Fields{
		"alg":     alg.Name(),
		"header":  header,
		"payload": payload,
		"secret":  secret,
	}).Debug("Sign JWT")

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return Sign(alg.Name(), header, payload, secret)
}

// resolveAlgorithm reconciles the requested algorithm with an "alg" in the
// caller's header. A matching value is accepted. A different value either
// fails or, with AllowHeaderOverride, selects the signing algorithm so the
// header never names an algorithm other than the one used.
func (g *Generator) resolveAlgorithm(requested string, headerExtra *Claims) (string, error) {
	if requested == "" {
		requested = DefaultAlgorithm
	}

	raw, ok := headerExtra.Get("alg")
	if !ok {
		return requested, nil
	}

	var headerAlg string
	if err := json.Unmarshal(raw, &headerAlg); err != nil {
		return "", fmt.Errorf("%w: header alg must be a string, got %s", ErrHeaderConflict, raw)
	}
	if headerAlg == requested {
		return requested, nil
	}
	if !g.allowHeaderOverride {
		return "", fmt.Errorf("%w: header alg %q differs from %q", ErrHeaderConflict, headerAlg, requested)
	}

	g.log.WithFields(logrus.Fields{
		"requested": requested,
		"header":    headerAlg,
	}).Warn("Header alg overrides the selected algorithm")
	return headerAlg, nil
}
