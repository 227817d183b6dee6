// Package orchestrator composes KeyStore, CryptoCore, RecordCodec, and
// DhtTransport into the six user-facing verbs. It contains no
// cryptographic logic of its own: every crypto decision delegates to
// internal/cryptocore or internal/record.
package orchestrator

import (
	"context"
	"crypto/ed25519"
	"io"
	"os"
	"time"

	"github.com/johnzilla/cclink/internal/config"
	"github.com/johnzilla/cclink/internal/cryptocore"
	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/keystore"
	"github.com/johnzilla/cclink/internal/metrics"
	"github.com/johnzilla/cclink/internal/record"
)

// TransportClient is the subset of transport.Client the orchestrator
// depends on; tests supply a fake or transport.NewClient(transport.NewInMemoryStore()).
type TransportClient interface {
	Publish(ctx context.Context, priv ed25519.PrivateKey, rec *record.HandoffRecord, timestamp uint64) error
	Resolve(ctx context.Context, pub ed25519.PublicKey, pubkeyZ32 string) (*record.HandoffRecord, error)
	Revoke(ctx context.Context, priv ed25519.PrivateKey, pubkeyZ32 string, timestamp uint64) error
}

// DiscoverFunc scans for candidate agent sessions, matching
// discovery.Discover's signature.
type DiscoverFunc func(cwdFilter string) ([]SessionCandidate, error)

// SessionCandidate is the orchestrator's view of a discovery.Session.
type SessionCandidate struct {
	SessionID   string
	ProjectPath string
	Mtime       time.Time
}

// LaunchFunc resumes an agent session, matching launcher.Launch's
// signature.
type LaunchFunc func(sessionID string) error

// Prompter abstracts the interactive prompts the orchestrator needs;
// cli wires this to real terminal I/O, tests supply scripted answers.
type Prompter interface {
	// IsTerminal reports whether prompts can be shown at all.
	IsTerminal() bool
	// Confirm asks a yes/no question, defaulting to false on non-terminal input.
	Confirm(prompt string) (bool, error)
	// ReadPIN prompts for a PIN or passphrase without echoing it.
	ReadSecret(prompt string) (string, error)
	// ReadSecretConfirm prompts twice and errors on mismatch.
	ReadSecretConfirm(prompt string) (string, error)
	// Pick presents candidates and returns the chosen index.
	Pick(candidates []SessionCandidate) (int, error)
}

// Orchestrator wires the components above into the six verbs.
type Orchestrator struct {
	Keys      *keystore.KeyStore
	Transport TransportClient
	Discover  DiscoverFunc
	Launch    LaunchFunc
	Prompt    Prompter
	Clock     func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	Metrics   *metrics.Metrics
	Config    *config.Config
}

// New builds an Orchestrator with the given collaborators. Clock defaults
// to time.Now if nil. Metrics defaults to the process-wide metrics.Default().
// Config defaults to config.Defaults(); callers that loaded a config file
// or env overrides should assign Orchestrator.Config afterward.
func New(keys *keystore.KeyStore, transport TransportClient, discover DiscoverFunc, launch LaunchFunc, prompt Prompter, stdout, stderr io.Writer) *Orchestrator {
	return &Orchestrator{
		Keys:      keys,
		Transport: transport,
		Discover:  discover,
		Launch:    launch,
		Prompt:    prompt,
		Clock:     time.Now,
		Stdout:    stdout,
		Stderr:    stderr,
		Metrics:   metrics.Default(),
		Config:    config.Defaults(),
	}
}

// loadIdentity loads and decrypts the on-disk identity, prompting for a
// passphrase via Prompt if the key is envelope-protected.
func (o *Orchestrator) loadIdentity() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	data, isEnvelope, err := o.Keys.Load()
	if err != nil {
		return nil, nil, err
	}

	seed := data
	if isEnvelope {
		passphrase, err := o.readPassphrase("Passphrase: ")
		if err != nil {
			return nil, nil, err
		}
		passphraseBytes := []byte(passphrase)
		defer cryptocore.SecureZero(passphraseBytes)

		decrypted, err := decryptEnvelopeSeed(data, passphraseBytes)
		if err != nil {
			return nil, nil, cclinkerrors.ErrWrongPassphrase
		}
		seed = decrypted
	}
	defer cryptocore.SecureZero(seed)

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return pub, priv, nil
}

// readPassphrase prefers the configured passphrase environment variable
// (for CI/test contexts where interactive prompting isn't possible) and
// falls back to the interactive Prompter.
func (o *Orchestrator) readPassphrase(prompt string) (string, error) {
	if o.Config != nil && o.Config.PassphraseEnv != "" {
		if v := os.Getenv(o.Config.PassphraseEnv); v != "" {
			return v, nil
		}
	}
	return o.Prompt.ReadSecret(prompt)
}

func (o *Orchestrator) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}
