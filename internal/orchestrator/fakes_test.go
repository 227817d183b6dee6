package orchestrator

import (
	"context"
	"crypto/ed25519"
	"sync"
	"testing"
	"time"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/keystore"
	"github.com/johnzilla/cclink/internal/record"
)

// fakeTransport is an in-process TransportClient fake, independent of the
// real transport package so orchestrator tests don't need a DHT fixture.
type fakeTransport struct {
	mu      sync.Mutex
	records map[string]*record.HandoffRecord
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{records: make(map[string]*record.HandoffRecord)}
}

func (f *fakeTransport) Publish(ctx context.Context, priv ed25519.PrivateKey, rec *record.HandoffRecord, timestamp uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.Pubkey] = rec
	return nil
}

func (f *fakeTransport) Resolve(ctx context.Context, pub ed25519.PublicKey, pubkeyZ32 string) (*record.HandoffRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[pubkeyZ32]
	if !ok || rec.Blob == "" {
		return nil, cclinkerrors.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeTransport) Revoke(ctx context.Context, priv ed25519.PrivateKey, pubkeyZ32 string, timestamp uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, pubkeyZ32)
	return nil
}

// fakePrompter scripts every Prompter answer for deterministic tests.
type fakePrompter struct {
	terminal      bool
	confirmAnswer bool
	confirmErr    error
	secretAnswer  string
	secretErr     error
	pickIndex     int
	pickErr       error
	confirmCalls  int
	secretCalls   int
}

func (p *fakePrompter) IsTerminal() bool { return p.terminal }

func (p *fakePrompter) Confirm(prompt string) (bool, error) {
	p.confirmCalls++
	return p.confirmAnswer, p.confirmErr
}

func (p *fakePrompter) ReadSecret(prompt string) (string, error) {
	p.secretCalls++
	return p.secretAnswer, p.secretErr
}

func (p *fakePrompter) ReadSecretConfirm(prompt string) (string, error) {
	p.secretCalls++
	return p.secretAnswer, p.secretErr
}

func (p *fakePrompter) Pick(candidates []SessionCandidate) (int, error) {
	return p.pickIndex, p.pickErr
}

func noDiscover(cwdFilter string) ([]SessionCandidate, error) {
	return nil, nil
}

func noLaunch(sessionID string) error {
	return nil
}

func newTestOrchestrator(t *testing.T, transport TransportClient, prompt *fakePrompter) *Orchestrator {
	t.Helper()
	ks := keystore.NewAt(t.TempDir())
	o := New(ks, transport, noDiscover, noLaunch, prompt, new(nopWriter), new(nopWriter))
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o.Clock = func() time.Time { return fixed }
	return o
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
