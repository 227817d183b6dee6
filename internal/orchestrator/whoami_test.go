package orchestrator

import "testing"

func TestWhoAmIReportsIdentity(t *testing.T) {
	o := newTestOrchestrator(t, newFakeTransport(), &fakePrompter{terminal: false})
	if _, err := o.Init(InitOptions{}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	result, err := o.WhoAmI()
	if err != nil {
		t.Fatalf("WhoAmI() error = %v", err)
	}
	if result.PublicKeyZ32 == "" {
		t.Fatal("expected non-empty public key")
	}
	if result.Fingerprint == "" {
		t.Fatal("expected non-empty fingerprint")
	}
	if result.KeyPath == "" {
		t.Fatal("expected non-empty key path")
	}
}

func TestWhoAmIWithoutKeyErrors(t *testing.T) {
	o := newTestOrchestrator(t, newFakeTransport(), &fakePrompter{terminal: false})

	if _, err := o.WhoAmI(); err == nil {
		t.Fatal("expected error when no key exists")
	}
}
