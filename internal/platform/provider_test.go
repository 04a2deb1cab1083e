package platform

import (
	"errors"
	"testing"
)

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("no-such-backend", "")
	if err == nil {
		t.Fatal("expected error for unregistered backend")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestRegister_Open(t *testing.T) {
	want := &Provider{}
	var gotTarget string
	Register("test-backend", func(target string) (*Provider, error) {
		gotTarget = target
		return want, nil
	})
	defer func() {
		registryMu.Lock()
		delete(registry, "test-backend")
		registryMu.Unlock()
	}()

	p, err := Open("test-backend", "session.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if p != want {
		t.Error("Open returned a different provider")
	}
	if gotTarget != "session.yaml" {
		t.Errorf("target: got %q", gotTarget)
	}

	found := false
	for _, name := range Backends() {
		if name == "test-backend" {
			found = true
		}
	}
	if !found {
		t.Error("registered backend missing from Backends()")
	}
}
