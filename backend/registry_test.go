package backend

import (
	"errors"
	"slices"
	"testing"
)

func TestBuiltinEnginesRegistered(t *testing.T) {
	for _, name := range []string{EngineSerial, EngineParallel} {
		if !IsRegistered(name) {
			t.Errorf("IsRegistered(%q) = false, want true", name)
		}
		e := Get(name)
		if e == nil {
			t.Fatalf("Get(%q) = nil", name)
		}
		if e.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, e.Name())
		}
	}

	if got := Available(); !slices.Contains(got, EngineSerial) || !slices.Contains(got, EngineParallel) {
		t.Errorf("Available() = %v, want serial and parallel", got)
	}
}

func TestDefaultPriority(t *testing.T) {
	if got := Default().Name(); got != EngineParallel {
		t.Errorf("Default().Name() = %q, want %q", got, EngineParallel)
	}

	saved := engines[EngineParallel]
	Unregister(EngineParallel)
	t.Cleanup(func() { Register(EngineParallel, saved) })

	if got := Default().Name(); got != EngineSerial {
		t.Errorf("Default().Name() without parallel = %q, want %q", got, EngineSerial)
	}
}

func TestRegisterCustomEngine(t *testing.T) {
	Register("custom", func() Engine { return Serial{} })
	t.Cleanup(func() { Unregister("custom") })

	if !IsRegistered("custom") {
		t.Error("IsRegistered(custom) = false after Register")
	}

	Unregister("custom")
	if IsRegistered("custom") {
		t.Error("IsRegistered(custom) = true after Unregister")
	}
	if Get("custom") != nil {
		t.Error("Get(custom) should return nil after Unregister")
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("missing"); !errors.Is(err, ErrEngineNotAvailable) {
		t.Errorf("Lookup(missing) error = %v, want ErrEngineNotAvailable", err)
	}
	e, err := Lookup(EngineSerial)
	if err != nil {
		t.Fatalf("Lookup(serial) error = %v", err)
	}
	if e.Name() != EngineSerial {
		t.Errorf("Lookup(serial).Name() = %q", e.Name())
	}
}

func TestMustDefaultPanicsWhenEmpty(t *testing.T) {
	registryMu.Lock()
	saved := engines
	engines = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		engines = saved
		registryMu.Unlock()
	})

	if Default() != nil {
		t.Error("Default() should return nil with no engines")
	}
	defer func() {
		if recover() == nil {
			t.Error("MustDefault() should panic with no engines")
		}
	}()
	MustDefault()
}
