package logger

import "testing"

func TestNamedWithNilBaseIsNop(t *testing.T) {
	l := Named(nil, "store")
	if l == nil {
		t.Fatalf("expected a no-op logger")
	}
	l.Info("discarded")
}

func TestNewBuildsBothModes(t *testing.T) {
	for _, dev := range []bool{false, true} {
		l, err := New(dev)
		if err != nil {
			t.Fatalf("New(%v): %v", dev, err)
		}
		if Named(l, "http") == nil {
			t.Fatalf("Named returned nil")
		}
	}
}
