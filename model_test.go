package main

import (
	"strings"
	"testing"
)

func TestInitialModelTranslatesFirstDemo(t *testing.T) {
	m := initialModel()
	if m.wireErr != nil {
		t.Fatalf("first demo failed to translate: %v", m.wireErr)
	}
	if !strings.HasPrefix(m.lastWire, "OPENQASM 2.0;") {
		t.Errorf("wire panel missing version header:\n%s", m.lastWire)
	}
}

func TestAllDemosTranslateAndRun(t *testing.T) {
	for _, demo := range demoCircuits() {
		b := NewBackend(demo.circuit.NumQubits())
		if _, _, err := b.TranslateCircuit(demo.circuit, false); err != nil {
			t.Errorf("demo %q: translate: %v", demo.name, err)
			continue
		}
		if _, _, err := b.RunCircuit(demo.circuit, 1); err != nil {
			t.Errorf("demo %q: run: %v", demo.name, err)
		}
	}
}

func TestSelectDemoWraps(t *testing.T) {
	m := initialModel()
	n := len(m.demos)

	m.selectDemo(-1)
	if m.demoIdx != n-1 {
		t.Errorf("selectDemo(-1): demoIdx = %d, want %d", m.demoIdx, n-1)
	}
	m.selectDemo(n)
	if m.demoIdx != 0 {
		t.Errorf("selectDemo(%d): demoIdx = %d, want 0", n, m.demoIdx)
	}
}

func TestPlaceOpInsertsAfterCursor(t *testing.T) {
	m := initialModel()
	before := len(m.circuit)
	m.cursor = 0

	entry := opMenu[0].entries[0] // Hadamard
	m.pending = &entry
	m.pendingQubit = 1
	m.placeOp(-1, Param{})

	if len(m.circuit) != before+1 {
		t.Fatalf("circuit length %d, want %d", len(m.circuit), before+1)
	}
	h, ok := m.circuit[1].(Hadamard)
	if !ok || h.Qubit != 1 {
		t.Errorf("circuit[1] = %#v, want Hadamard on qubit 1", m.circuit[1])
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	if m.pending != nil {
		t.Error("pending entry not cleared after placement")
	}
}
