package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeShotsSingleRegister(t *testing.T) {
	regs := []RegisterDef{{Name: "ro", Length: 2, Kind: BitRegister, Output: true}}

	decoded, err := decodeShots([]string{"01", "10"}, regs)
	if err != nil {
		t.Fatalf("decodeShots: %v", err)
	}

	// Character order is preserved within a register.
	want := [][]bool{{false, true}, {true, false}}
	if !reflect.DeepEqual(decoded.Bits["ro"], want) {
		t.Errorf("Bits[ro] = %v, want %v", decoded.Bits["ro"], want)
	}
}

func TestDecodeShotsRepeatedOutcomes(t *testing.T) {
	regs := []RegisterDef{{Name: "ro", Length: 2, Kind: BitRegister, Output: true}}

	outcomes := make([]string, 10)
	for i := range outcomes {
		outcomes[i] = "00"
	}
	decoded, err := decodeShots(outcomes, regs)
	if err != nil {
		t.Fatalf("decodeShots: %v", err)
	}
	shots := decoded.Bits["ro"]
	if len(shots) != 10 {
		t.Fatalf("expected 10 vectors, got %d", len(shots))
	}
	for i, shot := range shots {
		if !reflect.DeepEqual(shot, []bool{false, false}) {
			t.Errorf("shot %d = %v, want [false false]", i, shot)
		}
	}
}

func TestDecodeShotsConcatenatedRegisters(t *testing.T) {
	// "ro" declared first, "anc" second: a fixed-width outcome carries "anc"
	// at the leftmost end.
	regs := []RegisterDef{
		{Name: "ro", Length: 2, Kind: BitRegister, Output: true},
		{Name: "anc", Length: 1, Kind: BitRegister, Output: true},
	}

	decoded, err := decodeShots([]string{"110"}, regs)
	if err != nil {
		t.Fatalf("decodeShots: %v", err)
	}
	if got := decoded.Bits["anc"]; !reflect.DeepEqual(got, [][]bool{{true}}) {
		t.Errorf("Bits[anc] = %v, want [[true]]", got)
	}
	if got := decoded.Bits["ro"]; !reflect.DeepEqual(got, [][]bool{{true, false}}) {
		t.Errorf("Bits[ro] = %v, want [[true false]]", got)
	}
}

func TestDecodeShotsSeparatedRegisters(t *testing.T) {
	// Space-separated outcomes carry groups in reverse declaration order too.
	regs := []RegisterDef{
		{Name: "ro", Length: 2, Kind: BitRegister, Output: true},
		{Name: "anc", Length: 1, Kind: BitRegister, Output: true},
	}

	decoded, err := decodeShots([]string{"1 10"}, regs)
	if err != nil {
		t.Fatalf("decodeShots: %v", err)
	}
	if got := decoded.Bits["anc"]; !reflect.DeepEqual(got, [][]bool{{true}}) {
		t.Errorf("Bits[anc] = %v, want [[true]]", got)
	}
	if got := decoded.Bits["ro"]; !reflect.DeepEqual(got, [][]bool{{true, false}}) {
		t.Errorf("Bits[ro] = %v, want [[true false]]", got)
	}
}

func TestDecodeShotsShapeMismatch(t *testing.T) {
	regs := []RegisterDef{{Name: "ro", Length: 2, Kind: BitRegister, Output: true}}

	cases := []string{"0", "011", "0 1"}
	for _, outcome := range cases {
		_, err := decodeShots([]string{outcome}, regs)
		if !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("decodeShots(%q): expected ErrShapeMismatch, got %v", outcome, err)
		}
	}
}

func TestDecodeCounts(t *testing.T) {
	regs := []RegisterDef{{Name: "ro", Length: 2, Kind: BitRegister, Output: true}}
	counts := map[string]int{"00": 2, "11": 3}

	decoded, err := decodeCounts(counts, regs)
	if err != nil {
		t.Fatalf("decodeCounts: %v", err)
	}

	// Keys visit in sorted order and each repeats per its count.
	want := [][]bool{
		{false, false}, {false, false},
		{true, true}, {true, true}, {true, true},
	}
	if !reflect.DeepEqual(decoded.Bits["ro"], want) {
		t.Errorf("Bits[ro] = %v, want %v", decoded.Bits["ro"], want)
	}
}

func TestDecodeSkipsNonOutputRegisters(t *testing.T) {
	// A non-output register still occupies outcome width but produces no
	// result entry.
	regs := []RegisterDef{
		{Name: "ro", Length: 1, Kind: BitRegister, Output: true},
		{Name: "scratch", Length: 1, Kind: BitRegister},
	}

	decoded, err := decodeShots([]string{"01"}, regs)
	if err != nil {
		t.Fatalf("decodeShots: %v", err)
	}
	if _, ok := decoded.Bits["scratch"]; ok {
		t.Errorf("non-output register leaked into results: %v", decoded.Bits)
	}
	if got := decoded.Bits["ro"]; !reflect.DeepEqual(got, [][]bool{{true}}) {
		t.Errorf("Bits[ro] = %v, want [[true]]", got)
	}
}

func TestDecodedRegisterKinds(t *testing.T) {
	regs := []RegisterDef{
		{Name: "ro", Length: 1, Kind: BitRegister, Output: true},
		{Name: "f", Length: 2, Kind: FloatRegister, Output: true},
		{Name: "psi", Length: 4, Kind: ComplexRegister, Output: true},
	}
	dr := newDecodedRegisters(regs)
	if _, ok := dr.Bits["ro"]; !ok {
		t.Error("bit register missing from Bits")
	}
	if _, ok := dr.Floats["f"]; !ok {
		t.Error("float register missing from Floats")
	}
	if _, ok := dr.Complexes["psi"]; !ok {
		t.Error("complex register missing from Complexes")
	}
}
