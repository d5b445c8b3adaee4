package main

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCallOperationGateLines(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{Hadamard{Qubit: 0}, "h q[0]"},
		{PauliX{Qubit: 1}, "x q[1]"},
		{PauliY{Qubit: 2}, "y q[2]"},
		{PauliZ{Qubit: 0}, "z q[0]"},
		{SGate{Qubit: 3}, "s q[3]"},
		{TGate{Qubit: 0}, "t q[0]"},
		{SqrtPauliX{Qubit: 1}, "rx(pi/2) q[1]"},
		{RotateX{Qubit: 0, Theta: Num(1.5)}, "rx(1.5) q[0]"},
		{RotateY{Qubit: 1, Theta: Num(0)}, "ry(0.0) q[1]"},
		{RotateZ{Qubit: 0, Theta: Num(-2)}, "rz(-2.0) q[0]"},
		{CNOT{Control: 0, Target: 1}, "cx q[0],q[1]"},
		{ControlledPauliY{Control: 1, Target: 0}, "cy q[1],q[0]"},
		{ControlledPauliZ{Control: 0, Target: 2}, "cz q[0],q[2]"},
		{MolmerSorensenXX{Control: 0, Target: 1}, "rxx(pi/2) q[0],q[1]"},
		{MeasureQubit{Qubit: 1, Readout: "ro", ReadoutIndex: 0}, "measure q[1] -> ro[0]"},
		{DefineRegister{Name: "ro", Length: 4, Kind: BitRegister}, "creg ro[4]"},
	}

	for _, tt := range tests {
		lines, err := callOperation(tt.op, 3, nil, nil)
		if err != nil {
			t.Errorf("callOperation(%T): %v", tt.op, err)
			continue
		}
		if len(lines) != 1 || lines[0] != tt.want {
			t.Errorf("callOperation(%T) = %v, want [%q]", tt.op, lines, tt.want)
		}
	}
}

func TestCallOperationNamedQubits(t *testing.T) {
	names := map[int]string{0: "qr[3]", 1: "qr[7]"}

	lines, err := callOperation(CNOT{Control: 0, Target: 1}, 2, names, nil)
	if err != nil {
		t.Fatalf("callOperation: %v", err)
	}
	if lines[0] != "cx qr[3],qr[7]" {
		t.Errorf("got %q, want %q", lines[0], "cx qr[3],qr[7]")
	}

	// An index absent from a supplied map is an error, not a fallback.
	_, err = callOperation(Hadamard{Qubit: 5}, 6, names, nil)
	if !errors.Is(err, ErrUnknownQubit) {
		t.Errorf("expected ErrUnknownQubit for unmapped index, got %v", err)
	}
}

func TestCallOperationPragmasUnsupported(t *testing.T) {
	pragmas := []Operation{
		SetNumberOfMeasurements{Readout: "ro", Shots: 10},
		GetStateVector{Readout: "psi"},
		GetDensityMatrix{Readout: "rho"},
		SetStateVector{Amplitudes: []complex128{1, 0}},
	}
	for _, op := range pragmas {
		_, err := callOperation(op, 1, nil, nil)
		if !errors.Is(err, ErrUnsupportedOperation) {
			t.Errorf("callOperation(%T): expected ErrUnsupportedOperation, got %v", op, err)
		}
	}
}

func TestRepeatedMeasurementExpansion(t *testing.T) {
	op := RepeatedMeasurement{Readout: "ro", Shots: 100}
	lines, err := callOperation(op, 3, nil, nil)
	if err != nil {
		t.Fatalf("callOperation: %v", err)
	}
	want := []string{
		"measure q[0] -> ro[0]",
		"measure q[1] -> ro[1]",
		"measure q[2] -> ro[2]",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRepeatedMeasurementMapping(t *testing.T) {
	// Bit 0 reads qubit 2 and bit 2 reads qubit 0; bit 1 falls back to
	// qubit 1.
	op := RepeatedMeasurement{
		Readout:      "ro",
		Shots:        10,
		QubitMapping: map[int]int{0: 2, 2: 0},
	}
	lines, err := callOperation(op, 3, nil, nil)
	if err != nil {
		t.Fatalf("callOperation: %v", err)
	}
	want := []string{
		"measure q[2] -> ro[0]",
		"measure q[1] -> ro[1]",
		"measure q[0] -> ro[2]",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFormatWireFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{2, "2.0"},
		{-2, "-2.0"},
		{1.5, "1.5"},
		{math.Pi, "3.141592653589793"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
	}
	for _, tt := range tests {
		if got := formatWireFloat(tt.input); got != tt.want {
			t.Errorf("formatWireFloat(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestU3Identity(t *testing.T) {
	// alpha = 1, beta = 0 is the identity. The sign of each zero angle is
	// pinned down by the angle formulas.
	lines, err := callOperation(SingleQubitGate{Qubit: 0, AlphaR: 1}, 1, nil, nil)
	if err != nil {
		t.Fatalf("callOperation: %v", err)
	}
	if lines[0] != "u3(0.0,0.0,-0.0) q[0]" {
		t.Errorf("got %q, want %q", lines[0], "u3(0.0,0.0,-0.0) q[0]")
	}
}

func TestU3Angles(t *testing.T) {
	tests := []struct {
		name                           string
		alphaR, alphaI, betaR, betaI   float64
		wantTheta, wantPhi, wantLambda float64
	}{
		{"identity", 1, 0, 0, 0, 0, 0, 0},
		{"pauli-x-like", 0, 0, 1, 0, math.Pi, 0, 0},
		{"y-rotation", math.Cos(math.Pi / 6), 0, math.Sin(math.Pi / 6), 0, math.Pi / 3, 0, 0},
		{"phased", math.Sqrt2 / 2, 0, 0, math.Sqrt2 / 2, math.Pi / 2, math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		theta, phi, lambda := u3Angles(tt.alphaR, tt.alphaI, tt.betaR, tt.betaI)
		if math.Abs(theta-tt.wantTheta) > 1e-10 {
			t.Errorf("%s: theta = %g, want %g", tt.name, theta, tt.wantTheta)
		}
		if math.Abs(phi-tt.wantPhi) > 1e-10 {
			t.Errorf("%s: phi = %g, want %g", tt.name, phi, tt.wantPhi)
		}
		if math.Abs(lambda-tt.wantLambda) > 1e-10 {
			t.Errorf("%s: lambda = %g, want %g", tt.name, lambda, tt.wantLambda)
		}
	}
}

func TestU3ThetaInRange(t *testing.T) {
	// theta must stay in [0, pi] even when |alpha| overshoots 1 through
	// floating-point error.
	cases := [][4]float64{
		{1.0000000000000002, 0, 0, 0},
		{0.6, 0, 0.8, 0},
		{0, 0.3, 0.9539392014169456, 0},
		{-0.5, 0.5, 0.5, -0.5},
	}
	for _, c := range cases {
		theta, _, _ := u3Angles(c[0], c[1], c[2], c[3])
		if theta < 0 || theta > math.Pi {
			t.Errorf("u3Angles(%v): theta %g out of [0, pi]", c, theta)
		}
	}
}

func TestSymbolicRenderParam(t *testing.T) {
	syms := &SymbolCache{}

	// Parametrized values stage a token.
	tok := renderParam(Var(math.Pi/2), syms)
	if !strings.HasPrefix(tok, symbolPrefix) {
		t.Fatalf("expected placeholder token, got %q", tok)
	}
	if v, ok := syms.Resolve(tok); !ok || math.Abs(v-math.Pi/2) > 1e-15 {
		t.Errorf("Resolve(%q) = %g, %v", tok, v, ok)
	}

	// Literals render as numbers even with a cache present.
	if got := renderParam(Num(1.5), syms); got != "1.5" {
		t.Errorf("literal rendered as %q, want %q", got, "1.5")
	}

	// Without a cache, parametrized values fall back to their number.
	if got := renderParam(Var(1.5), nil); got != "1.5" {
		t.Errorf("non-symbolic rendering gave %q, want %q", got, "1.5")
	}
}

func TestCallCircuitPreservesOrder(t *testing.T) {
	c := Circuit{
		Hadamard{Qubit: 0},
		CNOT{Control: 0, Target: 1},
		RotateZ{Qubit: 1, Theta: Num(math.Pi)},
	}
	lines, err := callCircuit(c, 2, nil, nil)
	if err != nil {
		t.Fatalf("callCircuit: %v", err)
	}
	want := []string{"h q[0]", "cx q[0],q[1]", "rz(3.141592653589793) q[1]"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}
