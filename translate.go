package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedOperation signals an instruction-set incompatibility: an
	// operation with no wire-format rule reached the translator. Never
	// skipped silently, since skipping would corrupt positional register
	// state downstream.
	ErrUnsupportedOperation = errors.New("operation not supported by the qasm wire format")

	// ErrUnknownQubit signals a qubit index absent from a supplied name map.
	ErrUnknownQubit = errors.New("qubit missing from name map")
)

// qubitName resolves a qubit index to its wire identifier. A nil map selects
// the default scheme "q[<index>]"; a supplied map must cover the index.
func qubitName(index int, names map[int]string) (string, error) {
	if names == nil {
		return fmt.Sprintf("q[%d]", index), nil
	}
	name, ok := names[index]
	if !ok {
		return "", fmt.Errorf("%w: index %d", ErrUnknownQubit, index)
	}
	return name, nil
}

// formatWireFloat renders a float with full double precision for the wire
// format. The rendering is sign-preserving and always carries a decimal
// point or exponent, so 0.0 stays "0.0" rather than collapsing to "0".
func formatWireFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") || math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	return s + ".0"
}

// renderParam resolves one parameter to wire text. With a symbol cache the
// parametrized values are staged and replaced by placeholder tokens;
// otherwise the literal number is used.
func renderParam(p Param, syms *SymbolCache) string {
	if syms != nil && p.Variable() {
		return syms.Stage(p.Float())
	}
	return formatWireFloat(p.Float())
}

// formatGate renders one fixed-layout instruction line:
// "<mnemonic>(<param>,<param>) <qubit>,<qubit>". The parenthesized group is
// omitted entirely for parameterless gates.
func formatGate(mnemonic string, params []string, names map[int]string, qubits ...int) (string, error) {
	resolved := make([]string, len(qubits))
	for i, q := range qubits {
		name, err := qubitName(q, names)
		if err != nil {
			return "", err
		}
		resolved[i] = name
	}
	if len(params) == 0 {
		return mnemonic + " " + strings.Join(resolved, ","), nil
	}
	return mnemonic + "(" + strings.Join(params, ",") + ") " + strings.Join(resolved, ","), nil
}

// u3Angles computes the Euler angles of a generic single-qubit unitary from
// the complex pair (alpha, beta) of its first column:
//
//	theta  = 2*acos(|alpha|)
//	phi    = -arg(alpha) + arg(beta)
//	lambda = -arg(alpha) - arg(beta)
//
// |alpha| is clamped to [-1,1] before acos so floating-point overshoot of
// the unit-norm constraint cannot produce a domain error.
func u3Angles(alphaR, alphaI, betaR, betaI float64) (theta, phi, lambda float64) {
	absAlpha := math.Hypot(alphaR, alphaI)
	theta = 2 * math.Acos(math.Min(1, math.Max(-1, absAlpha)))
	angleAlpha := -math.Atan2(alphaI, alphaR)
	angleBeta := math.Atan2(betaI, betaR)
	return theta, angleAlpha + angleBeta, angleAlpha - angleBeta
}

// callCircuit translates an emittable circuit instruction by instruction,
// preserving input order. Lines come back without statement separators.
func callCircuit(c Circuit, numQubits int, names map[int]string, syms *SymbolCache) ([]string, error) {
	var lines []string
	for _, op := range c {
		opLines, err := callOperation(op, numQubits, names, syms)
		if err != nil {
			return nil, err
		}
		lines = append(lines, opLines...)
	}
	return lines, nil
}

// callOperation translates one operation into wire-format lines. Most
// operations produce exactly one line; a repeated measurement expands into
// one line per qubit/bit pair. Metadata-only pragmas are the classifier's
// to consume: one reaching this table is an unsupported operation.
func callOperation(op Operation, numQubits int, names map[int]string, syms *SymbolCache) ([]string, error) {
	single := func(line string, err error) ([]string, error) {
		if err != nil {
			return nil, err
		}
		return []string{line}, nil
	}

	switch g := op.(type) {
	case RotateX:
		return single(formatGate("rx", []string{renderParam(g.Theta, syms)}, names, g.Qubit))
	case RotateY:
		return single(formatGate("ry", []string{renderParam(g.Theta, syms)}, names, g.Qubit))
	case RotateZ:
		return single(formatGate("rz", []string{renderParam(g.Theta, syms)}, names, g.Qubit))
	case Hadamard:
		return single(formatGate("h", nil, names, g.Qubit))
	case PauliX:
		return single(formatGate("x", nil, names, g.Qubit))
	case PauliY:
		return single(formatGate("y", nil, names, g.Qubit))
	case PauliZ:
		return single(formatGate("z", nil, names, g.Qubit))
	case SGate:
		return single(formatGate("s", nil, names, g.Qubit))
	case TGate:
		return single(formatGate("t", nil, names, g.Qubit))
	case SqrtPauliX:
		return single(formatGate("rx", []string{"pi/2"}, names, g.Qubit))
	case CNOT:
		return single(formatGate("cx", nil, names, g.Control, g.Target))
	case ControlledPauliY:
		return single(formatGate("cy", nil, names, g.Control, g.Target))
	case ControlledPauliZ:
		return single(formatGate("cz", nil, names, g.Control, g.Target))
	case MolmerSorensenXX:
		return single(formatGate("rxx", []string{"pi/2"}, names, g.Control, g.Target))
	case SingleQubitGate:
		theta, phi, lambda := u3Angles(g.AlphaR, g.AlphaI, g.BetaR, g.BetaI)
		params := []string{
			formatWireFloat(theta),
			formatWireFloat(phi),
			formatWireFloat(lambda),
		}
		return single(formatGate("u3", params, names, g.Qubit))
	case MeasureQubit:
		qubit, err := qubitName(g.Qubit, names)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("measure %s -> %s[%d]", qubit, g.Readout, g.ReadoutIndex)}, nil
	case RepeatedMeasurement:
		lines := make([]string, 0, numQubits)
		for bit := 0; bit < numQubits; bit++ {
			measured := bit
			if g.QubitMapping != nil {
				if mapped, ok := g.QubitMapping[bit]; ok {
					measured = mapped
				}
			}
			qubit, err := qubitName(measured, names)
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("measure %s -> %s[%d]", qubit, g.Readout, bit))
		}
		return lines, nil
	case DefineRegister:
		return []string{fmt.Sprintf("creg %s[%d]", g.Name, g.Length)}, nil
	case SetNumberOfMeasurements:
		return nil, fmt.Errorf("%w: SetNumberOfMeasurements is metadata only", ErrUnsupportedOperation)
	case GetStateVector:
		return nil, fmt.Errorf("%w: GetStateVector is metadata only", ErrUnsupportedOperation)
	case GetDensityMatrix:
		return nil, fmt.Errorf("%w: GetDensityMatrix is metadata only", ErrUnsupportedOperation)
	case SetStateVector:
		return nil, fmt.Errorf("%w: SetStateVector is metadata only", ErrUnsupportedOperation)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedOperation, op)
	}
}
