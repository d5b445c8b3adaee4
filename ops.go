package main

// Operation is one element of a circuit: a gate, a measurement, a classical
// register definition or a pragma. The set of variants is closed; translation
// dispatches over it with an exhaustive type switch.
type Operation interface {
	isOperation()
}

// Circuit is an ordered sequence of operations. It is never mutated by the
// translation path; classification produces a new emittable sequence.
type Circuit []Operation

// NumQubits returns the number of qubits the circuit touches (highest operand
// index plus one), with a minimum of one.
func (c Circuit) NumQubits() int {
	maxQubit := 0
	for _, op := range c {
		for _, q := range operandQubits(op) {
			maxQubit = max(maxQubit, q)
		}
	}
	return maxQubit + 1
}

// operandQubits lists the qubit operands of an operation, in slot order.
func operandQubits(op Operation) []int {
	switch g := op.(type) {
	case RotateX:
		return []int{g.Qubit}
	case RotateY:
		return []int{g.Qubit}
	case RotateZ:
		return []int{g.Qubit}
	case Hadamard:
		return []int{g.Qubit}
	case PauliX:
		return []int{g.Qubit}
	case PauliY:
		return []int{g.Qubit}
	case PauliZ:
		return []int{g.Qubit}
	case SGate:
		return []int{g.Qubit}
	case TGate:
		return []int{g.Qubit}
	case SqrtPauliX:
		return []int{g.Qubit}
	case SingleQubitGate:
		return []int{g.Qubit}
	case CNOT:
		return []int{g.Control, g.Target}
	case ControlledPauliY:
		return []int{g.Control, g.Target}
	case ControlledPauliZ:
		return []int{g.Control, g.Target}
	case MolmerSorensenXX:
		return []int{g.Control, g.Target}
	case MeasureQubit:
		return []int{g.Qubit}
	case RepeatedMeasurement:
		qubits := make([]int, 0, len(g.QubitMapping))
		for q := range g.QubitMapping {
			qubits = append(qubits, q, g.QubitMapping[q])
		}
		return qubits
	default:
		return nil
	}
}

// Param is a numeric gate parameter. A parametrized value (built with Var) is
// eligible for placeholder substitution during symbolic translation; a plain
// literal (built with Num) always renders as its number.
type Param struct {
	value    float64
	variable bool
}

// Num returns a literal parameter value.
func Num(v float64) Param { return Param{value: v} }

// Var returns a parametrized value whose current number may later be swapped
// for another without re-deriving which instructions carry it.
func Var(v float64) Param { return Param{value: v, variable: true} }

func (p Param) Float() float64 { return p.value }
func (p Param) Variable() bool { return p.variable }

// ──────────────────────────── Gates ────────────────────────────

// RotateX rotates a single qubit around the x-axis by Theta.
type RotateX struct {
	Qubit int
	Theta Param
}

// RotateY rotates a single qubit around the y-axis by Theta.
type RotateY struct {
	Qubit int
	Theta Param
}

// RotateZ rotates a single qubit around the z-axis by Theta.
type RotateZ struct {
	Qubit int
	Theta Param
}

type Hadamard struct{ Qubit int }
type PauliX struct{ Qubit int }
type PauliY struct{ Qubit int }
type PauliZ struct{ Qubit int }
type SGate struct{ Qubit int }
type TGate struct{ Qubit int }

// SqrtPauliX is the square root of X, emitted as rx(pi/2).
type SqrtPauliX struct{ Qubit int }

// SingleQubitGate is a generic single-qubit unitary given by the complex
// pair (alpha, beta) of its first column. The unit-norm constraint
// |alpha|^2+|beta|^2 = 1 is the caller's responsibility.
type SingleQubitGate struct {
	Qubit  int
	AlphaR float64
	AlphaI float64
	BetaR  float64
	BetaI  float64
}

type CNOT struct{ Control, Target int }
type ControlledPauliY struct{ Control, Target int }
type ControlledPauliZ struct{ Control, Target int }

// MolmerSorensenXX is the fixed-angle XX interaction, emitted as rxx(pi/2).
type MolmerSorensenXX struct{ Control, Target int }

// ──────────────────────────── Measurements ────────────────────────────

// MeasureQubit measures one qubit into bit ReadoutIndex of register Readout.
type MeasureQubit struct {
	Qubit        int
	Readout      string
	ReadoutIndex int
}

// RepeatedMeasurement measures all qubits into register Readout, repeated for
// Shots shots. QubitMapping optionally maps bit index to measured qubit;
// when nil, bit i reads qubit i.
type RepeatedMeasurement struct {
	Readout      string
	Shots        int
	QubitMapping map[int]int
}

// ──────────────────────────── Definitions ────────────────────────────

// RegisterKind is the element kind of a classical register.
type RegisterKind int

const (
	BitRegister RegisterKind = iota
	FloatRegister
	ComplexRegister
)

func (k RegisterKind) String() string {
	switch k {
	case BitRegister:
		return "bit"
	case FloatRegister:
		return "float"
	default:
		return "complex"
	}
}

// DefineRegister declares a classical register of Length elements. Output
// registers are returned to the caller after decoding.
type DefineRegister struct {
	Name   string
	Length int
	Kind   RegisterKind
	Output bool
}

// ──────────────────────────── Pragmas ────────────────────────────

// SetNumberOfMeasurements requests Shots repetitions for register Readout.
// Metadata only: it has no wire equivalent.
type SetNumberOfMeasurements struct {
	Readout string
	Shots   int
}

// GetStateVector requests the full state vector as continuous output.
type GetStateVector struct{ Readout string }

// GetDensityMatrix requests the density matrix as continuous output.
type GetDensityMatrix struct{ Readout string }

// SetStateVector replaces the initial state with a dense amplitude vector.
// Captured as metadata for the executing backend, never emitted.
type SetStateVector struct{ Amplitudes []complex128 }

func (RotateX) isOperation()                 {}
func (RotateY) isOperation()                 {}
func (RotateZ) isOperation()                 {}
func (Hadamard) isOperation()                {}
func (PauliX) isOperation()                  {}
func (PauliY) isOperation()                  {}
func (PauliZ) isOperation()                  {}
func (SGate) isOperation()                   {}
func (TGate) isOperation()                   {}
func (SqrtPauliX) isOperation()              {}
func (SingleQubitGate) isOperation()         {}
func (CNOT) isOperation()                    {}
func (ControlledPauliY) isOperation()        {}
func (ControlledPauliZ) isOperation()        {}
func (MolmerSorensenXX) isOperation()        {}
func (MeasureQubit) isOperation()            {}
func (RepeatedMeasurement) isOperation()     {}
func (DefineRegister) isOperation()          {}
func (SetNumberOfMeasurements) isOperation() {}
func (GetStateVector) isOperation()          {}
func (GetDensityMatrix) isOperation()        {}
func (SetStateVector) isOperation()          {}
