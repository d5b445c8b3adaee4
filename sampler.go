package main

import (
	"math"
	"math/cmplx"
	"math/rand"
	"strings"
)

type Complex = complex128

// StateVector is the in-process stand-in for an external simulator backend.
// It executes emittable gates and samples raw outcome strings in the same
// wire convention the decoder consumes.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// ApplyOp applies one gate to the state. Measurements and register
// definitions carry no unitary and are ignored here; sampling handles the
// measurement metadata afterwards.
func (s *StateVector) ApplyOp(op Operation) {
	switch g := op.(type) {
	case Hadamard:
		s.applyH(g.Qubit)
	case PauliX:
		s.applyX(g.Qubit)
	case PauliY:
		s.applyY(g.Qubit)
	case PauliZ:
		s.applyZ(g.Qubit)
	case SGate:
		s.applyPhase(g.Qubit, 1i)
	case TGate:
		s.applyPhase(g.Qubit, cmplx.Exp(complex(0, math.Pi/4)))
	case SqrtPauliX:
		s.applyRX(g.Qubit, math.Pi/2)
	case RotateX:
		s.applyRX(g.Qubit, g.Theta.Float())
	case RotateY:
		s.applyRY(g.Qubit, g.Theta.Float())
	case RotateZ:
		s.applyRZ(g.Qubit, g.Theta.Float())
	case SingleQubitGate:
		s.applyUnitary(g.Qubit, complex(g.AlphaR, g.AlphaI), complex(g.BetaR, g.BetaI))
	case CNOT:
		s.applyCX(g.Control, g.Target)
	case ControlledPauliY:
		s.applyCY(g.Control, g.Target)
	case ControlledPauliZ:
		s.applyCZ(g.Control, g.Target)
	case MolmerSorensenXX:
		s.applyMSXX(g.Control, g.Target)
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyPhase(q int, factor Complex) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] + js*s.Amplitudes[j]
			newAmps[j] = js*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] - sn*s.Amplitudes[j]
			newAmps[j] = sn*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRZ(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

// applyUnitary applies the generic single-qubit gate whose first column is
// (alpha, beta): [[alpha, -conj(beta)], [beta, conj(alpha)]].
func (s *StateVector) applyUnitary(q int, alpha, beta Complex) {
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = alpha*s.Amplitudes[i] - cmplx.Conj(beta)*s.Amplitudes[j]
			newAmps[j] = beta*s.Amplitudes[i] + cmplx.Conj(alpha)*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCY(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

// applyMSXX applies the fixed-angle Molmer-Sorensen XX interaction,
// (I - i X⊗X)/sqrt(2).
func (s *StateVector) applyMSXX(control, target int) {
	n := len(s.Amplitudes)
	both := 1<<control | 1<<target
	factor := complex(1.0/math.Sqrt2, 0)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		j := i ^ both
		if i < j {
			newAmps[i] = factor * (s.Amplitudes[i] - 1i*s.Amplitudes[j])
			newAmps[j] = factor * (s.Amplitudes[j] - 1i*s.Amplitudes[i])
		}
	}
	s.Amplitudes = newAmps
}

// ──────────────────────────── Shot sampling ────────────────────────────

// runStateVector executes the gates of an emittable circuit, starting from
// the captured initial state when one was set.
func runStateVector(emittable Circuit, md *SimMetadata, numQubits int) *StateVector {
	state := NewStateVector(numQubits)
	if len(md.InitialState) == len(state.Amplitudes) {
		copy(state.Amplitudes, md.InitialState)
	}
	for _, op := range emittable {
		state.ApplyOp(op)
	}
	return state
}

// readoutAssignments maps register name and bit index to the measured qubit,
// from whichever measurement kind the classifier recorded.
func readoutAssignments(md *SimMetadata, numQubits int) map[string]map[int]int {
	assign := make(map[string]map[int]int)
	at := func(readout string) map[int]int {
		if assign[readout] == nil {
			assign[readout] = make(map[int]int)
		}
		return assign[readout]
	}
	for _, m := range md.Singles {
		at(m.Readout)[m.Bit] = m.Qubit
	}
	for _, m := range md.Repeated {
		for bit := 0; bit < numQubits; bit++ {
			qubit := bit
			if m.QubitMapping != nil {
				if mapped, ok := m.QubitMapping[bit]; ok {
					qubit = mapped
				}
			}
			at(m.Readout)[bit] = qubit
		}
	}
	return assign
}

// sampleOutcomes executes the circuit and renders one raw outcome string per
// shot. Registers concatenate with the last-declared one at the most
// significant end; within a register, character i carries bit i. Bits with
// no measured qubit read as '0'.
func sampleOutcomes(emittable Circuit, md *SimMetadata, numQubits int, seed int64) []string {
	state := runStateVector(emittable, md, numQubits)
	assign := readoutAssignments(md, numQubits)
	bitRegs := md.BitRegisters()
	shots := md.ShotCount()
	rng := rand.New(rand.NewSource(seed))

	outcomes := make([]string, 0, shots)
	for shot := 0; shot < shots; shot++ {
		basis := sampleBasis(state, rng)
		var sb strings.Builder
		for i := len(bitRegs) - 1; i >= 0; i-- {
			reg := bitRegs[i]
			for bit := 0; bit < reg.Length; bit++ {
				ch := byte('0')
				if qubit, ok := assign[reg.Name][bit]; ok && basis&(1<<qubit) != 0 {
					ch = '1'
				}
				sb.WriteByte(ch)
			}
		}
		outcomes = append(outcomes, sb.String())
	}
	return outcomes
}

// sampleBasis draws one basis state according to the amplitude probabilities.
func sampleBasis(state *StateVector, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, amp := range state.Amplitudes {
		acc += real(amp * cmplx.Conj(amp))
		if r < acc {
			return i
		}
	}
	return len(state.Amplitudes) - 1
}

// RunCircuit translates, executes and decodes a circuit end to end, with the
// in-process sampler standing in for the external execution backend.
func (b *Backend) RunCircuit(c Circuit, seed int64) (DecodedRegisters, *SimMetadata, error) {
	emittable, md, err := classifyCircuit(c)
	if err != nil {
		return DecodedRegisters{}, nil, err
	}
	numQubits := b.numQubits
	if n := c.NumQubits(); n > numQubits {
		numQubits = n
	}

	outcomes := sampleOutcomes(emittable, md, numQubits, seed)
	decoded, err := decodeShots(outcomes, md.Registers)
	if err != nil {
		return DecodedRegisters{}, nil, err
	}

	// Continuous outputs bypass the shot decoder: one entry holding the
	// full state vector or the flattened density matrix.
	if md.WantStateVector || md.WantDensityMatrix {
		state := runStateVector(emittable, md, numQubits)
		if md.WantStateVector {
			vec := make([]complex128, len(state.Amplitudes))
			copy(vec, state.Amplitudes)
			name := continuousReadout(c, md)
			decoded.Complexes[name] = append(decoded.Complexes[name], vec)
		} else {
			n := len(state.Amplitudes)
			matrix := make([]complex128, 0, n*n)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					matrix = append(matrix, state.Amplitudes[i]*cmplx.Conj(state.Amplitudes[j]))
				}
			}
			name := continuousReadout(c, md)
			decoded.Complexes[name] = append(decoded.Complexes[name], matrix)
		}
	}
	return decoded, md, nil
}

// continuousReadout finds the register the continuous-output pragma targets.
func continuousReadout(c Circuit, md *SimMetadata) string {
	for _, op := range c {
		switch g := op.(type) {
		case GetStateVector:
			return g.Readout
		case GetDensityMatrix:
			return g.Readout
		}
	}
	for _, r := range md.Registers {
		if r.Kind == ComplexRegister {
			return r.Name
		}
	}
	return "state"
}
