package main

import "math"

// demoCircuit is a named starting circuit for the workbench.
type demoCircuit struct {
	name    string
	circuit Circuit
}

// yRotationUnitary builds the generic single-qubit gate corresponding to a
// y-rotation by theta: alpha = cos(theta/2), beta = sin(theta/2).
func yRotationUnitary(qubit int, theta float64) SingleQubitGate {
	return SingleQubitGate{
		Qubit:  qubit,
		AlphaR: math.Cos(theta / 2),
		BetaR:  math.Sin(theta / 2),
	}
}

func demoCircuits() []demoCircuit {
	return []demoCircuit{
		{
			name: "Bell pair",
			circuit: Circuit{
				DefineRegister{Name: "ro", Length: 2, Kind: BitRegister, Output: true},
				Hadamard{Qubit: 0},
				CNOT{Control: 0, Target: 1},
				RepeatedMeasurement{Readout: "ro", Shots: 100},
			},
		},
		{
			name: "GHZ, per-qubit readout",
			circuit: Circuit{
				DefineRegister{Name: "ro", Length: 3, Kind: BitRegister, Output: true},
				Hadamard{Qubit: 0},
				CNOT{Control: 0, Target: 1},
				CNOT{Control: 1, Target: 2},
				MeasureQubit{Qubit: 0, Readout: "ro", ReadoutIndex: 0},
				MeasureQubit{Qubit: 1, Readout: "ro", ReadoutIndex: 1},
				MeasureQubit{Qubit: 2, Readout: "ro", ReadoutIndex: 2},
				SetNumberOfMeasurements{Readout: "ro", Shots: 200},
			},
		},
		{
			name: "Parametrized sweep",
			circuit: Circuit{
				DefineRegister{Name: "ro", Length: 2, Kind: BitRegister, Output: true},
				RotateX{Qubit: 0, Theta: Var(math.Pi / 2)},
				RotateY{Qubit: 1, Theta: Var(math.Pi / 4)},
				RotateZ{Qubit: 0, Theta: Num(math.Pi)},
				CNOT{Control: 0, Target: 1},
				RepeatedMeasurement{Readout: "ro", Shots: 100},
			},
		},
		{
			name: "Generic unitary",
			circuit: Circuit{
				DefineRegister{Name: "ro", Length: 1, Kind: BitRegister, Output: true},
				yRotationUnitary(0, math.Pi/3),
				MeasureQubit{Qubit: 0, Readout: "ro", ReadoutIndex: 0},
				SetNumberOfMeasurements{Readout: "ro", Shots: 100},
			},
		},
		{
			name: "State vector",
			circuit: Circuit{
				DefineRegister{Name: "psi", Length: 4, Kind: ComplexRegister, Output: true},
				Hadamard{Qubit: 0},
				ControlledPauliZ{Control: 0, Target: 1},
				GetStateVector{Readout: "psi"},
			},
		},
	}
}
