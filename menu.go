package main

import (
	"fmt"
	"strings"
)

// menuEntry is a single operation choice in the picker. The build function
// assembles the operation from the chosen qubit, target and parameter.
type menuEntry struct {
	name        string
	symbol      string
	needsQubit  bool
	needsTarget bool
	needsParam  bool
	paramHint   string
	build       func(qubit, target int, param Param, numQubits int) Operation
}

// menuCategory groups related entries under a tab.
type menuCategory struct {
	name    string
	entries []menuEntry
}

// opMenu defines the operation picker categories and entries.
var opMenu = []menuCategory{
	{
		name: "Single Qubit",
		entries: []menuEntry{
			{name: "Hadamard", symbol: "H", needsQubit: true, build: func(q, _ int, _ Param, _ int) Operation { return Hadamard{Qubit: q} }},
			{name: "Pauli-X", symbol: "X", needsQubit: true, build: func(q, _ int, _ Param, _ int) Operation { return PauliX{Qubit: q} }},
			{name: "Pauli-Y", symbol: "Y", needsQubit: true, build: func(q, _ int, _ Param, _ int) Operation { return PauliY{Qubit: q} }},
			{name: "Pauli-Z", symbol: "Z", needsQubit: true, build: func(q, _ int, _ Param, _ int) Operation { return PauliZ{Qubit: q} }},
			{name: "Phase (S)", symbol: "S", needsQubit: true, build: func(q, _ int, _ Param, _ int) Operation { return SGate{Qubit: q} }},
			{name: "T Gate", symbol: "T", needsQubit: true, build: func(q, _ int, _ Param, _ int) Operation { return TGate{Qubit: q} }},
			{name: "√X", symbol: "√X", needsQubit: true, build: func(q, _ int, _ Param, _ int) Operation { return SqrtPauliX{Qubit: q} }},
		},
	},
	{
		name: "Rotation",
		entries: []menuEntry{
			{name: "Rotate X", symbol: "RX", needsQubit: true, needsParam: true, paramHint: "pi/2 or $pi/2",
				build: func(q, _ int, p Param, _ int) Operation { return RotateX{Qubit: q, Theta: p} }},
			{name: "Rotate Y", symbol: "RY", needsQubit: true, needsParam: true, paramHint: "pi/2 or $pi/2",
				build: func(q, _ int, p Param, _ int) Operation { return RotateY{Qubit: q, Theta: p} }},
			{name: "Rotate Z", symbol: "RZ", needsQubit: true, needsParam: true, paramHint: "pi/2 or $pi/2",
				build: func(q, _ int, p Param, _ int) Operation { return RotateZ{Qubit: q, Theta: p} }},
			{name: "Generic (θ via u3)", symbol: "U", needsQubit: true, needsParam: true, paramHint: "theta, decomposed on emit",
				build: func(q, _ int, p Param, _ int) Operation {
					// Treat the entered value as a rotation angle around y:
					// alpha = cos(theta/2), beta = sin(theta/2).
					return yRotationUnitary(q, p.Float())
				}},
		},
	},
	{
		name: "Two Qubit",
		entries: []menuEntry{
			{name: "CNOT", symbol: "●─⊕", needsQubit: true, needsTarget: true,
				build: func(q, t int, _ Param, _ int) Operation { return CNOT{Control: q, Target: t} }},
			{name: "Controlled-Y", symbol: "●─Y", needsQubit: true, needsTarget: true,
				build: func(q, t int, _ Param, _ int) Operation { return ControlledPauliY{Control: q, Target: t} }},
			{name: "Controlled-Z", symbol: "●─●", needsQubit: true, needsTarget: true,
				build: func(q, t int, _ Param, _ int) Operation { return ControlledPauliZ{Control: q, Target: t} }},
			{name: "Molmer-Sorensen XX", symbol: "XX", needsQubit: true, needsTarget: true,
				build: func(q, t int, _ Param, _ int) Operation { return MolmerSorensenXX{Control: q, Target: t} }},
		},
	},
	{
		name: "Measurement",
		entries: []menuEntry{
			{name: "Measure qubit", symbol: "M", needsQubit: true,
				build: func(q, _ int, _ Param, _ int) Operation {
					return MeasureQubit{Qubit: q, Readout: "ro", ReadoutIndex: q}
				}},
			{name: "Repeated (100 shots)", symbol: "M*",
				build: func(_, _ int, _ Param, _ int) Operation {
					return RepeatedMeasurement{Readout: "ro", Shots: 100}
				}},
		},
	},
	{
		name: "Registers & Pragmas",
		entries: []menuEntry{
			{name: "Bit register \"ro\"", symbol: "creg",
				build: func(_, _ int, _ Param, n int) Operation {
					return DefineRegister{Name: "ro", Length: n, Kind: BitRegister, Output: true}
				}},
			{name: "Complex register \"psi\"", symbol: "creg",
				build: func(_, _ int, _ Param, n int) Operation {
					return DefineRegister{Name: "psi", Length: 1 << n, Kind: ComplexRegister, Output: true}
				}},
			{name: "Shot count (100)", symbol: "#",
				build: func(_, _ int, _ Param, _ int) Operation {
					return SetNumberOfMeasurements{Readout: "ro", Shots: 100}
				}},
			{name: "Get state vector", symbol: "|ψ⟩",
				build: func(_, _ int, _ Param, _ int) Operation { return GetStateVector{Readout: "psi"} }},
			{name: "Get density matrix", symbol: "ρ",
				build: func(_, _ int, _ Param, _ int) Operation { return GetDensityMatrix{Readout: "psi"} }},
		},
	},
}

// renderMenu renders the floating operation-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Operation"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range opMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(pragmaStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(opMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 48)))
	sb.WriteString("\n")

	// Entries in the selected category
	cat := opMenu[m.menuCat]
	for i, entry := range cat.entries {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-22s", entry.name)))
			sb.WriteString(opStyle.Render(entry.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-22s", entry.name)))
			sb.WriteString(dimStyle.Render(entry.symbol))
		}
		if entry.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if entry.needsParam {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", entry.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
