package main

import (
	"fmt"
	"os"
	"strings"
)

// Backend assembles complete wire-format text for circuits. It owns the
// qubit register name, the optional custom qubit naming and the symbol
// cache used for symbolic translation.
type Backend struct {
	numQubits  int
	quregName  string
	qubitNames map[int]string
	symbols    *SymbolCache
}

// NewBackend returns a backend for numQubits qubits using the default
// register name "q".
func NewBackend(numQubits int) *Backend {
	return &Backend{
		numQubits: numQubits,
		quregName: "q",
		symbols:   &SymbolCache{},
	}
}

// NewNamedBackend returns a backend with a custom qubit register name and an
// optional qubit index remapping. With a remapping, qubit i renders as
// "<quregName>[<qubitNames[i]>]"; the map must cover every qubit used.
func NewNamedBackend(numQubits int, quregName string, qubitNames map[int]int) *Backend {
	b := NewBackend(numQubits)
	if quregName != "" {
		b.quregName = quregName
	}
	if qubitNames != nil || b.quregName != "q" {
		b.qubitNames = make(map[int]string, numQubits)
		for i := 0; i < numQubits; i++ {
			idx := i
			if qubitNames != nil {
				if mapped, ok := qubitNames[i]; ok {
					idx = mapped
				}
			}
			b.qubitNames[i] = fmt.Sprintf("%s[%d]", b.quregName, idx)
		}
	}
	return b
}

// Symbols exposes the placeholder table populated by symbolic translation.
func (b *Backend) Symbols() *SymbolCache { return b.symbols }

// TranslateCircuit classifies the circuit and renders the full wire-format
// text: header, include directive, the qubit register declaration, the
// classical register declarations in declaration order, then one terminated
// line per emitted instruction. Register declarations are hoisted ahead of
// the gate lines regardless of where they sit in the instruction sequence.
func (b *Backend) TranslateCircuit(c Circuit, symbolic bool) (string, *SimMetadata, error) {
	emittable, md, err := classifyCircuit(c)
	if err != nil {
		return "", nil, err
	}

	numQubits := b.numQubits
	if n := c.NumQubits(); n > numQubits {
		numQubits = n
	}

	var syms *SymbolCache
	if symbolic {
		syms = b.symbols
	}

	// Definitions are emitted as declarations up front; everything else
	// keeps instruction order.
	body := make(Circuit, 0, len(emittable))
	for _, op := range emittable {
		if _, ok := op.(DefineRegister); ok {
			continue
		}
		body = append(body, op)
	}
	lines, err := callCircuit(body, numQubits, b.qubitNames, syms)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg %s[%d];\n", b.quregName, numQubits)
	for _, r := range md.Registers {
		fmt.Fprintf(&sb, "creg %s[%d];\n", r.Name, r.Length)
	}
	sb.WriteString("\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString(";\n")
	}
	return sb.String(), md, nil
}

// SaveCircuit writes the translated circuit to filename. An existing file is
// only replaced when overwrite is set.
func (b *Backend) SaveCircuit(c Circuit, filename string, overwrite, symbolic bool) error {
	text, _, err := b.TranslateCircuit(c, symbolic)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(filename); err == nil {
			return fmt.Errorf("file %s already exists, not overwriting", filename)
		}
	}
	return os.WriteFile(filename, []byte(text), 0644)
}
