package main

import (
	"fmt"
	"sort"
	"strings"
)

// ──────────────────────────── Operation summaries ────────────────────────────

// opSummary returns a one-line display form of an instruction for the list
// panel. Gate lines mirror the wire mnemonics; register and pragma lines use
// their own shorthand since they never reach the wire body verbatim.
func opSummary(op Operation) string {
	switch o := op.(type) {
	case RotateX:
		return fmt.Sprintf("rx(%s) q[%d]", formatParamValue(o.Theta), o.Qubit)
	case RotateY:
		return fmt.Sprintf("ry(%s) q[%d]", formatParamValue(o.Theta), o.Qubit)
	case RotateZ:
		return fmt.Sprintf("rz(%s) q[%d]", formatParamValue(o.Theta), o.Qubit)
	case Hadamard:
		return fmt.Sprintf("h q[%d]", o.Qubit)
	case PauliX:
		return fmt.Sprintf("x q[%d]", o.Qubit)
	case PauliY:
		return fmt.Sprintf("y q[%d]", o.Qubit)
	case PauliZ:
		return fmt.Sprintf("z q[%d]", o.Qubit)
	case SGate:
		return fmt.Sprintf("s q[%d]", o.Qubit)
	case TGate:
		return fmt.Sprintf("t q[%d]", o.Qubit)
	case SqrtPauliX:
		return fmt.Sprintf("rx(pi/2) q[%d]", o.Qubit)
	case SingleQubitGate:
		return fmt.Sprintf("u3 q[%d]  α=%.3f%+.3fi β=%.3f%+.3fi", o.Qubit, o.AlphaR, o.AlphaI, o.BetaR, o.BetaI)
	case CNOT:
		return fmt.Sprintf("cx q[%d],q[%d]", o.Control, o.Target)
	case ControlledPauliY:
		return fmt.Sprintf("cy q[%d],q[%d]", o.Control, o.Target)
	case ControlledPauliZ:
		return fmt.Sprintf("cz q[%d],q[%d]", o.Control, o.Target)
	case MolmerSorensenXX:
		return fmt.Sprintf("rxx(pi/2) q[%d],q[%d]", o.Control, o.Target)
	case MeasureQubit:
		return fmt.Sprintf("measure q[%d] -> %s[%d]", o.Qubit, o.Readout, o.ReadoutIndex)
	case RepeatedMeasurement:
		return fmt.Sprintf("measure all -> %s  ×%d", o.Readout, o.Shots)
	case DefineRegister:
		return fmt.Sprintf("register %s[%d] %s", o.Name, o.Length, o.Kind)
	case SetNumberOfMeasurements:
		return fmt.Sprintf("shots(%s) = %d", o.Readout, o.Shots)
	case GetStateVector:
		return fmt.Sprintf("statevector -> %s", o.Readout)
	case GetDensityMatrix:
		return fmt.Sprintf("densitymatrix -> %s", o.Readout)
	case SetStateVector:
		return fmt.Sprintf("prepare |ψ⟩ (%d amplitudes)", len(o.Amplitudes))
	default:
		return fmt.Sprintf("%T", op)
	}
}

// opLineStyle picks a style for the list line based on the kind of
// instruction. Gates, measurements and register/pragma lines read differently.
func opLineStyle(op Operation) func(...string) string {
	switch op.(type) {
	case MeasureQubit, RepeatedMeasurement:
		return pragmaStyle.Render
	case DefineRegister:
		return registerStyle.Render
	case SetNumberOfMeasurements, GetStateVector, GetDensityMatrix, SetStateVector:
		return pragmaStyle.Render
	default:
		return opStyle.Render
	}
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the instruction list panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	demo := m.demos[m.demoIdx]
	sb.WriteString(titleStyle.Render("Circuit"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d ", m.demoIdx+1, len(m.demos))))
	sb.WriteString(registerStyle.Render(demo.name))
	fmt.Fprintf(&sb, "  %s", dimStyle.Render(fmt.Sprintf("(%d qubits)", m.circuit.NumQubits())))
	sb.WriteString("\n\n")

	// How many list rows fit
	maxRows := max(height-8, 4)
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := min(start+maxRows, len(m.circuit))

	if start > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  ▲ %d more\n", start)))
	}
	for i := start; i < end; i++ {
		op := m.circuit[i]
		line := fmt.Sprintf("%2d  %s", i, opSummary(op))
		if i == m.cursor && m.focus == focusCircuit {
			sb.WriteString(cursorStyle.Render("▸ "))
			sb.WriteString(cursorStyle.Render(line))
		} else {
			sb.WriteString("  ")
			sb.WriteString(opLineStyle(op)(line))
		}
		sb.WriteString("\n")
	}
	if end < len(m.circuit) {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  ▼ %d more\n", len(m.circuit)-end)))
	}
	if len(m.circuit) == 0 {
		sb.WriteString(dimStyle.Render("  (empty, press a to add)\n"))
	}

	sb.WriteString("\n")
	if m.wireErr != nil {
		sb.WriteString(errorStyle.Render("✗ " + m.wireErr.Error()))
	} else if m.statusMsg != "" {
		sb.WriteString(pragmaStyle.Render(m.statusMsg))
	} else {
		sb.WriteString(dimStyle.Render("↑↓ Move  a Add  d Delete  n/p Demo  y Symbolic  r Run  ^S Save  Tab Wire  q Quit"))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderWirePanel renders the wire-format output panel.
func (m Model) renderWirePanel(width, height int) string {
	var sb strings.Builder

	title := "Wire Format"
	if m.focus == focusWire {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	if m.symbolic {
		sb.WriteString(pragmaStyle.Render("  symbolic"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.wireEditor.View())

	// Symbol table, when parametrized values were staged
	if m.symbolic && m.backend != nil && m.backend.Symbols().Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Staged parameters:\n"))
		entries := m.backend.Symbols().Entries()
		tokens := make([]string, 0, len(entries))
		for tok := range entries {
			tokens = append(tokens, tok)
		}
		sort.Strings(tokens)
		for _, tok := range tokens {
			fmt.Fprintf(&sb, "  %s %s\n",
				registerStyle.Render(tok),
				dimStyle.Render("= "+formatParam(entries[tok])))
		}
	}

	return wireStyle.Width(width).Height(height).Render(sb.String())
}

// renderResultsPanel renders decoded registers from the last run.
func (m Model) renderResultsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Results"))
	sb.WriteString("\n")

	switch {
	case m.runErr != nil:
		sb.WriteString(errorStyle.Render("✗ " + m.runErr.Error()))

	case m.results == nil:
		sb.WriteString(dimStyle.Render("Press r to run the circuit"))

	default:
		names := make([]string, 0, len(m.results.Bits))
		for name := range m.results.Bits {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			shots := m.results.Bits[name]
			fmt.Fprintf(&sb, "%s %s\n",
				registerStyle.Render(name),
				dimStyle.Render(fmt.Sprintf("(%d shots)", len(shots))))
			for _, line := range histogramLines(shots, 6) {
				sb.WriteString("  " + line + "\n")
			}
		}

		cnames := make([]string, 0, len(m.results.Complexes))
		for name := range m.results.Complexes {
			cnames = append(cnames, name)
		}
		sort.Strings(cnames)
		for _, name := range cnames {
			for _, vec := range m.results.Complexes[name] {
				fmt.Fprintf(&sb, "%s %s\n",
					registerStyle.Render(name),
					dimStyle.Render(fmt.Sprintf("(%d amplitudes)", len(vec))))
				sb.WriteString("  " + formatAmplitudes(vec, 8) + "\n")
			}
		}
	}

	return resultsStyle.Width(width).Height(height).Render(sb.String())
}

// histogramLines turns decoded shot vectors into "bits ×count" lines, most
// frequent first, capped at maxLines entries.
func histogramLines(shots [][]bool, maxLines int) []string {
	counts := make(map[string]int)
	for _, shot := range shots {
		var b strings.Builder
		for _, bit := range shot {
			if bit {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		counts[b.String()]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	var lines []string
	for i, k := range keys {
		if i == maxLines {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("… %d more patterns", len(keys)-maxLines)))
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			opStyle.Render(k),
			dimStyle.Render(fmt.Sprintf("×%d", counts[k]))))
	}
	return lines
}

// formatAmplitudes renders the first few complex amplitudes of a vector.
func formatAmplitudes(vec []complex128, maxEntries int) string {
	var parts []string
	for i, c := range vec {
		if i == maxEntries {
			parts = append(parts, "…")
			break
		}
		parts = append(parts, fmt.Sprintf("%.3f%+.3fi", real(c), imag(c)))
	}
	return strings.Join(parts, "  ")
}

// ──────────────────────────── Overlays ────────────────────────────

// renderPickOverlay renders the qubit/target selection prompt.
func (m Model) renderPickOverlay(prompt string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.pending.name))
	sb.WriteString("\n")
	sb.WriteString(prompt)
	if m.focus == focusPickTarget {
		fmt.Fprintf(&sb, "\n%s", dimStyle.Render(fmt.Sprintf("control: q[%d]", m.pendingQubit)))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Esc Cancel"))
	return menuBorderStyle.Render(sb.String())
}

// renderParamInput renders the parameter entry prompt.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.pending.name))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Parameter (%s):\n", m.pending.paramHint)
	sb.WriteString(opStyle.Render("> " + m.paramInput + "█"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("⏎ Ok  Esc Cancel"))
	return menuBorderStyle.Render(sb.String())
}

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
// It properly handles ANSI escape sequences in the background line.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0
	inEsc := false

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			inEsc = true
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if inEsc && runes[i] != '\x1b' && runes[i] != '[' && ((runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z')) {
					inEsc = false
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if i > 0 && runes[i-1] != '\x1b' && runes[i-1] != '[' && ((runes[i-1] >= 'A' && runes[i-1] <= 'Z') || (runes[i-1] >= 'a' && runes[i-1] <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
