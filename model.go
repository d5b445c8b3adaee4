package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusWire
	focusMenu
	focusPickQubit
	focusPickTarget
	focusParam
)

// Model represents the TUI application state.
type Model struct {
	demos   []demoCircuit
	demoIdx int
	circuit Circuit // working copy of the selected demo
	cursor  int     // selected instruction

	backend  *Backend
	symbolic bool
	seed     int64

	wireErr  error
	metadata *SimMetadata
	results  *DecodedRegisters
	runErr   error

	wireEditor textarea.Model
	lastWire   string
	focus      focus
	statusMsg  string
	width      int
	height     int

	// Menu state
	menuCat  int
	menuItem int

	// Operation placement state
	pending      *menuEntry
	pendingQubit int
	paramInput   string
}

func initialModel() Model {
	ta := textarea.New()
	ta.Placeholder = "Wire format output..."
	ta.SetWidth(44)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true

	demos := demoCircuits()
	m := Model{
		demos:      demos,
		circuit:    append(Circuit(nil), demos[0].circuit...),
		wireEditor: ta,
		focus:      focusCircuit,
		seed:       1,
	}
	m.refreshWire()
	return m
}

// refreshWire retranslates the working circuit into the wire panel. A fresh
// backend per refresh keeps the symbol table scoped to the current circuit.
func (m *Model) refreshWire() {
	m.backend = NewBackend(m.circuit.NumQubits())
	text, md, err := m.backend.TranslateCircuit(m.circuit, m.symbolic)
	m.wireErr = err
	m.metadata = md
	if err != nil {
		text = ""
	}
	if text != m.lastWire {
		m.wireEditor.SetValue(text)
		m.lastWire = text
	}
}

// runCircuit executes the working circuit on the sampler and decodes the
// outcome strings into typed registers.
func (m *Model) runCircuit() {
	decoded, md, err := m.backend.RunCircuit(m.circuit, m.seed)
	m.seed++
	m.runErr = err
	if err != nil {
		m.results = nil
		return
	}
	m.results = &decoded
	m.metadata = md
	m.statusMsg = fmt.Sprintf("Ran %d shots", md.ShotCount())
}

// selectDemo resets the working circuit to the given demo.
func (m *Model) selectDemo(idx int) {
	n := len(m.demos)
	m.demoIdx = ((idx % n) + n) % n
	m.circuit = append(Circuit(nil), m.demos[m.demoIdx].circuit...)
	m.cursor = 0
	m.results = nil
	m.runErr = nil
	m.refreshWire()
}

// placeOp builds the pending operation and inserts it after the cursor.
func (m *Model) placeOp(target int, param Param) {
	if m.pending == nil {
		return
	}
	op := m.pending.build(m.pendingQubit, target, param, m.circuit.NumQubits())
	at := min(m.cursor+1, len(m.circuit))
	m.circuit = append(m.circuit[:at], append(Circuit{op}, m.circuit[at:]...)...)
	m.cursor = at
	m.pending = nil
	m.paramInput = ""
	m.focus = focusCircuit
	m.results = nil
	m.refreshWire()
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		wireW := max(msg.Width/3-6, 24)
		m.wireEditor.SetWidth(wireW)
		m.wireEditor.SetHeight(max(msg.Height-14, 6))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusWire
				m.wireEditor.Focus()
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.circuit)-1 {
					m.cursor++
				}
			case "n":
				m.selectDemo(m.demoIdx + 1)
			case "p":
				m.selectDemo(m.demoIdx - 1)
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "d", "backspace", "delete":
				if len(m.circuit) > 0 && m.cursor < len(m.circuit) {
					m.circuit = append(m.circuit[:m.cursor], m.circuit[m.cursor+1:]...)
					m.cursor = min(m.cursor, max(len(m.circuit)-1, 0))
					m.results = nil
					m.refreshWire()
				}
			case "y":
				m.symbolic = !m.symbolic
				m.refreshWire()
			case "r":
				if m.wireErr != nil {
					m.statusMsg = "Fix the circuit before running"
				} else {
					m.runCircuit()
				}
			case "ctrl+s":
				if err := os.WriteFile("circuit.qasm", []byte(m.wireEditor.Value()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			}

		case focusWire:
			switch key {
			case "esc", "tab":
				m.focus = focusCircuit
				m.wireEditor.Blur()
			case "ctrl+s":
				if err := os.WriteFile("circuit.qasm", []byte(m.wireEditor.Value()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			default:
				var cmd tea.Cmd
				m.wireEditor, cmd = m.wireEditor.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(opMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(opMenu[m.menuCat].entries)-1 {
					m.menuItem++
				}
			case "enter":
				entry := opMenu[m.menuCat].entries[m.menuItem]
				m.pending = &entry
				m.pendingQubit = 0
				switch {
				case entry.needsQubit:
					m.focus = focusPickQubit
				case entry.needsParam:
					m.paramInput = ""
					m.focus = focusParam
				default:
					m.placeOp(-1, Param{})
				}
			}

		case focusPickQubit:
			switch {
			case key == "esc":
				m.pending = nil
				m.focus = focusCircuit
			case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
				m.pendingQubit = int(key[0] - '0')
				switch {
				case m.pending.needsTarget:
					m.focus = focusPickTarget
				case m.pending.needsParam:
					m.paramInput = ""
					m.focus = focusParam
				default:
					m.placeOp(-1, Param{})
				}
			}

		case focusPickTarget:
			switch {
			case key == "esc":
				m.pending = nil
				m.focus = focusCircuit
			case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
				target := int(key[0] - '0')
				if target == m.pendingQubit {
					m.statusMsg = "Control and target must differ"
					break
				}
				if m.pending.needsParam {
					m.paramInput = ""
					m.focus = focusParam
					// remember the target through the param step
					m.pending.build = wrapTarget(m.pending.build, target)
				} else {
					m.placeOp(target, Param{})
				}
			}

		case focusParam:
			switch key {
			case "esc":
				m.pending = nil
				m.paramInput = ""
				m.focus = focusCircuit
			case "enter":
				param, ok := parseParam(m.paramInput)
				if !ok {
					m.statusMsg = fmt.Sprintf("Cannot parse parameter %q", m.paramInput)
					break
				}
				m.placeOp(-1, param)
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			default:
				if len(key) == 1 {
					m.paramInput += key
				}
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// wrapTarget fixes the target argument of a build function, so the parameter
// prompt can run after target selection.
func wrapTarget(build func(int, int, Param, int) Operation, target int) func(int, int, Param, int) Operation {
	return func(q, _ int, p Param, n int) Operation {
		return build(q, target, p, n)
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	wireWidth := m.width / 3
	circuitWidth := m.width - wireWidth - 4
	resultsHeight := 10
	topHeight := max(m.height-resultsHeight-4, 8)

	circuitPanel := m.renderCircuitPanel(circuitWidth, topHeight)
	wirePanel := m.renderWirePanel(wireWidth, topHeight)
	resultsPanel := m.renderResultsPanel(m.width-4, resultsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, wirePanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, resultsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusPickQubit:
		frame = overlayAt(frame, m.renderPickOverlay("Select qubit (0-9)"), 2, 2)
	case focusPickTarget:
		frame = overlayAt(frame, m.renderPickOverlay("Select target qubit (0-9)"), 2, 2)
	case focusParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}
