package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxInteractiveWidth bounds the widths the inspector will simulate on
// every keystroke. Stricter than MaxSimulateWidth: past this the inspector
// shows a notice instead of stalling the event loop.
const maxInteractiveWidth = 16

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusFormat
	focusMenu
	focusSelectControls
	focusExtract
)

// Model represents the TUI application state.
type Model struct {
	circuit    *Circuit
	cursorWire int
	cursorStep int
	packedView bool // column gates by topological level instead of step
	width      int
	height     int

	formatEditor textarea.Model
	focus        focus
	lastFormat   string
	statusMsg    string // transient status message (e.g. save confirmation)

	// Derived values, recomputed from the circuit on every edit.
	edges  []CollisionEdge
	levels [][]int
	sim    *Simulation // nil when the circuit is too wide to simulate
	walk   []int

	// Menu state
	menuCat  int
	menuItem int

	// Control-selection state (for multi-wire gates); the cursor wire is
	// the target, controls are picked one at a time.
	pendingKind  Kind
	controlWires []int
	selWire      int

	// Extract state
	extractFrom int

	// Circuit library
	library *Library
	libPath string
	libIdx  int
}

func initialModel(width int, libPath string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type compact gates here, e.g. 201;"
	ta.SetWidth(40)
	ta.SetHeight(8)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circuit:      &Circuit{Width: max(width, 1)},
		formatEditor: ta,
		focus:        focusCircuit,
		libPath:      libPath,
	}

	if libPath != "" {
		lib, err := ReadLibrary(libPath)
		switch {
		case err == nil && len(lib.Records) > 0:
			m.library = lib
			m.openRecord(0)
		case err == nil:
			m.library = lib
		default:
			m.statusMsg = fmt.Sprintf("Library error: %v", err)
		}
	}

	m.recompute()
	m.syncFormatView()
	return m
}

// recompute rederives everything the inspector shows. Collision edges and
// levels are cheap; the simulation is skipped entirely past the
// interactive width bound.
func (m *Model) recompute() {
	m.edges = m.circuit.CollisionEdges()
	m.levels = m.circuit.Levels()
	if m.circuit.Width <= maxInteractiveWidth {
		m.sim, _ = m.circuit.Simulate()
		m.walk, _ = m.circuit.ComplexityWalk()
	} else {
		m.sim = nil
		m.walk = nil
	}
}

// syncFormatView refreshes the editor from the circuit. Not called while
// the format panel has focus, so partial user input is never clobbered.
func (m *Model) syncFormatView() {
	text := m.circuit.ToCompact()
	m.formatEditor.SetValue(text)
	m.lastFormat = text
}

// parseFormatInput reparses the editor contents leniently on each edit.
// The displayed width never shrinks mid-edit; only the '-' key does that.
func (m *Model) parseFormatInput() {
	text := m.formatEditor.Value()
	if text == m.lastFormat {
		return
	}
	c := ParseCompact(text)
	if c.Width < m.circuit.Width {
		c.Width = m.circuit.Width
	}
	m.circuit = c
	m.lastFormat = text
	m.recompute()
}

// openRecord loads a library record as the working circuit.
func (m *Model) openRecord(i int) {
	m.libIdx = i
	m.circuit = m.library.Records[i].Circuit()
	if m.circuit.Width < 1 {
		m.circuit.Width = 1
	}
	m.cursorWire = 0
	m.cursorStep = 0
	m.recompute()
	m.syncFormatView()
}

// placeGate places the pending gate with the cursor wire as target. Any
// gate already occupying one of its wires at this step is replaced.
func (m *Model) placeGate(kind Kind, controls []int) {
	m.circuit.RemoveGateAt(m.cursorStep, m.cursorWire)
	for _, c := range controls {
		m.circuit.RemoveGateAt(m.cursorStep, c)
	}
	m.circuit.AddGate(kind, m.cursorWire, m.cursorStep, controls...)

	m.pendingKind = 0
	m.controlWires = nil
	m.cursorStep++
	m.recompute()
	m.syncFormatView()
}

// extractRange reduces the gates in the selected step range onto their
// minimal wire set and opens the result as the working circuit.
func (m *Model) extractRange() {
	lo := min(m.extractFrom, m.cursorStep)
	hi := max(m.extractFrom, m.cursorStep)

	var fragment []Gate
	for _, g := range m.circuit.gatesByStep() {
		if g.Step >= lo && g.Step <= hi {
			g.Step = len(fragment)
			fragment = append(fragment, g)
		}
	}
	reduced, width, _ := ReduceWires(fragment)
	m.circuit = &Circuit{Width: max(width, 1), Gates: reduced}
	m.cursorWire = 0
	m.cursorStep = 0
	m.recompute()
	m.syncFormatView()
	m.statusMsg = fmt.Sprintf("Extracted %d gates onto %d wires", len(reduced), width)
}

// storeRecord appends the working circuit to the library and saves it.
func (m *Model) storeRecord() {
	if m.library == nil {
		m.library = &Library{}
	}
	rec := RecordFromCircuit("", m.circuit)
	if err := rec.refresh(); err != nil {
		m.statusMsg = fmt.Sprintf("Store error: %v", err)
		return
	}
	m.library.Records = append(m.library.Records, rec)
	m.libIdx = len(m.library.Records) - 1
	m.saveLibrary()
}

func (m *Model) saveLibrary() {
	if m.library == nil {
		return
	}
	path := m.libPath
	if path == "" {
		path = "circuits.rdk"
		m.libPath = path
	}
	if err := WriteLibrary(path, m.library); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
	} else {
		m.statusMsg = "Saved " + path
	}
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
		editorW := max(msg.Width/3-6, 20)
		m.formatEditor.SetWidth(editorW)
		ctrlH := 6
		mainH := msg.Height - ctrlH - 4
		m.formatEditor.SetHeight(max(mainH/2-4, 4))

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
				m.focus = focusFormat
				m.formatEditor.Focus()
			case "ctrl+r":
				m.circuit = &Circuit{Width: m.circuit.Width}
				m.cursorStep = 0
				m.recompute()
				m.syncFormatView()
			case "ctrl+s":
				m.saveLibrary()
			case "up", "k":
				if m.cursorWire > 0 {
					m.cursorWire--
				}
			case "down", "j":
				if m.cursorWire < m.circuit.Width-1 {
					m.cursorWire++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				m.cursorStep++
			case "+", "=":
				m.circuit.Width++
				m.recompute()
			case "-":
				if m.circuit.Width > 1 {
					m.circuit.Width--
					m.cursorWire = min(m.cursorWire, m.circuit.Width-1)
					m.circuit.RemoveGatesOnWire(m.circuit.Width)
					m.recompute()
					m.syncFormatView()
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				m.circuit.RemoveGateAt(m.cursorStep, m.cursorWire)
				m.recompute()
				m.syncFormatView()
			case "c":
				m.circuit.Gates = m.circuit.CanonicalOrder()
				m.cursorStep = 0
				m.recompute()
				m.syncFormatView()
				m.statusMsg = "Canonicalized"
			case "v":
				m.packedView = !m.packedView
			case "x":
				if len(m.circuit.Gates) > 0 {
					m.extractFrom = m.cursorStep
					m.focus = focusExtract
				}
			case "[":
				if m.library != nil && len(m.library.Records) > 0 {
					m.openRecord((m.libIdx - 1 + len(m.library.Records)) % len(m.library.Records))
				}
			case "]":
				if m.library != nil && len(m.library.Records) > 0 {
					m.openRecord((m.libIdx + 1) % len(m.library.Records))
				}
			case "s":
				m.storeRecord()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := gateMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingKind = item.kind

				if item.controls == 0 {
					m.placeGate(item.kind, nil)
					m.focus = focusCircuit
					break
				}
				if m.circuit.Width < item.controls+1 {
					m.statusMsg = fmt.Sprintf("%s needs %d wires", item.kind, item.controls+1)
					break
				}
				m.controlWires = nil
				m.selWire = m.nextFreeWire(m.cursorWire)
				m.focus = focusSelectControls
			}

		case focusSelectControls:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.controlWires = nil
				m.pendingKind = 0
			case "up", "k":
				for next := m.selWire - 1; next >= 0; next-- {
					if next != m.cursorWire && !slices.Contains(m.controlWires, next) {
						m.selWire = next
						break
					}
				}
			case "down", "j":
				for next := m.selWire + 1; next < m.circuit.Width; next++ {
					if next != m.cursorWire && !slices.Contains(m.controlWires, next) {
						m.selWire = next
						break
					}
				}
			case "enter":
				m.controlWires = append(m.controlWires, m.selWire)
				if len(m.controlWires) == m.pendingKind.NumControls() {
					m.placeGate(m.pendingKind, m.controlWires)
					m.focus = focusCircuit
					break
				}
				m.selWire = m.nextFreeWire(m.cursorWire)
			}

		case focusExtract:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < m.circuit.MaxSteps()-1 {
					m.cursorStep++
				}
			case "enter":
				m.extractRange()
				m.focus = focusCircuit
			}

		case focusFormat:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.formatEditor.Blur()
				m.syncFormatView()
			default:
				var cmd tea.Cmd
				m.formatEditor, cmd = m.formatEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseFormatInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// nextFreeWire returns the first wire that is neither the target nor an
// already-picked control.
func (m *Model) nextFreeWire(target int) int {
	for w := 0; w < m.circuit.Width; w++ {
		if w != target && !slices.Contains(m.controlWires, w) {
			return w
		}
	}
	return 0
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	rightWidth := m.width / 3
	circuitWidth := m.width - rightWidth - 4
	controlsHeight := 6
	mainHeight := max(m.height-controlsHeight-2, 6)
	formatHeight := max(mainHeight/2, 6)
	inspectorHeight := max(mainHeight-formatHeight-2, 4)

	circuitPanel := m.renderCircuitPanel(circuitWidth, mainHeight)
	formatPanel := m.renderFormatPanel(rightWidth, formatHeight)
	inspectorPanel := m.renderInspectorPanel(rightWidth, inspectorHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	rightCol := lipgloss.JoinVertical(lipgloss.Left, formatPanel, inspectorPanel)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, rightCol)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	// Render menu overlay when in menu mode
	if m.focus == focusMenu {
		menuBox := m.renderMenu()
		frame = overlayAt(frame, menuBox, 2, 2)
	}

	return frame
}
