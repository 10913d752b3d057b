package main

import (
	"fmt"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// sparkRunes are the blocks used for the complexity walk sparkline.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values as a block-character strip, scaled to the
// largest value present.
func sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	maxV := 1
	for _, v := range values {
		maxV = max(maxV, v)
	}
	var sb strings.Builder
	for _, v := range values {
		idx := v * (len(sparkRunes) - 1) / maxV
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

// ──────────────────────────── Cell rendering ────────────────────────────

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate         *Gate
	isControl    bool // positive-sense control: ●
	isNegControl bool // negated control (ECA57 ctrl2): ○
	isTarget     bool
	vertAbove    bool
	vertBelow    bool
	passThrough  bool
}

// cellInfoAt computes rendering information for one wire within a column
// of simultaneously drawn gates.
func cellInfoAt(column []*Gate, wire int) cellInfo {
	var info cellInfo

	for _, g := range column {
		if !g.References(wire) {
			continue
		}
		info.gate = g
		if g.Target == wire {
			info.isTarget = true
		}
		for ci, c := range g.Controls {
			if c != wire {
				continue
			}
			if g.Kind == KindECA57 && ci == 1 {
				info.isNegControl = true
			} else {
				info.isControl = true
			}
		}
		break
	}

	// Vertical connectors spanning multi-wire gates
	for _, g := range column {
		if len(g.Controls) == 0 {
			continue
		}
		minW, maxW := g.Target, g.Target
		for _, c := range g.Controls {
			minW = min(minW, c)
			maxW = max(maxW, c)
		}
		if wire >= minW && wire <= maxW {
			if wire > minW {
				info.vertAbove = true
			}
			if wire < maxW {
				info.vertBelow = true
			}
			if wire > minW && wire < maxW && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlControlSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	wireSym := func() (string, bool) {
		switch {
		case info.isTarget && info.gate.Kind != KindX:
			return "⊕", true
		case info.isNegControl:
			return "○", true
		case info.isControl:
			return "●", true
		case info.passThrough:
			return "┼", true
		}
		return "", false
	}

	// ── Highlighted cell (cursor or control selection) ──
	if hl == hlCursor || hl == hlControlSelect {
		bdr := cursorBoxStyle
		if hl == hlControlSelect {
			bdr = rangeSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		if sym, ok := wireSym(); ok {
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		} else if info.gate != nil {
			name := padCenter(info.gate.Kind.String(), gateNameW)
			mid = bdr.Render("║") + "┤" + gateStyle.Render(name) + "├" + bdr.Render("║")
		} else {
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	if sym, ok := wireSym(); ok {
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	} else if info.gate != nil {
		// A boxed single-wire gate (X)
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(info.gate.Kind.String(), gateNameW)

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	} else {
		// Empty wire
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// columns groups gates for display: one column per step normally, or one
// per topological level when the packed view is on.
func (m Model) columns() [][]*Gate {
	gates := m.circuit.gatesByStep()

	if m.packedView {
		levels := m.circuit.Levels()
		cols := make([][]*Gate, len(levels))
		for li, level := range levels {
			for _, gi := range level {
				cols[li] = append(cols[li], &gates[gi])
			}
		}
		return cols
	}

	n := max(m.circuit.MaxSteps(), m.cursorStep+1)
	cols := make([][]*Gate, n)
	for i := range gates {
		g := &gates[i]
		cols[g.Step] = append(cols[g.Step], g)
	}
	return cols
}

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := "Circuit"
	if m.packedView {
		title = "Circuit (packed by level)"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	cols := m.columns()

	// How many columns fit
	availWidth := width - labelVisualW - 4
	maxCols := max(availWidth/cellW, 1)

	startCol := 0
	if !m.packedView && m.cursorStep >= maxCols {
		startCol = m.cursorStep - maxCols + 1
	}
	endCol := startCol + maxCols

	if startCol > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startCol, endCol-1)
	}

	// Column number header; in extract mode the selected range is marked.
	header := strings.Repeat(" ", labelVisualW)
	for col := startCol; col < endCol; col++ {
		cell := padCenter(fmt.Sprintf("%d", col), cellW)
		if m.focus == focusExtract && col >= min(m.extractFrom, m.cursorStep) && col <= max(m.extractFrom, m.cursorStep) {
			header += rangeSelectStyle.Render(cell)
		} else {
			header += dimStyle.Render(cell)
		}
	}
	sb.WriteString(header + "\n")

	// Render each wire as 3 lines
	for wire := range m.circuit.Width {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("w%d %c", wire, WireChar(wire))
		midLine := wireLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for col := startCol; col < endCol; col++ {
			var info cellInfo
			if col < len(cols) {
				info = cellInfoAt(cols[col], wire)
			}

			hl := hlNone
			if !m.packedView && col == m.cursorStep && wire == m.cursorWire &&
				(m.focus == focusCircuit || m.focus == focusMenu || m.focus == focusSelectControls || m.focus == focusExtract) {
				hl = hlCursor
			} else if !m.packedView && col == m.cursorStep && wire == m.selWire && m.focus == focusSelectControls {
				hl = hlControlSelect
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Status line
	switch m.focus {
	case focusSelectControls:
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingKind.String()))
		fmt.Fprintf(&sb, "  Select control %d of %d: ", len(m.controlWires)+1, m.pendingKind.NumControls())
		fmt.Fprintf(&sb, "%s", rangeSelectStyle.Render(fmt.Sprintf("w%d", m.selWire)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	case focusExtract:
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  Extract steps %d–%d", min(m.extractFrom, m.cursorStep), max(m.extractFrom, m.cursorStep))
		sb.WriteString(dimStyle.Render("   ←→ Extend  Enter Reduce+Open  Esc Cancel"))
	default:
		fmt.Fprintf(&sb, "\n  Position: Step %d, Wire %d", m.cursorStep, m.cursorWire)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderFormatPanel renders the compact-format editor panel.
func (m Model) renderFormatPanel(width, height int) string {
	var sb strings.Builder

	title := "Compact Format"
	if m.focus == focusFormat {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.formatEditor.View())

	return formatStyle.Width(width).Height(height).Render(sb.String())
}

// renderInspectorPanel renders the derived-properties panel. Everything
// here is recomputed from the circuit on each edit; nothing is stored.
func (m Model) renderInspectorPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Inspector"))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Width %d   Gates %d   Collisions %d   Depth %d\n",
		m.circuit.Width, len(m.circuit.Gates), len(m.edges), len(m.levels))

	if m.sim != nil {
		if m.sim.Identity {
			sb.WriteString(identityStyle.Render("IDENTITY"))
			sb.WriteString("\n")
		} else {
			notation := m.sim.Notation()
			if keep := max(width-12, 0); len(notation) > keep {
				notation = notation[:keep] + "…"
			}
			fmt.Fprintf(&sb, "Cycles %s\n", gateStyle.Render(notation))
		}
		sb.WriteString(dimStyle.Render("Walk  "))
		sb.WriteString(sparkStyle.Render(sparkline(m.walk)))
		sb.WriteString("\n")
	} else {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("simulation skipped: width > %d", maxInteractiveWidth)))
		sb.WriteString("\n")
	}

	if m.library != nil && len(m.library.Records) > 0 {
		name := m.library.Records[m.libIdx].Name
		if name == "" {
			name = "unnamed"
		}
		fmt.Fprintf(&sb, "%s %d/%d %s\n",
			dimStyle.Render("Library"), m.libIdx+1, len(m.library.Records), name)
	}

	return inspectorStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Wire  ←→/hl Step  +/- Width    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add  ")
	sb.WriteString(activeGateStyle.Render("c"))
	sb.WriteString(" Canonicalize  ")
	sb.WriteString(activeGateStyle.Render("v"))
	sb.WriteString(" Packed  ")
	sb.WriteString(activeGateStyle.Render("x"))
	sb.WriteString(" Extract\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Focus  Bksp Delete  ^R Reset  [/] Library  s Store  ^S Save lib  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

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
