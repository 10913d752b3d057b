package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the picker.
type menuItem struct {
	name     string
	kind     Kind
	symbol   string
	controls int // how many control wires to collect before placing
	hint     string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items. The cursor wire is
// always the target; controls are picked afterwards, in order. For ECA57 the
// first pick is the positive-sense control and the second the negated one.
var gateMenu = []menuCategory{
	{
		name: "Primitive",
		items: []menuItem{
			{name: "ECA57", kind: KindECA57, symbol: "●─○─⊕", controls: 2, hint: "ctrl1 set OR ctrl2 clear"},
		},
	},
	{
		name: "Toffoli Family",
		items: []menuItem{
			{name: "NOT (X)", kind: KindX, symbol: "⊕", controls: 0},
			{name: "CNOT (CX)", kind: KindCX, symbol: "●─⊕", controls: 1},
			{name: "Toffoli (CCX)", kind: KindCCX, symbol: "●─●─⊕", controls: 2},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.controls > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" →%d ctrl", item.controls)))
		}
		if item.hint != "" {
			sb.WriteString(dimStyle.Render("  " + item.hint))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
