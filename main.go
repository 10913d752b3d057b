package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	libPath := flag.String("lib", "", "circuit library file (.rdk) to load and save")
	width := flag.Int("width", 4, "initial register width")
	debugLog := flag.String("debug-log", "", "write debug logs to this file")
	flag.Parse()

	if *debugLog != "" {
		f, err := os.Create(*debugLog)
		if err != nil {
			fmt.Fprintln(os.Stderr, "revdeck:", err)
			os.Exit(1)
		}
		defer f.Close()
		SetLogOutput(f)
	}

	p := tea.NewProgram(initialModel(*width, *libPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "revdeck:", err)
		os.Exit(1)
	}
}
