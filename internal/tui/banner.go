package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for FlightDesk.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Sky-to-sunset gradient.
	lines := []struct {
		text  string
		color string
	}{
		{`  ______ _ _       _     _   _____            _    `, "#38bdf8"},
		{` |  ____| (_)     | |   | | |  __ \          | |   `, "#60a5fa"},
		{` | |__  | |_  __ _| |__ | |_| |  | | ___  ___| | __`, "#818cf8"},
		{` |  __| | | |/ _` + "`" + ` | '_ \| __| |  | |/ _ \/ __| |/ /`, "#a78bfa"},
		{` | |    | | | (_| | | | | |_| |__| |  __/\__ \   < `, "#e879f9"},
		{` |_|    |_|_|\__, |_| |_|\__|_____/ \___||___/_|\_\`, "#f472b6"},
		{`              __/ |                                `, "#fb7185"},
		{`             |___/                                 `, "#fb923c"},
	}

	fmt.Println()
	for _, line := range lines {
		fmt.Println(termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Println()
}
