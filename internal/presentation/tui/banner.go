package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for the server startup.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Green-to-teal gradient, one line per shade
	s1 := termenv.String("      _ _      _              _   ").Foreground(p.Color("#34d399"))
	s2 := termenv.String("   __| (_) ___| |_ ___  _ __ | |_ ").Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String("  / _` | |/ _ \\ __/ _ \\| '_ \\| __|").Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(" | (_| | |  __/ || (_) | |_) | |_ ").Foreground(p.Color("#38bdf8"))
	s5 := termenv.String("  \\__,_|_|\\___|\\__\\___/| .__/ \\__|").Foreground(p.Color("#60a5fa"))
	s6 := termenv.String("                       |_|        ").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
