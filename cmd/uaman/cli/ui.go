// Package cli holds the terminal output helpers shared by the uaman
// subcommands.
package cli

import (
	"fmt"
	"strings"
)

// Terminal colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(colorGreen + "✓ " + message + colorReset)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(colorRed + "✗ " + message + colorReset)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(colorYellow + "! " + message + colorReset)
}

// PrintInfo prints an informational message
func PrintInfo(message string) {
	fmt.Println(colorBlue + "ℹ " + message + colorReset)
}

// PrintHeader prints a section header
func PrintHeader(message string) {
	fmt.Println("\n" + colorCyan + colorBold + message + colorReset)
	fmt.Println(strings.Repeat("─", len([]rune(message))))
}
