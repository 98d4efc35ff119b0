// Package cliout provides human-readable output formatting for CLI commands,
// with ANSI color styling, Unicode symbols with ASCII fallbacks, and
// automatic color suppression when stdout is not a terminal.
package cliout

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI styling codes.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for terminals that can display them.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolDot     = "•"
)

// ASCII fallbacks for terminals that cannot.
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
	ASCIIDot     = "*"
)

var (
	mu      sync.RWMutex
	noColor = detectNoColor()
)

// detectNoColor decides the initial color mode: colors are off when stdout
// is not a terminal or the NO_COLOR convention is in effect.
func detectNoColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	noColor = false
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// paint wraps s in the given ANSI code unless colors are disabled.
func paint(code, s string) string {
	mu.RLock()
	off := noColor
	mu.RUnlock()
	if off {
		return s
	}
	return code + s + Reset
}

var supportsUnicode = detectUnicodeSupport()

// detectUnicodeSupport reports whether the terminal can display Unicode
// symbols. Unix terminals generally can; on Windows only the modern hosts
// (Windows Terminal, VS Code, ConEmu, PowerShell) are trusted.
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	if os.Getenv("WT_SESSION") != "" || os.Getenv("ConEmuPID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "vscode" {
		return true
	}
	if os.Getenv("PSModulePath") != "" || os.Getenv("POWERSHELL_DISTRIBUTION_CHANNEL") != "" {
		return true
	}
	return os.Getenv("TERM") != ""
}

// getIcon returns the Unicode symbol or its ASCII fallback.
func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// Header prints a bold header with an underline divider.
func Header(text string) {
	fmt.Printf("\n%s\n", paint(Bold, text))
	fmt.Println(strings.Repeat("=", len(text)))
}

// Success prints a success message with a green check.
func Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", paint(BrightGreen, getIcon(SymbolCheck, ASCIICheck)), msg)
}

// Error prints an error message with a red cross.
func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", paint(BrightRed, getIcon(SymbolCross, ASCIICross)), msg)
}

// Warning prints a warning message with a yellow triangle.
func Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s  %s\n", paint(BrightYellow, getIcon(SymbolWarning, ASCIIWarning)), msg)
}

// Info prints an info message with a blue info symbol.
func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s  %s\n", paint(BrightBlue, getIcon(SymbolInfo, ASCIIInfo)), msg)
}

// Item prints an indented item.
func Item(format string, args ...interface{}) {
	fmt.Printf("   %s\n", fmt.Sprintf(format, args...))
}

// Bullet prints a bulleted list item.
func Bullet(format string, args ...interface{}) {
	fmt.Printf("  %s %s\n", getIcon(SymbolDot, ASCIIDot), fmt.Sprintf(format, args...))
}

// Label prints an aligned label and value pair.
func Label(label, value string) {
	fmt.Printf("   %s %s\n", paint(Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Hint prints compact hints on a single line with bullet separators.
func Hint(hints ...string) {
	if len(hints) == 0 {
		return
	}
	fmt.Println(paint(Dim, strings.Join(hints, " "+getIcon(SymbolDot, ASCIIDot)+" ")))
}

// Divider prints a horizontal divider.
func Divider() {
	fmt.Printf("\n%s\n", paint(Dim, strings.Repeat("─", 50)))
}

// Newline prints a blank line.
func Newline() {
	fmt.Println()
}

// Plain prints plain text without any styling.
func Plain(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Highlight returns text styled for emphasis.
func Highlight(format string, args ...interface{}) string {
	return paint(Bold+Cyan, fmt.Sprintf(format, args...))
}

// Muted returns text styled as dim.
func Muted(format string, args ...interface{}) string {
	return paint(Dim, fmt.Sprintf(format, args...))
}
