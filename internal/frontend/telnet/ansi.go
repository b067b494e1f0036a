// Package telnet provides the Telnet transport and ANSI styling for the text
// frontend.
package telnet

import (
	"fmt"
	"regexp"
)

// ANSI styles used by the text renderer.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red          = "\033[31m"
	Green        = "\033[32m"
	Yellow       = "\033[33m"
	Cyan         = "\033[36m"
	White        = "\033[37m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"
)

var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Colorize wraps text with the given ANSI style and a reset suffix.
//
// Postcondition: Returns color + text + Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf formats and wraps the result with the given ANSI style.
func Colorf(color, format string, args ...any) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

// StripANSI removes SGR escape sequences, leaving the printable text.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
