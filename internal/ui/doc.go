// Package ui provides theme and color support for terminal output.
// It defines color schemes and ANSI escape code helpers so presentation code
// never hard-codes escape sequences.
package ui
