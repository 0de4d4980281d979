package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Styles used across commands for consistent output
var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed, color.Bold)
	mutedStyle   = color.New(color.FgHiBlack)
	nameStyle    = color.New(color.FgWhite, color.Bold)
)

// Tree drawing characters
const (
	treeBranch     = "├── "
	treeLastBranch = "└── "
	treeVertical   = "│   "
	treeSpace      = "    "
)

// padRight pads s with spaces to the given display width, accounting for
// wide runes.
func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
