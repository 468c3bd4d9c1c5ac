// Package style provides shared UI styling primitives including brand colors,
// the card palette and icons used by every presentation surface.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Pastels are the task card backgrounds, picked per row with domain.ColorIndex.
var Pastels = []lipgloss.Color{
	lipgloss.Color("#FFE5E5"),
	lipgloss.Color("#E5F3FF"),
	lipgloss.Color("#E5FFE5"),
	lipgloss.Color("#FFF5E5"),
	lipgloss.Color("#F0E5FF"),
	lipgloss.Color("#E5FFFF"),
	lipgloss.Color("#FFFFE5"),
	lipgloss.Color("#FFE5F5"),
}

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Plus    = "+"
)

// Checkbox returns the marker for a task row.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
