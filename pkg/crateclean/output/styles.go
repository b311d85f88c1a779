package output

import "github.com/charmbracelet/lipgloss"

// Color constants using the ANSI 256-color palette, shared by the pretty
// formatter.
const (
	// ColorPrimary is used for headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorSuccess is used for in-sync and restored counts (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorWarning is used for orphan counts and conflicts (orange).
	ColorWarning = lipgloss.Color("214")

	// ColorDanger is used for failures and missing files (red).
	ColorDanger = lipgloss.Color("196")

	// ColorMuted is used for secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

var (
	// HeaderBox frames the run summary.
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// SuccessStyle highlights healthy counts.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// WarningStyle highlights orphans and conflicts.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// DangerStyle highlights failures and missing references.
	DangerStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// MutedStyle de-emphasizes secondary detail.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
