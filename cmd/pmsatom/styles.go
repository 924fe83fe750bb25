package main

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all human-readable output.
const (
	// ColorPrimary is purple, used for titles and atoms.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for field labels.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for versions.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for atoms and section headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is for field names in parse reports.
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(12)

	// SuccessStyle is for success messages and added packages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and removed packages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for downgrades and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// VersionStyle is for versions.
	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// CaretStyle marks the offending position under an atom.
	CaretStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)
)
