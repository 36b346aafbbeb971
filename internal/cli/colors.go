package cli

import "github.com/charmbracelet/lipgloss"

// Sea colour palette 🌊
// Shared sea theme colours for consistent branding across CLI and TUI
var (
	// Core sea colours (bright to dark)
	SeaFoam  = lipgloss.Color("#7FFFD4") // Aquamarine highlight
	SeaLight = lipgloss.Color("#40E0D0") // Turquoise
	SeaMid   = lipgloss.Color("#20B2AA") // Light sea green
	SeaDeep  = lipgloss.Color("#008B8B") // Dark cyan

	// Accent colours
	SandGray = lipgloss.Color("#8FBC8F") // Dark sea green for subtle text
)
