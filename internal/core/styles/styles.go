// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color

	// Plane colors, derived from the palette.
	ColorGrid   color.Color
	ColorZero   color.Color
	ColorAxis   color.Color
	ColorGuide  color.Color
	ColorMarker color.Color
)

// Style exports.
var (
	// CLI styles.
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextPrimaryStyle        lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	// Plane surface styles, applied per terminal cell.
	GridStyle      lipgloss.Style
	ZeroLineStyle  lipgloss.Style
	AxisStyle      lipgloss.Style
	AxisNameStyle  lipgloss.Style
	TickStyle      lipgloss.Style
	GuideStyle     lipgloss.Style
	MarkerStyle    lipgloss.Style
	CalloutStyle   lipgloss.Style
	SurfaceStyle   lipgloss.Style
	StatusBarStyle lipgloss.Style
	SnapOnStyle    lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	FormTitleStyle        lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style
	FormHelpStyle         lipgloss.Style

	SliderTrackStyle lipgloss.Style
	SliderKnobStyle  lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	ColorGrid = Blend(p.Muted, p.Background, 0.45)
	ColorZero = p.Muted
	ColorAxis = p.Foreground
	ColorGuide = Blend(p.Secondary, p.Background, 0.35)
	ColorMarker = p.Primary

	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = TextForegroundStyle.Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = TextPrimaryStyle.Bold(true)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	GridStyle = lipgloss.NewStyle().Foreground(ColorGrid)
	ZeroLineStyle = lipgloss.NewStyle().Foreground(ColorZero)
	AxisStyle = lipgloss.NewStyle().Foreground(ColorAxis)
	AxisNameStyle = lipgloss.NewStyle().Foreground(ColorAxis).Bold(true)
	TickStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	GuideStyle = lipgloss.NewStyle().Foreground(ColorGuide)
	MarkerStyle = lipgloss.NewStyle().Foreground(ColorMarker).Bold(true)
	CalloutStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary)
	SurfaceStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SnapOnStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	FormHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorSurface)
	SliderKnobStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(ColorSuccess).Foreground(ColorForeground)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning).Foreground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError).Foreground(ColorError)
}

// SetThemeName activates a built-in theme by name. It reports false and
// leaves the current theme in place when the name is unknown.
func SetThemeName(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		return false
	}
	SetTheme(p)
	return true
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
