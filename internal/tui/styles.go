package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	panelBg   = lipgloss.Color("#0F141A")
	borderCol = lipgloss.Color("#243141")
	hoverFg   = lipgloss.Color("#FFA500")
	tipBg     = lipgloss.Color("#1F2937")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
)

// inkStyles maps canvas inks to styles. Shape colours come from the
// measurement options.
type inkStyles struct {
	shape lipgloss.Style
	err   lipgloss.Style
}

func newInkStyles(shape, drawErr string) inkStyles {
	return inkStyles{
		shape: lipgloss.NewStyle().Foreground(cssColor(shape, "#FF0000")).Bold(true),
		err:   lipgloss.NewStyle().Foreground(cssColor(drawErr, "#F06EAA")).Bold(true),
	}
}

func (s inkStyles) style(k ink) lipgloss.Style {
	switch k {
	case inkShape, inkMarker:
		return s.shape
	case inkPreview:
		return s.shape.Bold(false).Faint(true)
	case inkError:
		return s.err
	case inkTip:
		return lipgloss.NewStyle().Foreground(baseFg).Background(tipBg)
	case inkHover:
		return lipgloss.NewStyle().Foreground(hoverFg)
	case inkPanel:
		return lipgloss.NewStyle().Foreground(baseDimFg).Background(panelBg)
	case inkPanelOn:
		return lipgloss.NewStyle().Foreground(accentFg).Background(panelBg).Bold(true)
	}
	return lipgloss.NewStyle()
}

// cssColor accepts "#rrggbb", "#rgb" and "rgb(r, g, b)" and falls back to
// def for anything else.
func cssColor(s, def string) lipgloss.Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgb(") {
		var r, g, b int
		if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
			c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Clamped()
			return lipgloss.Color(c.Hex())
		}
		return lipgloss.Color(def)
	}
	if c, err := colorful.Hex(s); err == nil {
		return lipgloss.Color(c.Hex())
	}
	return lipgloss.Color(def)
}
