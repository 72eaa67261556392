package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dozzlecheck/internal/config"
)

const (
	edgeWidth = 3
	ellipsis  = "…"
)

// RenderLine renders a horizontal line of the specified width with separator style
func RenderLine(width int) string {
	return SeparatorStyle.Render(strings.Repeat("─", max(width, 0)))
}

// RenderHeader renders ─── <title> ─────── <info> ───, shortening the title to fit
func RenderHeader(width int, title, info string) string {
	room := width - lipgloss.Width(info) - HeaderSeparatorMinWidth - HeaderFixedChars
	if room > 0 {
		title = Truncate(title, room)
	}

	fill := width - lipgloss.Width(title) - lipgloss.Width(info) - HeaderFixedChars

	edge := RenderLine(edgeWidth)

	return HeaderStyle.Render(edge + " " + title + " " + rule(fill, HeaderSeparatorMinWidth) + " " + info + " " + edge)
}

// RenderFooter renders the version rule above the help text
func RenderFooter(width int, helpText string) string {
	version := "v" + config.Version
	fill := width - lipgloss.Width(version) - FooterFixedChars

	versionLine := rule(fill, FooterSeparatorMinWidth) + " " + version + " " + RenderLine(edgeWidth)

	return FooterStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		versionLine,
		FooterHelpStyle.Render(HelpStyle.Render(helpText)),
	))
}

// RenderContent wraps content with spacing
func RenderContent(content string) string {
	return ContentStyle.Render(content)
}

// PadRight pads s with spaces up to the given display width
func PadRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

// TruncateAndPad fits s into exactly width display cells
func TruncateAndPad(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}

// Truncate shortens s to maxWidth display cells, ending with an ellipsis when cut
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 1 {
		return ellipsis
	}

	return ansi.Truncate(s, maxWidth, ellipsis)
}

func rule(width, minWidth int) string {
	return RenderLine(max(width, minWidth))
}
