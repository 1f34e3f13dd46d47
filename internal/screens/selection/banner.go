package selection

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗ █████╗ ███╗   ██╗   ██████╗ ██╗   ██╗██╗███████╗
 ██╔════╝██╔════╝██╔══██╗████╗  ██║  ██╔═══██╗██║   ██║██║╚══███╔╝
 ███████╗██║     ███████║██╔██╗ ██║  ██║   ██║██║   ██║██║  ███╔╝
 ╚════██║██║     ██╔══██║██║╚██╗██║  ██║▄▄ ██║██║   ██║██║ ███╔╝
 ███████║╚██████╗██║  ██║██║ ╚████║  ╚██████╔╝╚██████╔╝██║███████╗
 ╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═══╝   ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "S C A N Q U I Z"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 66

// RenderBanner returns the SCANQUIZ banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
