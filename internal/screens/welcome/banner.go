package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoriz/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗███████╗███╗   ███╗ ██████╗ ██████╗ ██╗███████╗
 ████╗ ████║██╔════╝████╗ ████║██╔═══██╗██╔══██╗██║╚══███╔╝
 ██╔████╔██║█████╗  ██╔████╔██║██║   ██║██████╔╝██║  ███╔╝
 ██║╚██╔╝██║██╔══╝  ██║╚██╔╝██║██║   ██║██╔══██╗██║ ███╔╝
 ██║ ╚═╝ ██║███████╗██║ ╚═╝ ██║╚██████╔╝██║  ██║██║███████╗
 ╚═╝     ╚═╝╚══════╝╚═╝     ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝`

const bannerCompact = "M E M O R I Z"

// RenderBanner returns the banner in the primary color, or the compact
// form on terminals narrower than 62 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
