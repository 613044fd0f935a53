package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/ui/styles"
)

// RenderStatus shows the status text, the progress through the instruction
// list and the activity marker while an instruction is animating.
func RenderStatus(status string, scene animation.Scene, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}
	statusContent += fmt.Sprintf("  [%d/%d]", scene.Cursor, scene.Total)
	if marker := scene.Marker(); marker != "" {
		statusContent += "  " + styles.MarkerStyle().Render(marker)
	}

	return statusStyle.Render(statusContent)
}
