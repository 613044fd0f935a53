package components

import (
	"github.com/Rorical/RoriLogo/ui/styles"
)

const Prompt = "> "

func RenderInput(input string, follower bool, width int) string {
	inputStyle := styles.InputStyle(width)
	if follower {
		return inputStyle.Render("(following, input disabled)")
	}
	return inputStyle.Render(Prompt + input)
}
