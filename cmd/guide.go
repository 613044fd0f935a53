package cmd

import (
	"fmt"
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const guideMarkdown = `# RoriLogo

The turtle starts at the center facing east. Every line you enter is drawn
one step at a time; new commands queue behind the ones still drawing.

## Commands

| command | short | effect |
|---|---|---|
| ` + "`forward n`" + ` | ` + "`fd n`" + ` | move forward n units, drawing a line |
| ` + "`back n`" + ` | ` + "`bk n`" + ` | move backward n units |
| ` + "`left n`" + ` | ` + "`lt n`" + ` | turn counter-clockwise n degrees |
| ` + "`right n`" + ` | ` + "`rt n`" + ` | turn clockwise n degrees |
| ` + "`repeat n [ ... ]`" + ` | | run the bracketed commands n times |
| ` + "`clearscreen`" + ` | ` + "`cs`" + ` | erase the drawing and start over |
| ` + "`home`" + ` | | walk back to the center and face east |

## Session

- ` + "`? a house with a roof`" + ` asks the assistant for a drawing
- ` + "`:save name`" + ` and ` + "`:load name`" + ` keep scripts in redis
- ` + "`Esc`" + ` or ` + "`Ctrl+C`" + ` quits

## Try

` + "```" + `
repeat 36 [repeat 4 [fd 40 rt 90] rt 10]
` + "```" + `
`

// newGuideRenderer renders markdown for the terminal
func newGuideRenderer(wrap int) (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the Logo command reference",
	Run: func(cmd *cobra.Command, args []string) {
		render, err := newGuideRenderer(80)
		if err != nil {
			log.Fatalf("Failed to create renderer: %v", err)
		}
		out, err := render(guideMarkdown)
		if err != nil {
			log.Fatalf("Failed to render guide: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
