package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/config"
	"github.com/Rorical/RoriLogo/internal/logo"
	"github.com/Rorical/RoriLogo/ui/components"
)

var (
	renderWidth  int
	renderHeight int
	renderAt     float64
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Print a script's drawing without the interactive UI",
	Long: `Run a script headless and print the canvas once the animation settles.
With --at the canvas is captured that many milliseconds into the animation.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}

		out, err := renderScript(string(src), loadConfig(), renderWidth, renderHeight, renderAt)
		if err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	},
}

// renderScript plays src on manual frames spaced by the profile's frame
// interval. at <= 0 plays to the end.
func renderScript(src string, cfg *config.Config, width, height int, at float64) (string, error) {
	result, err := logo.NewInterpreter().Execute(src)
	if err != nil {
		return "", err
	}

	speed := cfg.GetSpeed()
	step := float64(cfg.GetFrameInterval().Milliseconds())
	frames := animation.NewManualFrames()
	seq := animation.NewSequencer(frames, animation.WithSpeed(speed))
	seq.SetInstructions(result.Instructions)

	if at > 0 {
		for ts := 0.0; ts <= at && frames.Pending() > 0; ts += step {
			frames.Fire(ts)
		}
	} else {
		// each instruction needs one frame to start and one to land
		total := 0.0
		for _, ins := range result.Instructions {
			total += speed.Duration(ins)
		}
		maxFrames := int(total/step) + 2*len(result.Instructions) + 1
		frames.RunUntilIdle(0, step, maxFrames)
	}

	scene := seq.Scene()
	var b strings.Builder
	b.WriteString(components.RenderCanvas(scene, width, height, cfg.GetScale()))
	fmt.Fprintf(&b, "\n[%d/%d]", scene.Cursor, scene.Total)
	if marker := scene.Marker(); marker != "" {
		b.WriteString(" " + marker)
	}
	return b.String(), nil
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 79, "canvas width in cells")
	renderCmd.Flags().IntVar(&renderHeight, "height", 21, "canvas height in cells")
	renderCmd.Flags().Float64Var(&renderAt, "at", 0, "capture the canvas this many milliseconds in")
	rootCmd.AddCommand(renderCmd)
}
