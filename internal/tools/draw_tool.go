package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rorical/RoriLogo/internal/logo"
)

// DrawTool accepts Logo source from the assistant after checking it parses
type DrawTool struct{}

func (d *DrawTool) Name() string {
	return "draw"
}

func (d *DrawTool) Description() string {
	return "Draw on the turtle canvas. Supported commands: forward/fd n, back/bk n, left/lt deg, right/rt deg, repeat n [ ... ], home, clearscreen/cs."
}

func (d *DrawTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"source": map[string]interface{}{
			"type":        "string",
			"description": "Logo program to run, e.g. 'repeat 4 [fd 50 rt 90]'",
		},
	}
}

func (d *DrawTool) RequiredParameters() []string {
	return []string{"source"}
}

func (d *DrawTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	source, ok := args["source"].(string)
	if !ok || strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("source parameter is required")
	}
	if _, err := logo.Parse(source); err != nil {
		return nil, fmt.Errorf("invalid Logo: %w", err)
	}
	return strings.TrimSpace(source), nil
}

// RegisterBuiltinTools registers the tools the assistant may call
func RegisterBuiltinTools(registry *Registry) {
	registry.Register(&DrawTool{})
}
