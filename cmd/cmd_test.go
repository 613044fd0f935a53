package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/config"
	"github.com/Rorical/RoriLogo/internal/logo"
)

func TestRootCommandTree(t *testing.T) {
	want := map[string]bool{
		"profile": false, "use": false, "follow": false,
		"render": false, "script": false, "guide": false,
	}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "missing %s command", name)
	}

	assert.Len(t, scriptCmd.Commands(), 4)
	assert.Len(t, profileCmd.Commands(), 6)
	for _, flag := range []string{"script", "watch", "listen", "share"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(flag), flag)
	}
}

func TestRenderScriptToEnd(t *testing.T) {
	out, err := renderScript("fd 10", config.Default(), 11, 5, 0)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "     ##→   ", lines[2])
	assert.Equal(t, "[1/1]", lines[5])
	assert.NotContains(t, out, animation.ActivityMarker)
}

func TestRenderScriptMidway(t *testing.T) {
	out, err := renderScript("fd 10", config.Default(), 11, 5, 20)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "     +→    ", lines[2])
	assert.Equal(t, "[0/1] "+animation.ActivityMarker, lines[5])
}

func TestRenderScriptRejectsBadSource(t *testing.T) {
	_, err := renderScript("fd", config.Default(), 11, 5, 0)
	assert.ErrorIs(t, err, logo.ErrExpectedNumber)
}

func TestGuideRenders(t *testing.T) {
	render, err := newGuideRenderer(80)
	require.NoError(t, err)

	out, err := render(guideMarkdown)
	require.NoError(t, err)
	assert.Contains(t, out, "clearscreen")
}
