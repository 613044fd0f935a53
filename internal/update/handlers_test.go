package update

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriLogo/internal/eventbus"
	"github.com/Rorical/RoriLogo/internal/models"
)

func TestParseInput(t *testing.T) {
	assert.Equal(t, eventbus.AskEvent{Prompt: "a star"}, ParseInput("? a star"))
	assert.Equal(t, eventbus.SaveEvent{Name: "star"}, ParseInput(":save star"))
	assert.Equal(t, eventbus.LoadEvent{Name: "star"}, ParseInput(":load star"))
	assert.Equal(t, eventbus.ExecuteEvent{Source: "fd 10"}, ParseInput("fd 10"))
}

func TestTypingAndEnterSendsCommand(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	app := &models.AppModel{}

	HandleKeyMsgWithEventBus(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fd")}, eb)
	HandleKeyMsgWithEventBus(app, tea.KeyMsg{Type: tea.KeySpace}, eb)
	HandleKeyMsgWithEventBus(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("100")}, eb)
	HandleKeyMsgWithEventBus(app, tea.KeyMsg{Type: tea.KeyBackspace}, eb)
	assert.Equal(t, "fd 10", app.Input)

	HandleKeyMsgWithEventBus(app, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	assert.Empty(t, app.Input)
	assert.Equal(t, eventbus.ExecuteEvent{Source: "fd 10"}, <-eb.UIToCore())
}

func TestFollowerCannotSend(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	app := &models.AppModel{Follower: true, Input: "fd 10"}

	HandleKeyMsgWithEventBus(app, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	assert.Contains(t, app.Status, "read only")
	assert.Len(t, eb.UIToCore(), 0)
}

func TestHandleCoreEvent(t *testing.T) {
	app := &models.AppModel{Entries: []models.Entry{{Content: "hello"}}}
	list := []models.Instruction{models.NewTurn(0, 90)}

	HandleCoreEvent(app, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Instructions: list,
		Version:      2,
		Entries:      []models.Entry{{Content: "rt 90", Type: models.Command}},
	}})
	require.Len(t, app.Entries, 2)
	assert.Equal(t, list, app.Instructions)
	assert.Equal(t, 2, app.Version)
	assert.Equal(t, "Ready", app.Status)

	HandleCoreEvent(app, CoreEventMsg{Event: eventbus.StateUpdateEvent{Error: errors.New("bad")}})
	assert.Equal(t, "Error: bad", app.Status)
}

func TestQuitKeys(t *testing.T) {
	app := &models.AppModel{}
	cmd := HandleKeyMsgWithEventBus(app, tea.KeyMsg{Type: tea.KeyCtrlC}, nil)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
